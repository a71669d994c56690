package bootstrap

import (
	"log/slog"

	"github.com/dkhalturin/docforge/internal/config"
	"github.com/dkhalturin/docforge/internal/core/ports"
	"github.com/dkhalturin/docforge/internal/core/usecase"
	"github.com/dkhalturin/docforge/internal/infrastructure/archive"
	"github.com/dkhalturin/docforge/internal/infrastructure/encode"
	"github.com/dkhalturin/docforge/internal/infrastructure/extractor"
	"github.com/dkhalturin/docforge/internal/infrastructure/imaging"
	"github.com/dkhalturin/docforge/internal/infrastructure/pdfutil"
	"github.com/dkhalturin/docforge/internal/observability/logging"
	"github.com/dkhalturin/docforge/internal/observability/metrics"
)

// App wires the pipeline: extractors and probes into ingestion, encoders
// and the cover renderer into the conversion orchestrator.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.ConversionMetrics

	Ingest  ports.FileIngestor
	Convert ports.DocumentConverter
	Store   *usecase.OrderingStore
	Merger  ports.PDFMerger
	Packer  ports.ArchivePacker
}

func New(cfg config.Config) *App {
	logger := logging.New("docforge", cfg.LogLevel, cfg.LogFormat)
	m := metrics.NewConversionMetrics("docforge")

	pdfSvc := pdfutil.New()
	enhancer := imaging.NewEnhancer()
	cover := imaging.NewCoverRenderer()

	encoders := []ports.Encoder{
		encode.NewPDFEncoder(enhancer, pdfSvc),
		encode.NewTextEncoder(),
		encode.NewHTMLEncoder(enhancer),
		encode.NewMarkdownEncoder(enhancer),
		encode.NewCSVEncoder(),
		encode.NewJSONEncoder(),
		encode.NewRTFEncoder(),
		encode.NewPNGEncoder(enhancer),
		encode.NewJPGEncoder(enhancer),
		encode.NewXLSXEncoder(),
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
		Ingest:  usecase.NewIngestUseCase(extractor.NewDispatcher(), pdfSvc, logger),
		Convert: usecase.NewConvertUseCase(encoders, cover, m, logger),
		Store:   usecase.NewOrderingStore(usecase.OrderCustom),
		Merger:  pdfSvc,
		Packer:  archive.NewZipPacker(),
	}
}
