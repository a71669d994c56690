package ports

import (
	"context"
	"io"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

// TextExtractor loads document-category content as UTF-8 text.
type TextExtractor interface {
	Extract(ctx context.Context, name, mimeType string, r io.Reader) (string, error)
}

// ImageEncoding selects the raster codec for enhancer output.
type ImageEncoding string

const (
	EncodingJPEG ImageEncoding = "jpeg"
	EncodingPNG  ImageEncoding = "png"
)

// ImageEnhancer applies the enhancement pipeline to one raster image and
// re-encodes it. A zero EnhancementSpec degrades to a plain re-encode at
// the given quality. Decode failures are fatal for the run.
type ImageEnhancer interface {
	Enhance(ctx context.Context, data []byte, spec domain.EnhancementSpec, enc ImageEncoding, quality int) ([]byte, error)
}

// CoverRenderer synthesizes the optional leading page as PNG bytes.
type CoverRenderer interface {
	Render(ctx context.Context, spec domain.CoverPageSpec) ([]byte, error)
}

// Encoder produces the output artifact(s) for one format.
type Encoder interface {
	Format() domain.OutputFormat
	Encode(ctx context.Context, job domain.EncodeJob) ([]domain.Artifact, error)
}

// PDFInspector probes pdf-category files for metadata without extracting
// any content. A probe failure is absorbed by callers.
type PDFInspector interface {
	PageCount(ctx context.Context, data []byte) (int, error)
}

// PDFOptimizer rewrites a generated PDF according to the advisory
// compression level.
type PDFOptimizer interface {
	Optimize(ctx context.Context, pdf []byte, level int) ([]byte, error)
}

// PDFMerger is the narrow external-collaborator contract: given N page
// sources, produce one merged PDF blob.
type PDFMerger interface {
	Merge(ctx context.Context, parts [][]byte) ([]byte, error)
}

// ArchivePacker is the narrow external-collaborator contract: given N
// named byte blobs, produce one archive blob.
type ArchivePacker interface {
	Pack(ctx context.Context, name string, artifacts []domain.Artifact) (domain.Artifact, error)
}
