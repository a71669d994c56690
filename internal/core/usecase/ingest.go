package usecase

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkhalturin/docforge/internal/core/domain"
	"github.com/dkhalturin/docforge/internal/core/ports"
)

// textMimeTypes are the declared media types accepted as documents.
var textMimeTypes = map[string]bool{
	"text/plain":      true,
	"text/markdown":   true,
	"text/x-markdown": true,
	"text/rtf":        true,
	"application/rtf": true,
	"text/html":       true,
}

// textExtensions are the file name suffixes accepted as documents when the
// declared media type is not recognized.
var textExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".rtf":  true,
	".html": true,
	".htm":  true,
}

const previewLimit = 100

type IngestUseCase struct {
	extractor ports.TextExtractor
	inspector ports.PDFInspector
	logger    *slog.Logger
}

func NewIngestUseCase(extractor ports.TextExtractor, inspector ports.PDFInspector, logger *slog.Logger) *IngestUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestUseCase{
		extractor: extractor,
		inspector: inspector,
		logger:    logger,
	}
}

// Classify assigns a semantic category from the declared media type and
// file name, or reports the file as unsupported. It is total and
// deterministic: the same (type, name) pair always yields the same result.
func Classify(mimeType, name string) (domain.Category, bool) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if strings.HasPrefix(mt, "image/") {
		return domain.CategoryImage, true
	}
	if mt == "application/pdf" {
		return domain.CategoryPDF, true
	}
	if textMimeTypes[mt] || textExtensions[strings.ToLower(filepath.Ext(name))] {
		return domain.CategoryDocument, true
	}
	return "", false
}

// Ingest classifies and loads a batch of raw files. Unsupported files are
// excluded from the accepted batch and reported in Rejected; they never
// produce an error. Per-file text decode failures are absorbed: the item
// survives with absent content and a fallback preview.
func (uc *IngestUseCase) Ingest(ctx context.Context, files []domain.RawFile) (domain.IngestResult, error) {
	var res domain.IngestResult
	for _, f := range files {
		category, ok := Classify(f.MimeType, f.Name)
		if !ok {
			uc.logger.Warn("unsupported file excluded", "name", f.Name, "mime_type", f.MimeType)
			res.Rejected = append(res.Rejected, f)
			continue
		}

		item := domain.FileItem{
			ID:       uuid.NewString(),
			Name:     f.Name,
			MimeType: f.MimeType,
			Size:     f.Size,
			Category: category,
			AddedAt:  time.Now().UTC(),
		}
		if item.Size == 0 {
			item.Size = int64(len(f.Data))
		}

		switch category {
		case domain.CategoryDocument:
			uc.loadDocument(ctx, &item, f)
		case domain.CategoryImage:
			item.Data = f.Data
		case domain.CategoryPDF:
			// Content is never parsed; only size and a best-effort page
			// count survive ingestion.
			item.PageCount = uc.probePageCount(ctx, f)
			item.Preview = "PDF document"
		}

		res.Accepted = append(res.Accepted, item)
	}
	return res, nil
}

func (uc *IngestUseCase) loadDocument(ctx context.Context, item *domain.FileItem, f domain.RawFile) {
	text, err := uc.extractor.Extract(ctx, f.Name, f.MimeType, bytes.NewReader(f.Data))
	if err != nil {
		uc.logger.Warn("document text unreadable", "name", f.Name, "error", err)
		item.TextContent = nil
		item.Preview = "Preview not available"
		return
	}
	item.TextContent = &text
	item.Preview = truncateRunes(text, previewLimit)
}

func (uc *IngestUseCase) probePageCount(ctx context.Context, f domain.RawFile) int {
	if uc.inspector == nil {
		return 0
	}
	n, err := uc.inspector.PageCount(ctx, f.Data)
	if err != nil {
		uc.logger.Debug("pdf page probe failed", "name", f.Name, "error", err)
		return 0
	}
	return n
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
