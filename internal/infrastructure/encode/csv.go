package encode

import (
	"context"
	"strings"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

const csvPreviewLimit = 100

// CSVEncoder writes one row per item. Every field is quoted and embedded
// quotes are doubled; encoding/csv only quotes on demand, so the grammar
// is produced directly.
type CSVEncoder struct{}

func NewCSVEncoder() *CSVEncoder {
	return &CSVEncoder{}
}

func (e *CSVEncoder) Format() domain.OutputFormat {
	return domain.FormatCSV
}

func (e *CSVEncoder) Encode(_ context.Context, job domain.EncodeJob) ([]domain.Artifact, error) {
	var sb strings.Builder
	writeCSVRow(&sb, "Filename", "Type", "Size (KB)", "Content Preview")

	for _, it := range job.Items {
		writeCSVRow(&sb, it.Name, string(it.Category), sizeKB(it.Size), csvPreview(it))
	}

	return []domain.Artifact{{
		Name:     artifactName(job, domain.FormatCSV),
		MimeType: domain.MimeTypeFor(domain.FormatCSV),
		Data:     []byte(sb.String()),
	}}, nil
}

// csvPreview is the first 100 characters of document content with
// newlines flattened to spaces; non-text items get a generic placeholder.
func csvPreview(it domain.FileItem) string {
	if it.Category == domain.CategoryDocument {
		if text, ok := it.Text(); ok {
			flat := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
			return truncateRunes(flat, csvPreviewLimit)
		}
	}
	return string(it.Category) + " file"
}

func writeCSVRow(sb *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteByte('\n')
}
