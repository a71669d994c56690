package encode

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

const (
	coverRule   = "=================================================="
	itemDivider = "----------------------------------------"
)

// TextEncoder concatenates the collection into one plain-text artifact:
// optional cover block, then a "Document:" header, divider, and body per
// item.
type TextEncoder struct{}

func NewTextEncoder() *TextEncoder {
	return &TextEncoder{}
}

func (e *TextEncoder) Format() domain.OutputFormat {
	return domain.FormatTXT
}

func (e *TextEncoder) Encode(_ context.Context, job domain.EncodeJob) ([]domain.Artifact, error) {
	var sb strings.Builder

	if job.CoverSpec != nil {
		writeCoverBlock(&sb, *job.CoverSpec)
	}

	for i, it := range job.Items {
		if i > 0 || job.CoverSpec != nil {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Document: %s\n", it.Name)
		sb.WriteString(itemDivider)
		sb.WriteString("\n")
		sb.WriteString(itemBody(it))
		sb.WriteString("\n")
	}

	return []domain.Artifact{{
		Name:     artifactName(job, domain.FormatTXT),
		MimeType: domain.MimeTypeFor(domain.FormatTXT),
		Data:     []byte(sb.String()),
	}}, nil
}

func writeCoverBlock(sb *strings.Builder, cover domain.CoverPageSpec) {
	title := cover.Title
	if title == "" {
		title = "Converted Documents"
	}
	sb.WriteString(title)
	sb.WriteString("\n")
	if cover.Subtitle != "" {
		sb.WriteString(cover.Subtitle)
		sb.WriteString("\n")
	}
	if cover.Author != "" {
		fmt.Fprintf(sb, "By: %s\n", cover.Author)
	}
	if cover.Date != "" {
		sb.WriteString(cover.Date)
		sb.WriteString("\n")
	}
	if cover.Description != "" {
		sb.WriteString(cover.Description)
		sb.WriteString("\n")
	}
	sb.WriteString(coverRule)
	sb.WriteString("\n")
}
