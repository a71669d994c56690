package encode

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dkhalturin/docforge/internal/core/domain"
	"github.com/dkhalturin/docforge/internal/core/ports"
)

// MarkdownEncoder mirrors the HTML structure with heading levels, image
// embeds, fenced code blocks for text, and italic metadata lines.
type MarkdownEncoder struct {
	enhancer ports.ImageEnhancer
}

func NewMarkdownEncoder(enhancer ports.ImageEnhancer) *MarkdownEncoder {
	return &MarkdownEncoder{enhancer: enhancer}
}

func (e *MarkdownEncoder) Format() domain.OutputFormat {
	return domain.FormatMarkdown
}

func (e *MarkdownEncoder) Encode(ctx context.Context, job domain.EncodeJob) ([]domain.Artifact, error) {
	var sb strings.Builder

	if job.CoverSpec != nil {
		writeMarkdownCover(&sb, *job.CoverSpec)
	}

	for _, it := range job.Items {
		fmt.Fprintf(&sb, "## %s\n\n", it.Name)

		switch it.Category {
		case domain.CategoryImage:
			data := it.Data
			mime := it.MimeType
			if !job.Enhancement.IsZero() {
				enhanced, err := e.enhancer.Enhance(ctx, it.Data, job.Enhancement, ports.EncodingJPEG, job.Conversion.Quality)
				if err != nil {
					return nil, fmt.Errorf("enhance %s: %w", it.Name, err)
				}
				data = enhanced
				mime = "image/jpeg"
			}
			fmt.Fprintf(&sb, "![%s](data:%s;base64,%s)\n\n", it.Name, mime,
				base64.StdEncoding.EncodeToString(data))
		case domain.CategoryDocument:
			if text, ok := it.Text(); ok {
				fmt.Fprintf(&sb, "```\n%s\n```\n\n", text)
			} else {
				sb.WriteString("*Content unavailable*\n\n")
			}
		case domain.CategoryPDF:
			fmt.Fprintf(&sb, "*PDF document (%s MB) - content not merged*\n\n", sizeMB(it.Size))
		}

		if job.Metadata != nil {
			fmt.Fprintf(&sb, "*%s · %s · %s KB*\n\n", it.Name, it.Category, sizeKB(it.Size))
		}
	}

	return []domain.Artifact{{
		Name:     artifactName(job, domain.FormatMarkdown),
		MimeType: domain.MimeTypeFor(domain.FormatMarkdown),
		Data:     []byte(sb.String()),
	}}, nil
}

func writeMarkdownCover(sb *strings.Builder, cover domain.CoverPageSpec) {
	title := cover.Title
	if title == "" {
		title = "Converted Documents"
	}
	fmt.Fprintf(sb, "# %s\n\n", title)
	if cover.Subtitle != "" {
		fmt.Fprintf(sb, "*%s*\n\n", cover.Subtitle)
	}
	if cover.Author != "" {
		fmt.Fprintf(sb, "By: %s\n\n", cover.Author)
	}
	if cover.Date != "" {
		fmt.Fprintf(sb, "%s\n\n", cover.Date)
	}
	if cover.Description != "" {
		fmt.Fprintf(sb, "%s\n\n", cover.Description)
	}
	sb.WriteString("---\n\n")
}
