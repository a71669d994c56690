package encode

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/dkhalturin/docforge/internal/core/domain"
	"github.com/dkhalturin/docforge/internal/core/ports"
)

// HTMLEncoder renders the collection as one self-contained page. Images
// are inlined as data URIs so the artifact has no external references.
type HTMLEncoder struct {
	enhancer ports.ImageEnhancer
}

func NewHTMLEncoder(enhancer ports.ImageEnhancer) *HTMLEncoder {
	return &HTMLEncoder{enhancer: enhancer}
}

func (e *HTMLEncoder) Format() domain.OutputFormat {
	return domain.FormatHTML
}

func (e *HTMLEncoder) Encode(ctx context.Context, job domain.EncodeJob) ([]domain.Artifact, error) {
	var sb strings.Builder

	title := "Converted Documents"
	if job.CoverSpec != nil && job.CoverSpec.Title != "" {
		title = job.CoverSpec.Title
	}

	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(title))
	sb.WriteString(`<style>
body { font-family: sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
.cover { text-align: center; padding: 4rem 2rem; margin-bottom: 2rem; }
.item { margin-bottom: 2rem; border-bottom: 1px solid #ddd; padding-bottom: 1rem; }
.item img { max-width: 100%; }
.item pre { white-space: pre-wrap; background: #f6f6f6; padding: 1rem; }
.meta { color: #666; font-size: 0.85rem; font-style: italic; }
.notice { color: #666; font-style: italic; }
</style>
`)
	sb.WriteString("</head>\n<body>\n")

	if job.CoverSpec != nil {
		writeHTMLCover(&sb, *job.CoverSpec)
	}

	for _, it := range job.Items {
		if err := e.writeItem(ctx, &sb, it, job); err != nil {
			return nil, err
		}
	}

	sb.WriteString("</body>\n</html>\n")

	return []domain.Artifact{{
		Name:     artifactName(job, domain.FormatHTML),
		MimeType: domain.MimeTypeFor(domain.FormatHTML),
		Data:     []byte(sb.String()),
	}}, nil
}

func writeHTMLCover(sb *strings.Builder, cover domain.CoverPageSpec) {
	bg := cover.BackgroundColor
	if bg == "" {
		bg = "#ffffff"
	}
	fg := cover.TextColor
	if fg == "" {
		fg = "#000000"
	}
	fmt.Fprintf(sb, "<div class=\"cover\" style=\"background:%s;color:%s\">\n",
		html.EscapeString(bg), html.EscapeString(fg))

	title := cover.Title
	if title == "" {
		title = "Converted Documents"
	}
	fmt.Fprintf(sb, "<h1>%s</h1>\n", html.EscapeString(title))
	if cover.Subtitle != "" {
		fmt.Fprintf(sb, "<h2>%s</h2>\n", html.EscapeString(cover.Subtitle))
	}
	if cover.Author != "" {
		fmt.Fprintf(sb, "<p>By: %s</p>\n", html.EscapeString(cover.Author))
	}
	if cover.Date != "" {
		fmt.Fprintf(sb, "<p>%s</p>\n", html.EscapeString(cover.Date))
	}
	if cover.Description != "" {
		fmt.Fprintf(sb, "<p>%s</p>\n", html.EscapeString(cover.Description))
	}
	sb.WriteString("</div>\n")
}

func (e *HTMLEncoder) writeItem(ctx context.Context, sb *strings.Builder, it domain.FileItem, job domain.EncodeJob) error {
	sb.WriteString("<div class=\"item\">\n")
	fmt.Fprintf(sb, "<h3>%s</h3>\n", html.EscapeString(it.Name))

	switch it.Category {
	case domain.CategoryImage:
		uri, err := e.imageDataURI(ctx, it, job)
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "<img src=\"%s\" alt=\"%s\">\n", uri, html.EscapeString(it.Name))
	case domain.CategoryDocument:
		if text, ok := it.Text(); ok {
			fmt.Fprintf(sb, "<pre>%s</pre>\n", html.EscapeString(text))
		} else {
			sb.WriteString("<p class=\"notice\">Content unavailable</p>\n")
		}
	case domain.CategoryPDF:
		fmt.Fprintf(sb, "<p class=\"notice\">PDF document (%s MB) - content not merged</p>\n", sizeMB(it.Size))
	}

	if job.Metadata != nil {
		fmt.Fprintf(sb, "<p class=\"meta\">%s · %s · %s KB</p>\n",
			html.EscapeString(it.Name), it.Category, sizeKB(it.Size))
	}
	sb.WriteString("</div>\n")
	return nil
}

// imageDataURI inlines the image, re-encoded through the enhancement
// chain when any enhancement option is active.
func (e *HTMLEncoder) imageDataURI(ctx context.Context, it domain.FileItem, job domain.EncodeJob) (string, error) {
	data := it.Data
	mime := it.MimeType
	if !job.Enhancement.IsZero() {
		enhanced, err := e.enhancer.Enhance(ctx, it.Data, job.Enhancement, ports.EncodingJPEG, job.Conversion.Quality)
		if err != nil {
			return "", fmt.Errorf("enhance %s: %w", it.Name, err)
		}
		data = enhanced
		mime = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), nil
}
