package encode

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

// RTFEncoder emits a minimal RTF control-word stream: centered bold cover
// title block, a page break, then a bold heading and paragraph body per
// item.
type RTFEncoder struct{}

func NewRTFEncoder() *RTFEncoder {
	return &RTFEncoder{}
}

func (e *RTFEncoder) Format() domain.OutputFormat {
	return domain.FormatRTF
}

func (e *RTFEncoder) Encode(_ context.Context, job domain.EncodeJob) ([]domain.Artifact, error) {
	var sb strings.Builder
	sb.WriteString(`{\rtf1\ansi\deff0{\fonttbl{\f0\fswiss Helvetica;}}\f0\fs24` + "\n")

	if job.CoverSpec != nil {
		writeRTFCover(&sb, *job.CoverSpec)
	}

	for i, it := range job.Items {
		if i > 0 {
			sb.WriteString(`\par` + "\n")
		}
		fmt.Fprintf(&sb, `{\b %s}\par`+"\n", escapeRTF(it.Name))
		sb.WriteString(rtfBody(it))
		sb.WriteString(`\par` + "\n")
	}

	sb.WriteString("}\n")

	return []domain.Artifact{{
		Name:     artifactName(job, domain.FormatRTF),
		MimeType: domain.MimeTypeFor(domain.FormatRTF),
		Data:     []byte(sb.String()),
	}}, nil
}

func writeRTFCover(sb *strings.Builder, cover domain.CoverPageSpec) {
	title := cover.Title
	if title == "" {
		title = "Converted Documents"
	}
	fmt.Fprintf(sb, `{\qc\b\fs36 %s\par}`+"\n", escapeRTF(title))
	if cover.Subtitle != "" {
		fmt.Fprintf(sb, `{\qc\fs28 %s\par}`+"\n", escapeRTF(cover.Subtitle))
	}
	if cover.Author != "" {
		fmt.Fprintf(sb, `{\qc By: %s\par}`+"\n", escapeRTF(cover.Author))
	}
	if cover.Date != "" {
		fmt.Fprintf(sb, `{\qc %s\par}`+"\n", escapeRTF(cover.Date))
	}
	if cover.Description != "" {
		fmt.Fprintf(sb, `{\qc %s\par}`+"\n", escapeRTF(cover.Description))
	}
	sb.WriteString(`\page` + "\n")
}

func rtfBody(it domain.FileItem) string {
	text := itemBody(it)
	escaped := escapeRTF(text)
	return strings.ReplaceAll(escaped, "\n", `\par `)
}

// escapeRTF escapes control characters and encodes non-ASCII runes as
// \uN? control words. \u takes a signed 16-bit code unit, so runes above
// U+FFFF are written as their UTF-16 surrogate pair.
func escapeRTF(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '{':
			sb.WriteString(`\{`)
		case r == '}':
			sb.WriteString(`\}`)
		case r == '\r':
			// normalized with \n below
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&sb, `\u%d?\u%d?`, int16(hi), int16(lo))
		case r > 127:
			fmt.Fprintf(&sb, `\u%d?`, int16(r))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
