// Package encode holds one encoder per output format. Every encoder
// consumes the same EncodeJob and produces its artifact(s); formats are
// mutually exclusive per conversion run.
package encode

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

// artifactName resolves the output name: the fixed merged base name, or
// the item's own name with a swapped extension in one-per-item mode.
func artifactName(job domain.EncodeJob, format domain.OutputFormat) string {
	if !job.Conversion.MergeFiles && len(job.Items) == 1 {
		return swapExtension(job.Items[0].Name, format.Extension())
	}
	return domain.MergedBaseName + "." + format.Extension()
}

func swapExtension(name, ext string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = name
	}
	return base + "." + ext
}

// placeholder is the bracketed stand-in line for non-text items.
func placeholder(it domain.FileItem) string {
	switch it.Category {
	case domain.CategoryImage:
		return fmt.Sprintf("[Image file: %s]", it.Name)
	case domain.CategoryPDF:
		return fmt.Sprintf("[PDF file: %s]", it.Name)
	default:
		return fmt.Sprintf("[File: %s]", it.Name)
	}
}

const contentUnavailable = "[Content unavailable]"

// itemBody returns the textual body for an item: document text when
// present, the unavailable marker when a document failed to decode, and
// the bracketed placeholder for non-text items.
func itemBody(it domain.FileItem) string {
	if it.Category == domain.CategoryDocument {
		if text, ok := it.Text(); ok {
			return text
		}
		return contentUnavailable
	}
	return placeholder(it)
}

func sizeKB(size int64) string {
	return fmt.Sprintf("%.2f", float64(size)/1024)
}

func sizeMB(size int64) string {
	return fmt.Sprintf("%.1f", float64(size)/(1024*1024))
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
