// Package extractor routes document loading to the format-specific
// extractor: html input goes through sanitize-and-markdown, everything
// else is read as plain UTF-8 text.
package extractor

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/dkhalturin/docforge/internal/core/ports"
	"github.com/dkhalturin/docforge/internal/infrastructure/extractor/htmldoc"
	"github.com/dkhalturin/docforge/internal/infrastructure/extractor/plaintext"
)

type Dispatcher struct {
	plain ports.TextExtractor
	html  ports.TextExtractor
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		plain: plaintext.New(),
		html:  htmldoc.New(),
	}
}

func (d *Dispatcher) Extract(ctx context.Context, name, mimeType string, r io.Reader) (string, error) {
	if isHTML(name, mimeType) {
		return d.html.Extract(ctx, name, mimeType, r)
	}
	return d.plain.Extract(ctx, name, mimeType, r)
}

func isHTML(name, mimeType string) bool {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if mt == "text/html" {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".html" || ext == ".htm"
}
