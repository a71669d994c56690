package plaintext

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"
)

// Extractor reads txt/md/rtf document bytes as UTF-8 text. The read is
// synchronous relative to the batch: it completes or fails before the item
// is considered ready.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, name, _ string, r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	if !utf8.Valid(raw) {
		return "", fmt.Errorf("not valid UTF-8 text: %s", name)
	}

	return string(raw), nil
}
