// Package pdfutil wraps the external PDF collaborators: post-encode
// optimization, the merge-N-blobs contract, and the metadata-only page
// count probe. No page content is ever extracted here.
package pdfutil

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type Service struct {
	conf *model.Configuration
}

func New() *Service {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Service{conf: conf}
}

// Optimize rewrites a generated PDF when the advisory compression level is
// above zero. The level has no granular mapping; any positive value runs
// the optimizer.
func (s *Service) Optimize(_ context.Context, data []byte, level int) ([]byte, error) {
	if level <= 0 {
		return data, nil
	}
	var buf bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &buf, s.conf); err != nil {
		return nil, fmt.Errorf("optimize pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Merge implements the narrow collaborator contract: given N PDF blobs,
// produce one merged blob preserving input order.
func (s *Service) Merge(_ context.Context, parts [][]byte) ([]byte, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("merge pdf: no inputs")
	}
	readers := make([]io.ReadSeeker, len(parts))
	for i, p := range parts {
		readers[i] = bytes.NewReader(p)
	}
	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, s.conf); err != nil {
		return nil, fmt.Errorf("merge pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// PageCount probes a pdf-category upload for its page count without
// loading any content. Callers absorb failures and fall back to zero.
func (s *Service) PageCount(_ context.Context, data []byte) (int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	return r.NumPage(), nil
}
