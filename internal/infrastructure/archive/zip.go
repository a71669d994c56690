// Package archive implements the narrow packing collaborator: given N
// named byte blobs, produce one archive blob.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

type ZipPacker struct{}

func NewZipPacker() *ZipPacker {
	return &ZipPacker{}
}

func (p *ZipPacker) Pack(_ context.Context, name string, artifacts []domain.Artifact) (domain.Artifact, error) {
	if len(artifacts) == 0 {
		return domain.Artifact{}, fmt.Errorf("pack archive: no inputs")
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, a := range artifacts {
		f, err := w.Create(a.Name)
		if err != nil {
			return domain.Artifact{}, fmt.Errorf("add %s: %w", a.Name, err)
		}
		if _, err := f.Write(a.Data); err != nil {
			return domain.Artifact{}, fmt.Errorf("write %s: %w", a.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return domain.Artifact{}, fmt.Errorf("finalize archive: %w", err)
	}

	return domain.Artifact{
		Name:     name,
		MimeType: "application/zip",
		Data:     buf.Bytes(),
	}, nil
}
