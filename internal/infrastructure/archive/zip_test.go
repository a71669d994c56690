package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

func TestZipPackerPacksArtifacts(t *testing.T) {
	p := NewZipPacker()
	out, err := p.Pack(context.Background(), "bundle.zip", []domain.Artifact{
		{Name: "a.txt", Data: []byte("alpha")},
		{Name: "b.txt", Data: []byte("bravo")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "bundle.zip" || out.MimeType != "application/zip" {
		t.Fatalf("unexpected artifact identity: %q %q", out.Name, out.MimeType)
	}

	r, err := zip.NewReader(bytes.NewReader(out.Data), int64(len(out.Data)))
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	if len(r.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(r.File))
	}
	if r.File[0].Name != "a.txt" || r.File[1].Name != "b.txt" {
		t.Fatalf("entry order not preserved: %q %q", r.File[0].Name, r.File[1].Name)
	}

	f, err := r.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer f.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if buf.String() != "alpha" {
		t.Fatalf("entry content altered: %q", buf.String())
	}
}

func TestZipPackerRejectsEmptyInput(t *testing.T) {
	p := NewZipPacker()
	if _, err := p.Pack(context.Background(), "bundle.zip", nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}
