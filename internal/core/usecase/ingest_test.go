package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(_ context.Context, _, _ string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.text != "" {
		return f.text, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type fakeInspector struct {
	pages int
	err   error
}

func (f *fakeInspector) PageCount(_ context.Context, _ []byte) (int, error) {
	return f.pages, f.err
}

func TestClassifyAssignsCategories(t *testing.T) {
	cases := []struct {
		mimeType string
		name     string
		want     domain.Category
		ok       bool
	}{
		{"image/png", "photo.png", domain.CategoryImage, true},
		{"image/jpeg", "photo.jpg", domain.CategoryImage, true},
		{"application/pdf", "report.pdf", domain.CategoryPDF, true},
		{"text/plain", "notes.txt", domain.CategoryDocument, true},
		{"text/markdown", "readme.md", domain.CategoryDocument, true},
		{"application/rtf", "doc.rtf", domain.CategoryDocument, true},
		{"text/html", "page.html", domain.CategoryDocument, true},
		{"application/octet-stream", "notes.txt", domain.CategoryDocument, true},
		{"application/octet-stream", "archive.bin", "", false},
		{"video/mp4", "clip.mp4", "", false},
		{"application/pdf ", "report.pdf", domain.CategoryPDF, true},
	}
	for _, c := range cases {
		got, ok := Classify(c.mimeType, c.name)
		if ok != c.ok || got != c.want {
			t.Fatalf("Classify(%q, %q) = (%q, %v), want (%q, %v)",
				c.mimeType, c.name, got, ok, c.want, c.ok)
		}
	}
}

func TestIngestExcludesUnsupportedWithoutError(t *testing.T) {
	uc := NewIngestUseCase(&fakeExtractor{}, &fakeInspector{}, nil)
	res, err := uc.Ingest(context.Background(), []domain.RawFile{
		{Name: "notes.txt", MimeType: "text/plain", Data: []byte("hello")},
		{Name: "clip.mp4", MimeType: "video/mp4", Data: []byte{0x00}},
		{Name: "photo.png", MimeType: "image/png", Data: []byte{0x89}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(res.Accepted) != 2 {
		t.Fatalf("expected 2 accepted, got %d", len(res.Accepted))
	}
	if len(res.Rejected) != 1 || res.Rejected[0].Name != "clip.mp4" {
		t.Fatalf("expected clip.mp4 rejected, got %+v", res.Rejected)
	}
}

func TestIngestLoadsDocumentText(t *testing.T) {
	uc := NewIngestUseCase(&fakeExtractor{}, nil, nil)
	res, err := uc.Ingest(context.Background(), []domain.RawFile{
		{Name: "notes.txt", MimeType: "text/plain", Data: []byte("hello world")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item := res.Accepted[0]
	text, ok := item.Text()
	if !ok || text != "hello world" {
		t.Fatalf("expected text content, got (%q, %v)", text, ok)
	}
	if item.Preview != "hello world" {
		t.Fatalf("expected full preview for short text, got %q", item.Preview)
	}
}

func TestIngestAbsorbsDecodeFailure(t *testing.T) {
	uc := NewIngestUseCase(&fakeExtractor{err: errors.New("not utf-8")}, nil, nil)
	res, err := uc.Ingest(context.Background(), []domain.RawFile{
		{Name: "garbage.txt", MimeType: "text/plain", Data: []byte{0xff, 0xfe}},
	})
	if err != nil {
		t.Fatalf("decode failure must not fail the batch: %v", err)
	}
	item := res.Accepted[0]
	if _, ok := item.Text(); ok {
		t.Fatalf("expected absent text content")
	}
	if item.Preview != "Preview not available" {
		t.Fatalf("expected fallback preview, got %q", item.Preview)
	}
}

func TestIngestTruncatesPreviewAtRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 150)
	uc := NewIngestUseCase(&fakeExtractor{text: long}, nil, nil)
	res, _ := uc.Ingest(context.Background(), []domain.RawFile{
		{Name: "long.txt", MimeType: "text/plain", Data: []byte(long)},
	})
	preview := res.Accepted[0].Preview
	if got := len([]rune(preview)); got != previewLimit {
		t.Fatalf("expected %d-rune preview, got %d", previewLimit, got)
	}
	if preview != strings.Repeat("é", previewLimit) {
		t.Fatalf("preview mangled multi-byte runes")
	}
}

func TestIngestProbesPDFPageCount(t *testing.T) {
	uc := NewIngestUseCase(&fakeExtractor{}, &fakeInspector{pages: 3}, nil)
	res, _ := uc.Ingest(context.Background(), []domain.RawFile{
		{Name: "report.pdf", MimeType: "application/pdf", Data: []byte("%PDF-1.4")},
	})
	item := res.Accepted[0]
	if item.PageCount != 3 {
		t.Fatalf("expected page count 3, got %d", item.PageCount)
	}
	if item.Preview != "PDF document" {
		t.Fatalf("expected pdf preview, got %q", item.Preview)
	}
	if item.Data != nil {
		t.Fatalf("pdf items must not retain raw bytes")
	}
}

func TestIngestAbsorbsPageProbeFailure(t *testing.T) {
	uc := NewIngestUseCase(&fakeExtractor{}, &fakeInspector{err: errors.New("broken xref")}, nil)
	res, err := uc.Ingest(context.Background(), []domain.RawFile{
		{Name: "broken.pdf", MimeType: "application/pdf", Data: []byte("%PDF")},
	})
	if err != nil {
		t.Fatalf("probe failure must not fail ingestion: %v", err)
	}
	if res.Accepted[0].PageCount != 0 {
		t.Fatalf("expected page count 0 after failed probe, got %d", res.Accepted[0].PageCount)
	}
}

func TestIngestKeepsImageBytes(t *testing.T) {
	data := []byte{0x89, 0x50, 0x4e, 0x47}
	uc := NewIngestUseCase(&fakeExtractor{}, nil, nil)
	res, _ := uc.Ingest(context.Background(), []domain.RawFile{
		{Name: "photo.png", MimeType: "image/png", Data: data},
	})
	item := res.Accepted[0]
	if len(item.Data) != len(data) {
		t.Fatalf("expected image bytes retained, got %d bytes", len(item.Data))
	}
	if item.Size != int64(len(data)) {
		t.Fatalf("expected size inferred from data, got %d", item.Size)
	}
}
