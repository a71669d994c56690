package encode

import (
	"context"
	"strings"
	"testing"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

func TestCSVEncoderQuotesEveryField(t *testing.T) {
	enc := NewCSVEncoder()
	out, err := enc.Encode(context.Background(), mergedJob(domain.FormatCSV, sampleItems()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(out[0].Data), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != `"Filename","Type","Size (KB)","Content Preview"` {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if lines[1] != `"photo.png","image","2.00","image file"` {
		t.Fatalf("unexpected image row: %s", lines[1])
	}
	if lines[2] != `"notes.txt","document","0.01","hello world"` {
		t.Fatalf("unexpected document row: %s", lines[2])
	}
	if lines[3] != `"report.pdf","pdf","4.00","pdf file"` {
		t.Fatalf("unexpected pdf row: %s", lines[3])
	}
}

func TestCSVEncoderDoublesEmbeddedQuotes(t *testing.T) {
	enc := NewCSVEncoder()
	items := []domain.FileItem{{
		Name:        `say "hi".txt`,
		Category:    domain.CategoryDocument,
		Size:        10,
		TextContent: strPtr(`she said "ok"`),
	}}
	out, err := enc.Encode(context.Background(), mergedJob(domain.FormatCSV, items))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(out[0].Data)
	if !strings.Contains(body, `"say ""hi"".txt"`) {
		t.Fatalf("expected doubled quotes in name:\n%s", body)
	}
	if !strings.Contains(body, `"she said ""ok"""`) {
		t.Fatalf("expected doubled quotes in preview:\n%s", body)
	}
}

func TestCSVPreviewFlattensAndTruncates(t *testing.T) {
	long := strings.Repeat("x", 150)
	item := domain.FileItem{
		Category:    domain.CategoryDocument,
		TextContent: strPtr("line one\r\nline two\nline three\r" + long),
	}
	got := csvPreview(item)
	if strings.ContainsAny(got, "\r\n") {
		t.Fatalf("preview retains newlines: %q", got)
	}
	if len([]rune(got)) != csvPreviewLimit {
		t.Fatalf("expected %d-rune preview, got %d", csvPreviewLimit, len([]rune(got)))
	}
	if !strings.HasPrefix(got, "line one line two line three ") {
		t.Fatalf("unexpected preview start: %q", got)
	}
}

func TestCSVPreviewFallbacks(t *testing.T) {
	if got := csvPreview(domain.FileItem{Category: domain.CategoryImage}); got != "image file" {
		t.Fatalf("expected image placeholder, got %q", got)
	}
	// document without decoded text falls back the same way
	if got := csvPreview(domain.FileItem{Category: domain.CategoryDocument}); got != "document file" {
		t.Fatalf("expected document placeholder, got %q", got)
	}
}
