package encode

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

func TestMarkdownEncoderStructure(t *testing.T) {
	stub := &stubEnhancer{out: []byte("jpeg")}
	enc := NewMarkdownEncoder(stub)

	out, err := enc.Encode(context.Background(), mergedJob(domain.FormatMarkdown, sampleItems()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(out[0].Data)

	if !strings.Contains(body, "## photo.png") || !strings.Contains(body, "## notes.txt") {
		t.Fatalf("missing item headings:\n%s", body)
	}
	// zero enhancement spec embeds the original bytes under the original mime
	embed := "![photo.png](data:image/png;base64," +
		base64.StdEncoding.EncodeToString([]byte{0x89}) + ")"
	if !strings.Contains(body, embed) {
		t.Fatalf("missing image embed:\n%s", body)
	}
	if stub.calls != 0 {
		t.Fatalf("enhancer must not run for zero spec, got %d calls", stub.calls)
	}
	if !strings.Contains(body, "```\nhello world\n```") {
		t.Fatalf("missing fenced text block:\n%s", body)
	}
	if !strings.Contains(body, "*PDF document (0.0 MB) - content not merged*") {
		t.Fatalf("missing pdf notice:\n%s", body)
	}
}

func TestMarkdownEncoderEnhancesImages(t *testing.T) {
	stub := &stubEnhancer{out: []byte("enhanced")}
	enc := NewMarkdownEncoder(stub)

	job := mergedJob(domain.FormatMarkdown, sampleItems()[:1])
	job.Enhancement = domain.EnhancementSpec{Brightness: 10}

	out, err := enc.Encode(context.Background(), job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(out[0].Data)
	embed := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("enhanced"))
	if !strings.Contains(body, embed) {
		t.Fatalf("expected enhanced JPEG embed:\n%s", body)
	}
	if stub.calls != 1 {
		t.Fatalf("expected one enhancer call, got %d", stub.calls)
	}
}

func TestMarkdownEncoderCover(t *testing.T) {
	enc := NewMarkdownEncoder(&stubEnhancer{})
	job := mergedJob(domain.FormatMarkdown, sampleItems()[1:2])
	job.CoverSpec = &domain.CoverPageSpec{Subtitle: "Internal"}

	out, err := enc.Encode(context.Background(), job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(out[0].Data)
	if !strings.HasPrefix(body, "# Converted Documents\n\n*Internal*\n\n---\n\n") {
		t.Fatalf("unexpected cover block:\n%s", body)
	}
}
