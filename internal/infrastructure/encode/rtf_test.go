package encode

import (
	"context"
	"strings"
	"testing"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

func TestRTFEncoderDocumentStructure(t *testing.T) {
	enc := NewRTFEncoder()
	out, err := enc.Encode(context.Background(), mergedJob(domain.FormatRTF, sampleItems()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := string(out[0].Data)
	if !strings.HasPrefix(body, `{\rtf1\ansi\deff0`) {
		t.Fatalf("missing RTF header:\n%s", body)
	}
	if !strings.HasSuffix(strings.TrimSpace(body), "}") {
		t.Fatalf("unterminated RTF group:\n%s", body)
	}
	if !strings.Contains(body, `{\b notes.txt}\par`) {
		t.Fatalf("missing bold item heading:\n%s", body)
	}
	if !strings.Contains(body, "hello world") {
		t.Fatalf("missing document body:\n%s", body)
	}
}

func TestRTFEncoderCoverPageBreak(t *testing.T) {
	enc := NewRTFEncoder()
	job := mergedJob(domain.FormatRTF, sampleItems()[1:2])
	job.CoverSpec = &domain.CoverPageSpec{Title: "Pack", Author: "Ops"}

	out, err := enc.Encode(context.Background(), job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(out[0].Data)
	if !strings.Contains(body, `{\qc\b\fs36 Pack\par}`) {
		t.Fatalf("missing centered title:\n%s", body)
	}
	if !strings.Contains(body, `\page`) {
		t.Fatalf("missing page break after cover:\n%s", body)
	}
}

func TestEscapeRTF(t *testing.T) {
	cases := []struct{ in, want string }{
		{`a\b`, `a\\b`},
		{"{group}", `\{group\}`},
		{"café", `caf\u233?`},
		{"line1\nline2", "line1\nline2"},
		{"plain", "plain"},
		// runes above U+FFFF become a UTF-16 surrogate pair
		{"\U0001F600", `\u-10179?\u-8704?`},
		{"ok \U0001F44D!", `ok \u-10179?\u-9139?!`},
	}
	for _, c := range cases {
		if got := escapeRTF(c.in); got != c.want {
			t.Fatalf("escapeRTF(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRTFBodyConvertsNewlines(t *testing.T) {
	item := domain.FileItem{
		Category:    domain.CategoryDocument,
		TextContent: strPtr("one\ntwo"),
	}
	got := rtfBody(item)
	if got != `one\par two` {
		t.Fatalf("expected paragraph breaks, got %q", got)
	}
}
