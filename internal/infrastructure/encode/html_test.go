package encode

import (
	"context"
	"strings"
	"testing"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

func TestHTMLEncoderSelfContainedPage(t *testing.T) {
	enc := NewHTMLEncoder(&stubEnhancer{})
	out, err := enc.Encode(context.Background(), mergedJob(domain.FormatHTML, sampleItems()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(out[0].Data)

	if !strings.HasPrefix(body, "<!DOCTYPE html>") || !strings.HasSuffix(body, "</html>\n") {
		t.Fatalf("not a complete HTML page:\n%s", body)
	}
	if !strings.Contains(body, "<title>Converted Documents</title>") {
		t.Fatalf("missing default title:\n%s", body)
	}
	if !strings.Contains(body, `src="data:image/png;base64,`) {
		t.Fatalf("image not inlined as data URI:\n%s", body)
	}
	if !strings.Contains(body, "<pre>hello world</pre>") {
		t.Fatalf("missing document body:\n%s", body)
	}
	if !strings.Contains(body, "PDF document (0.0 MB) - content not merged") {
		t.Fatalf("missing pdf notice:\n%s", body)
	}
	if strings.Contains(body, "http://") || strings.Contains(body, "https://") {
		t.Fatalf("artifact must have no external references:\n%s", body)
	}
}

func TestHTMLEncoderEscapesContent(t *testing.T) {
	enc := NewHTMLEncoder(&stubEnhancer{})
	items := []domain.FileItem{{
		Name:        "<script>.txt",
		Category:    domain.CategoryDocument,
		TextContent: strPtr("a < b && c > d"),
	}}
	out, err := enc.Encode(context.Background(), mergedJob(domain.FormatHTML, items))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(out[0].Data)
	if strings.Contains(body, "<script>") {
		t.Fatalf("unescaped markup in output:\n%s", body)
	}
	if !strings.Contains(body, "a &lt; b &amp;&amp; c &gt; d") {
		t.Fatalf("text content not escaped:\n%s", body)
	}
}

func TestHTMLEncoderCoverAndMetadata(t *testing.T) {
	enc := NewHTMLEncoder(&stubEnhancer{})
	job := mergedJob(domain.FormatHTML, sampleItems()[1:2])
	job.CoverSpec = &domain.CoverPageSpec{Title: "Pack", BackgroundColor: "#112233"}
	job.Metadata = domain.BuildMetadata(job.Items, job.CoverSpec, job.Conversion, job.GeneratedAt)

	out, err := enc.Encode(context.Background(), job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(out[0].Data)
	if !strings.Contains(body, "<title>Pack</title>") {
		t.Fatalf("cover title not used as page title:\n%s", body)
	}
	if !strings.Contains(body, `style="background:#112233`) {
		t.Fatalf("cover background not applied:\n%s", body)
	}
	if !strings.Contains(body, `class="meta"`) {
		t.Fatalf("missing per-item metadata line:\n%s", body)
	}
}
