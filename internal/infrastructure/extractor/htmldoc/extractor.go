// Package htmldoc loads HTML input documents as markdown text. The raw
// markup is sanitized before conversion so pasted page sources cannot
// smuggle script or style payloads into the output artifact.
package htmldoc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Extractor struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
}

func New() *Extractor {
	return &Extractor{
		policy: bluemonday.UGCPolicy(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

func (e *Extractor) Extract(_ context.Context, name, _ string, r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	title := findTitle(raw)
	clean := e.policy.SanitizeBytes(raw)

	md, err := e.conv.ConvertString(string(clean))
	if err != nil {
		return "", fmt.Errorf("convert html to markdown: %w", err)
	}
	md = strings.TrimSpace(md)

	if title != "" && !strings.HasPrefix(md, "# ") {
		md = "# " + title + "\n\n" + md
	}
	if md == "" {
		return "", fmt.Errorf("no textual content in %s", name)
	}
	return md, nil
}

// findTitle extracts the <title> text from the unsanitized markup;
// bluemonday strips head elements.
func findTitle(raw []byte) string {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	var walk func(*html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.DataAtom == atom.Title {
			if n.FirstChild != nil {
				return strings.TrimSpace(n.FirstChild.Data)
			}
			return ""
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if t := walk(c); t != "" {
				return t
			}
		}
		return ""
	}
	return walk(doc)
}
