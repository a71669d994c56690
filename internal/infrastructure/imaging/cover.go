package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

// A4 at 72dpi.
const (
	coverWidth  = 595
	coverHeight = 842

	// wrapBudget is the fixed line budget for the description block.
	wrapBudget = 400
)

// Fixed vertical slots, top to bottom.
const (
	titleY       = 200
	subtitleY    = 260
	authorY      = 320
	dateY        = 370
	descriptionY = 450
	descLineStep = 22
)

// CoverRenderer draws the optional leading page: centered title, subtitle,
// author, date, and a word-wrapped description, over the requested
// background color.
type CoverRenderer struct {
	titleFace font.Face
	bodyFace  font.Face
}

func NewCoverRenderer() *CoverRenderer {
	return &CoverRenderer{
		titleFace: inconsolata.Bold8x16,
		bodyFace:  inconsolata.Regular8x16,
	}
}

func (r *CoverRenderer) Render(_ context.Context, spec domain.CoverPageSpec) ([]byte, error) {
	bg := parseHexColor(spec.BackgroundColor, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	fg := parseHexColor(spec.TextColor, color.RGBA{A: 255})

	img := image.NewRGBA(image.Rect(0, 0, coverWidth, coverHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	title := spec.Title
	if strings.TrimSpace(title) == "" {
		title = "Converted Documents"
	}
	r.drawCentered(img, fg, r.titleFace, title, titleY)

	if spec.Subtitle != "" {
		r.drawCentered(img, fg, r.bodyFace, spec.Subtitle, subtitleY)
	}
	if spec.Author != "" {
		r.drawCentered(img, fg, r.bodyFace, fmt.Sprintf("By: %s", spec.Author), authorY)
	}
	if spec.Date != "" {
		r.drawCentered(img, fg, r.bodyFace, spec.Date, dateY)
	}

	if spec.Description != "" {
		y := descriptionY
		for _, line := range r.wrapWords(spec.Description, r.bodyFace, wrapBudget) {
			if y > coverHeight-40 {
				break
			}
			r.drawCentered(img, fg, r.bodyFace, line, y)
			y += descLineStep
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode cover page: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *CoverRenderer) drawCentered(dst draw.Image, fg color.Color, face font.Face, text string, y int) {
	width := font.MeasureString(face, text).Ceil()
	x := (coverWidth - width) / 2
	if x < 0 {
		x = 0
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// wrapWords greedily packs words onto a line until the next word would
// exceed the budget, then breaks. A single over-long word gets its own
// line rather than being split.
func (r *CoverRenderer) wrapWords(text string, face font.Face, budget int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if font.MeasureString(face, candidate).Ceil() > budget {
			lines = append(lines, current)
			current = w
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

// parseHexColor accepts #rgb and #rrggbb strings, returning fallback on
// anything it cannot parse.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return fallback
	}
	s = s[1:]

	var r, g, b uint8
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return fallback
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return fallback
		}
	default:
		return fallback
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
