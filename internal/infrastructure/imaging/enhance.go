// Package imaging implements the raster side of the pipeline: the
// per-conversion enhancement chain and the cover page renderer.
package imaging

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"

	_ "image/gif" // decode support for gif uploads

	"github.com/dkhalturin/docforge/internal/core/domain"
	"github.com/dkhalturin/docforge/internal/core/ports"
)

// Enhancer applies the fixed-order adjustment chain:
// brightness/contrast, auto-enhance, sharpen, denoise. Each call works on
// its own scratch buffer; nothing is shared or retained across items.
type Enhancer struct{}

func NewEnhancer() *Enhancer {
	return &Enhancer{}
}

func (e *Enhancer) Enhance(
	_ context.Context,
	data []byte,
	spec domain.EnhancementSpec,
	enc ports.ImageEncoding,
	quality int,
) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.WrapError(domain.ErrDecodeFailure, "decode image", err)
	}

	rgba := toRGBA(src)
	if !spec.IsZero() {
		if spec.Brightness != 0 || spec.Contrast != 0 || spec.AutoEnhance {
			applyColorAdjust(rgba, spec)
		}
		if spec.Sharpness > 0 {
			applySharpen(rgba, spec.Sharpness)
		}
		if spec.Denoise {
			applyDenoise(rgba)
		}
	}

	var buf bytes.Buffer
	switch enc {
	case ports.EncodingPNG:
		err = png.Encode(&buf, rgba)
	default:
		err = jpeg.Encode(&buf, rgba, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrDecodeFailure, "encode image", err)
	}
	return buf.Bytes(), nil
}

func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// applyColorAdjust performs the brightness/contrast adjustment and, when
// requested, the composed auto-enhance boost (saturation +10%, hue +2°)
// in the same pass. Contrast scales around mid-gray; brightness is an
// additive channel offset. Both are exact identities at zero.
func applyColorAdjust(img *image.RGBA, spec domain.EnhancementSpec) {
	cf := 1 + float64(spec.Contrast)/100
	bOff := 255 * float64(spec.Brightness) / 100

	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		r := float64(pix[i])
		g := float64(pix[i+1])
		b := float64(pix[i+2])

		if spec.Brightness != 0 || spec.Contrast != 0 {
			r = (r-128)*cf + 128 + bOff
			g = (g-128)*cf + 128 + bOff
			b = (b-128)*cf + 128 + bOff
		}

		if spec.AutoEnhance {
			h, s, l := rgbToHSL(clampF(r), clampF(g), clampF(b))
			s = math.Min(1, s*1.10)
			h = math.Mod(h+2.0/360.0, 1)
			r, g, b = hslToRGB(h, s, l)
		}

		pix[i] = uint8(clampF(r))
		pix[i+1] = uint8(clampF(g))
		pix[i+2] = uint8(clampF(b))
	}
}

// applySharpen is the cheap global unsharp approximation: every pixel is
// adjusted independently by its own luma average, no convolution kernel.
func applySharpen(img *image.RGBA, sharpness int) {
	factor := float64(sharpness) / 10

	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		avg := (float64(pix[i]) + float64(pix[i+1]) + float64(pix[i+2])) / 3
		add := avg * factor
		pix[i] = uint8(clampF(float64(pix[i]) + add))
		pix[i+1] = uint8(clampF(float64(pix[i+1]) + add))
		pix[i+2] = uint8(clampF(float64(pix[i+2]) + add))
	}
}

// applyDenoise hard-thresholds pixels by channel mean: below 50 forces
// pure black, above 200 pure white, boundary values are left unchanged.
func applyDenoise(img *image.RGBA) {
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		mean := (float64(pix[i]) + float64(pix[i+1]) + float64(pix[i+2])) / 3
		switch {
		case mean < 50:
			pix[i], pix[i+1], pix[i+2] = 0, 0, 0
		case mean > 200:
			pix[i], pix[i+1], pix[i+2] = 255, 255, 255
		}
	}
}

func clampF(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func rgbToHSL(r, g, b float64) (h, s, l float64) {
	r /= 255
	g /= 255
	b /= 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6
	return h, s, l
}

func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		v := l * 255
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r = hueToChannel(p, q, h+1.0/3) * 255
	g = hueToChannel(p, q, h) * 255
	b = hueToChannel(p, q, h-1.0/3) * 255
	return r, g, b
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
