package encode

import (
	"context"
	"fmt"

	"github.com/dkhalturin/docforge/internal/core/domain"
	"github.com/dkhalturin/docforge/internal/core/ports"
)

// ImageEncoder handles the per-image export formats. This is not a merge:
// every image item is independently re-encoded and yields its own
// artifact named after the item; non-image items are skipped.
type ImageEncoder struct {
	format   domain.OutputFormat
	enhancer ports.ImageEnhancer
}

func NewPNGEncoder(enhancer ports.ImageEnhancer) *ImageEncoder {
	return &ImageEncoder{format: domain.FormatPNG, enhancer: enhancer}
}

func NewJPGEncoder(enhancer ports.ImageEnhancer) *ImageEncoder {
	return &ImageEncoder{format: domain.FormatJPG, enhancer: enhancer}
}

func (e *ImageEncoder) Format() domain.OutputFormat {
	return e.format
}

func (e *ImageEncoder) Encode(ctx context.Context, job domain.EncodeJob) ([]domain.Artifact, error) {
	encoding := ports.EncodingPNG
	if e.format == domain.FormatJPG {
		encoding = ports.EncodingJPEG
	}

	var artifacts []domain.Artifact
	for _, it := range job.Items {
		if it.Category != domain.CategoryImage {
			continue
		}
		// Quality applies only to the lossy target; the PNG path ignores it.
		data, err := e.enhancer.Enhance(ctx, it.Data, job.Enhancement, encoding, job.Conversion.Quality)
		if err != nil {
			return nil, fmt.Errorf("re-encode %s: %w", it.Name, err)
		}
		artifacts = append(artifacts, domain.Artifact{
			Name:     swapExtension(it.Name, e.format.Extension()),
			MimeType: domain.MimeTypeFor(e.format),
			Data:     data,
		})
	}

	if len(artifacts) == 0 {
		return nil, domain.ErrNothingToConvert
	}
	return artifacts, nil
}
