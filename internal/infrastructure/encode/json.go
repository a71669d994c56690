package encode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

// JSONEncoder emits a pretty-printed conversion manifest: metadata, cover
// spec, per-item records, the active conversion spec, and the timestamp.
type JSONEncoder struct{}

func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{}
}

func (e *JSONEncoder) Format() domain.OutputFormat {
	return domain.FormatJSON
}

type jsonItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Size        int64   `json:"size"`
	TextContent *string `json:"text_content"`
	ImageRef    *string `json:"image_ref"`
	PageCount   int     `json:"page_count,omitempty"`
}

type jsonManifest struct {
	Metadata    *domain.Metadata      `json:"metadata"`
	Cover       *domain.CoverPageSpec `json:"cover"`
	Items       []jsonItem            `json:"items"`
	Conversion  domain.ConversionSpec `json:"conversion"`
	GeneratedAt time.Time             `json:"generated_at"`
}

func (e *JSONEncoder) Encode(_ context.Context, job domain.EncodeJob) ([]domain.Artifact, error) {
	items := make([]jsonItem, 0, len(job.Items))
	for _, it := range job.Items {
		rec := jsonItem{
			ID:          it.ID,
			Name:        it.Name,
			Category:    string(it.Category),
			Size:        it.Size,
			TextContent: it.TextContent,
			PageCount:   it.PageCount,
		}
		if it.Category == domain.CategoryImage {
			ref := fmt.Sprintf("image://%s", it.ID)
			rec.ImageRef = &ref
		}
		items = append(items, rec)
	}

	manifest := jsonManifest{
		Metadata:    job.Metadata,
		Cover:       job.CoverSpec,
		Items:       items,
		Conversion:  job.Conversion,
		GeneratedAt: job.GeneratedAt,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}

	return []domain.Artifact{{
		Name:     artifactName(job, domain.FormatJSON),
		MimeType: domain.MimeTypeFor(domain.FormatJSON),
		Data:     data,
	}}, nil
}
