package ports

import (
	"context"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

// FileIngestor is the inbound contract for the ingestion boundary:
// classify raw files and push accepted items into the ordering store.
// Rejected descriptors are reported back but never surfaced as errors.
type FileIngestor interface {
	Ingest(ctx context.Context, files []domain.RawFile) (domain.IngestResult, error)
}

// DocumentConverter is the inbound contract for the conversion boundary.
// Convert is single-flight: a request arriving while a run is in progress
// returns domain.ErrConversionInFlight and has no other observable effect.
type DocumentConverter interface {
	Convert(ctx context.Context, req domain.ConversionRequest) ([]domain.Artifact, error)
	State() domain.RunState
}
