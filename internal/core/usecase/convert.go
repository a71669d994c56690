package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dkhalturin/docforge/internal/core/domain"
	"github.com/dkhalturin/docforge/internal/core/ports"
)

// ConversionObserver receives run lifecycle signals for instrumentation.
type ConversionObserver interface {
	ConversionStarted()
	ConversionFinished(format domain.OutputFormat, duration time.Duration, err error)
}

// ConvertUseCase drives one conversion end to end: normalize the request,
// render the cover, build metadata, dispatch to the matching encoder, and
// deliver the artifacts. It is single-flight: a request arriving while a
// run is in progress is rejected with ErrConversionInFlight and has no
// other observable effect.
type ConvertUseCase struct {
	encoders map[domain.OutputFormat]ports.Encoder
	cover    ports.CoverRenderer
	observer ConversionObserver
	logger   *slog.Logger

	mu    sync.Mutex
	state domain.RunState
}

func NewConvertUseCase(
	encoders []ports.Encoder,
	cover ports.CoverRenderer,
	observer ConversionObserver,
	logger *slog.Logger,
) *ConvertUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	byFormat := make(map[domain.OutputFormat]ports.Encoder, len(encoders))
	for _, enc := range encoders {
		byFormat[enc.Format()] = enc
	}
	return &ConvertUseCase{
		encoders: byFormat,
		cover:    cover,
		observer: observer,
		logger:   logger,
		state:    domain.RunIdle,
	}
}

func (uc *ConvertUseCase) State() domain.RunState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

func (uc *ConvertUseCase) Convert(ctx context.Context, req domain.ConversionRequest) ([]domain.Artifact, error) {
	if !uc.begin() {
		return nil, domain.ErrConversionInFlight
	}

	start := time.Now()
	if uc.observer != nil {
		uc.observer.ConversionStarted()
	}

	artifacts, err := uc.run(ctx, req)

	if uc.observer != nil {
		uc.observer.ConversionFinished(req.Conversion.Format, time.Since(start), err)
	}
	uc.settle(err)

	if err != nil {
		uc.logger.Error("conversion failed",
			"format", req.Conversion.Format,
			"items", len(req.Items),
			"error", err,
		)
		return nil, err
	}

	uc.logger.Info("conversion done",
		"format", req.Conversion.Format,
		"items", len(req.Items),
		"artifacts", len(artifacts),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return artifacts, nil
}

func (uc *ConvertUseCase) begin() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state == domain.RunRunning {
		return false
	}
	uc.state = domain.RunRunning
	return true
}

// settle records the terminal state and immediately returns to idle so no
// terminal state blocks further runs.
func (uc *ConvertUseCase) settle(err error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err != nil {
		uc.state = domain.RunFailed
	} else {
		uc.state = domain.RunDone
	}
	uc.state = domain.RunIdle
}

func (uc *ConvertUseCase) run(ctx context.Context, req domain.ConversionRequest) ([]domain.Artifact, error) {
	normalize(&req)

	encoder, ok := uc.encoders[req.Conversion.Format]
	if !ok {
		return nil, domain.WrapError(domain.ErrUnsupportedFormat, "select encoder",
			fmt.Errorf("%q", req.Conversion.Format))
	}

	if req.Conversion.Format.PerImage() && countImages(req.Items) == 0 {
		return nil, domain.ErrNothingToConvert
	}

	coverImage, err := uc.renderCover(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("render cover page: %w", err)
	}

	var meta *domain.Metadata
	now := time.Now().UTC()
	if req.Conversion.IncludeMetadata {
		meta = domain.BuildMetadata(req.Items, req.Cover, req.Conversion, now)
	}

	var artifacts []domain.Artifact
	for _, job := range uc.buildJobs(req, coverImage, meta, now) {
		// Jobs encode strictly in collection order so multi-page output
		// matches the visible ordering.
		out, err := encoder.Encode(ctx, job)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", req.Conversion.Format, err)
		}
		artifacts = append(artifacts, out...)
	}
	return artifacts, nil
}

// buildJobs splits the run into encoder invocations. Merged formats and
// per-image exports run as one job; one-per-item mode yields a job per
// item with the cover attached to the first.
func (uc *ConvertUseCase) buildJobs(
	req domain.ConversionRequest,
	coverImage []byte,
	meta *domain.Metadata,
	now time.Time,
) []domain.EncodeJob {
	base := domain.EncodeJob{
		Items:       req.Items,
		CoverSpec:   req.Cover,
		CoverImage:  coverImage,
		Enhancement: req.Enhancement,
		Conversion:  req.Conversion,
		Metadata:    meta,
		GeneratedAt: now,
	}

	if req.Conversion.MergeFiles || req.Conversion.Format.PerImage() {
		return []domain.EncodeJob{base}
	}

	jobs := make([]domain.EncodeJob, 0, len(req.Items))
	for i := range req.Items {
		job := base
		job.Items = req.Items[i : i+1]
		if i > 0 {
			job.CoverSpec = nil
			job.CoverImage = nil
		}
		jobs = append(jobs, job)
	}
	if len(jobs) == 0 {
		jobs = append(jobs, base)
	}
	return jobs
}

func (uc *ConvertUseCase) renderCover(ctx context.Context, req domain.ConversionRequest) ([]byte, error) {
	if req.Cover == nil || uc.cover == nil {
		return nil, nil
	}
	return uc.cover.Render(ctx, *req.Cover)
}

func normalize(req *domain.ConversionRequest) {
	c := &req.Conversion
	if c.Quality <= 0 {
		c.Quality = 90
	}
	if c.Quality > 100 {
		c.Quality = 100
	}
	if c.PageSize == "" {
		c.PageSize = domain.PageA4
	}
	if c.Orientation == "" {
		c.Orientation = domain.OrientationPortrait
	}
	if c.CompressionLevel < 0 {
		c.CompressionLevel = 0
	}
	if c.CompressionLevel > 9 {
		c.CompressionLevel = 9
	}

	e := &req.Enhancement
	e.Brightness = clamp(e.Brightness, -50, 50)
	e.Contrast = clamp(e.Contrast, -50, 50)
	e.Sharpness = clamp(e.Sharpness, 0, 10)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func countImages(items []domain.FileItem) int {
	n := 0
	for _, it := range items {
		if it.Category == domain.CategoryImage {
			n++
		}
	}
	return n
}
