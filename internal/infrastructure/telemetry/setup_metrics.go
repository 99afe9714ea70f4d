package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Patch outcomes recorded on storesetup_patches_total
const (
	OutcomeApplied = "applied"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// SetupMetrics records what each upgrade run did with each data patch.
type SetupMetrics struct {
	patchesTotal  metric.Int64Counter
	patchDuration metric.Float64Histogram
}

// NewSetupMetrics creates the setup instruments on meter.
func NewSetupMetrics(meter metric.Meter) (*SetupMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	patchesTotal, err := meter.Int64Counter("storesetup_patches_total",
		metric.WithDescription("Data patches processed by setup upgrade, by outcome"),
		metric.WithUnit("{patches}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter storesetup_patches_total: %w", err)
	}

	patchDuration, err := meter.Float64Histogram("storesetup_patch_duration_seconds",
		metric.WithDescription("Time spent applying a data patch"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(PatchDurationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram storesetup_patch_duration_seconds: %w", err)
	}

	return &SetupMetrics{
		patchesTotal:  patchesTotal,
		patchDuration: patchDuration,
	}, nil
}

// RecordApplied counts an applied patch and its duration
func (m *SetupMetrics) RecordApplied(ctx context.Context, patch string, d time.Duration) {
	m.record(ctx, patch, OutcomeApplied, d)
}

// RecordSkipped counts a patch found in the history
func (m *SetupMetrics) RecordSkipped(ctx context.Context, patch string) {
	m.patchesTotal.Add(ctx, 1, metric.WithAttributes(AttrPatch.String(patch), AttrOutcome.String(OutcomeSkipped)))
}

// RecordFailed counts a failed patch and how long it ran before failing
func (m *SetupMetrics) RecordFailed(ctx context.Context, patch string, d time.Duration) {
	m.record(ctx, patch, OutcomeFailed, d)
}

func (m *SetupMetrics) record(ctx context.Context, patch, outcome string, d time.Duration) {
	attrs := metric.WithAttributes(AttrPatch.String(patch), AttrOutcome.String(outcome))
	m.patchesTotal.Add(ctx, 1, attrs)
	m.patchDuration.Record(ctx, d.Seconds(), attrs)
}
