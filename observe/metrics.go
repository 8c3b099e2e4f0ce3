package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records check run metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordRun records one check run with its duration, outcome and error.
	RecordRun(ctx context.Context, meta CheckMeta, outcome Outcome, duration time.Duration, err error)
}

type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		"check.run.total",
		metric.WithDescription("Total number of check runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"check.run.errors",
		metric.WithDescription("Total number of check runs that failed"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"check.run.duration_ms",
		metric.WithDescription("Check run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

// RecordRun records metrics for a check run.
func (m *metricsImpl) RecordRun(ctx context.Context, meta CheckMeta, outcome Outcome, duration time.Duration, err error) {
	attrs := append([]attribute.KeyValue{
		attribute.String("check.plugin", meta.Plugin),
	}, outcome.attributes()...)
	opt := metric.WithAttributes(attrs...)

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

type noopMetrics struct{}

func (m *noopMetrics) RecordRun(ctx context.Context, meta CheckMeta, outcome Outcome, duration time.Duration, err error) {
}
