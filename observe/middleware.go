package observe

import (
	"context"
	"time"
)

// RunFunc is a single check run as seen by the instrumentation.
type RunFunc func(ctx context.Context) (Outcome, error)

// Middleware wraps a check run with observability (tracing, metrics, logging).
//
// Contract:
//   - Context: the wrapped function receives the span context.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
// Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = &noopMetrics{}
	}
	if logger == nil {
		logger = &noopLogger{}
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps fn with tracing, metrics and logging for the given plugin.
func (m *Middleware) Wrap(meta CheckMeta, fn RunFunc) RunFunc {
	return func(ctx context.Context) (Outcome, error) {
		ctx, span := m.tracer.StartSpan(ctx, meta)
		start := time.Now()

		outcome, err := fn(ctx)

		duration := time.Since(start)
		m.tracer.EndSpan(span, outcome, err)
		m.metrics.RecordRun(ctx, meta, outcome, duration, err)

		fields := []Field{
			{Key: "check.status", Value: outcome.Status},
			{Key: "duration_ms", Value: float64(duration.Microseconds()) / 1000},
		}
		if outcome.Resource != "" {
			fields = append(fields, Field{Key: "check.resource", Value: outcome.Resource})
		}

		logger := m.logger.WithCheck(meta)
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			logger.Error(ctx, "check run failed", fields...)
		} else {
			logger.Info(ctx, "check run completed", fields...)
		}

		return outcome, err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(newTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
