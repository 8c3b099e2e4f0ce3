package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// CheckMeta identifies the plugin performing a check run.
type CheckMeta struct {
	Plugin  string // Plugin command name, e.g. check_disk
	Version string // Plugin version (optional)
}

// SpanName returns the span name for a run of this plugin.
// Format: check.run.<plugin>
func (m CheckMeta) SpanName() string {
	if m.Plugin == "" {
		return "check.run"
	}
	return "check.run." + m.Plugin
}

// Outcome is what a check run reports back to the instrumentation.
type Outcome struct {
	Resource string // Resource name, empty when the run failed before producing one
	Status   string // Service state name, e.g. OK or CRITICAL
}

func (o Outcome) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("check.status", o.Status),
	}
	if o.Resource != "" {
		attrs = append(attrs, attribute.String("check.resource", o.Resource))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with check-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a check run.
	StartSpan(ctx context.Context, meta CheckMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording the outcome and any error.
	EndSpan(span trace.Span, outcome Outcome, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with plugin metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta CheckMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("check.plugin", meta.Plugin),
		attribute.Bool("check.error", false),
	}
	if meta.Version != "" {
		attrs = append(attrs, attribute.String("check.version", meta.Version))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span. A non-OK service state is not a span error; only a
// failed run is.
func (t *tracerImpl) EndSpan(span trace.Span, outcome Outcome, err error) {
	span.SetAttributes(outcome.attributes()...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("check.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta CheckMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, outcome Outcome, err error) {
	span.End()
}
