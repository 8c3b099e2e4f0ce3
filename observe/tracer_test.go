package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer() (*tracerImpl, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return &tracerImpl{tracer: tp.Tracer("test")}, recorder
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestCheckMeta_SpanName(t *testing.T) {
	tests := []struct {
		meta CheckMeta
		want string
	}{
		{CheckMeta{Plugin: "check_disk"}, "check.run.check_disk"},
		{CheckMeta{}, "check.run"},
	}
	for _, tc := range tests {
		if got := tc.meta.SpanName(); got != tc.want {
			t.Errorf("SpanName() = %q, want %q", got, tc.want)
		}
	}
}

// TestTracer_SuccessSpan verifies a completed run ends with status Ok and
// carries the outcome attributes.
func TestTracer_SuccessSpan(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.StartSpan(context.Background(), CheckMeta{Plugin: "check_disk", Version: "1.0.0"})
	tracer.EndSpan(span, Outcome{Resource: "root", Status: "CRITICAL"}, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name() != "check.run.check_disk" {
		t.Errorf("span name = %q", s.Name())
	}
	if s.Status().Code != codes.Ok {
		t.Errorf("expected status Ok, got %v", s.Status().Code)
	}

	attrs := s.Attributes()
	if v, _ := attrValue(attrs, "check.plugin"); v.AsString() != "check_disk" {
		t.Errorf("check.plugin = %v", v.AsString())
	}
	if v, _ := attrValue(attrs, "check.version"); v.AsString() != "1.0.0" {
		t.Errorf("check.version = %v", v.AsString())
	}
	if v, _ := attrValue(attrs, "check.status"); v.AsString() != "CRITICAL" {
		t.Errorf("check.status = %v", v.AsString())
	}
	if v, _ := attrValue(attrs, "check.resource"); v.AsString() != "root" {
		t.Errorf("check.resource = %v", v.AsString())
	}
	if v, _ := attrValue(attrs, "check.error"); v.AsBool() {
		t.Error("check.error should be false")
	}
}

// TestTracer_ErrorSpan verifies a failed run records the error.
func TestTracer_ErrorSpan(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.StartSpan(context.Background(), CheckMeta{Plugin: "check_disk"})
	tracer.EndSpan(span, Outcome{Status: "UNKNOWN"}, errors.New("statfs failed"))

	s := recorder.Ended()[0]
	if s.Status().Code != codes.Error {
		t.Errorf("expected status Error, got %v", s.Status().Code)
	}
	if s.Status().Description != "statfs failed" {
		t.Errorf("status description = %q", s.Status().Description)
	}
	if v, _ := attrValue(s.Attributes(), "check.error"); !v.AsBool() {
		t.Error("check.error should be true")
	}
	if _, ok := attrValue(s.Attributes(), "check.resource"); ok {
		t.Error("check.resource should be absent without a resource")
	}
	if len(s.Events()) == 0 {
		t.Error("expected recorded error event")
	}
}

func TestNoopTracer_NoPanic(t *testing.T) {
	tracer := newNoopTracer()
	_, span := tracer.StartSpan(context.Background(), CheckMeta{Plugin: "noop"})
	tracer.EndSpan(span, Outcome{}, errors.New("ignored"))
}
