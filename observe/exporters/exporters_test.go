package exporters

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestMain(m *testing.M) {
	Console = io.Discard
	os.Exit(m.Run())
}

// TestExporter_InvalidName verifies unknown exporter name returns error.
func TestExporter_InvalidName(t *testing.T) {
	for _, name := range []string{"invalid", "stdout", "jaeger"} {
		_, err := NewTracingExporter(context.Background(), name)
		if err == nil {
			t.Fatalf("expected error for exporter %q", name)
		}
		if !strings.Contains(err.Error(), "unknown exporter") {
			t.Errorf("expected error to contain 'unknown exporter', got: %v", err)
		}
	}
}

func TestExporter_StderrTracing(t *testing.T) {
	exp, err := NewTracingExporter(context.Background(), "stderr")
	if err != nil {
		t.Fatalf("failed to create stderr tracing exporter: %v", err)
	}
	if exp == nil {
		t.Fatal("expected non-nil exporter")
	}
}

func TestExporter_StderrMetrics(t *testing.T) {
	reader, err := NewMetricsReader(context.Background(), "stderr")
	if err != nil {
		t.Fatalf("failed to create stderr metrics reader: %v", err)
	}
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}
}

// TestExporter_OtlpMissingEndpoint verifies OTLP without endpoint env fails.
func TestExporter_OtlpMissingEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")

	if _, err := NewTracingExporter(context.Background(), "otlp"); err == nil || !strings.Contains(err.Error(), "endpoint") {
		t.Errorf("expected endpoint error for traces, got: %v", err)
	}
	if _, err := NewMetricsReader(context.Background(), "otlp"); err == nil || !strings.Contains(err.Error(), "endpoint") {
		t.Errorf("expected endpoint error for metrics, got: %v", err)
	}
}

// TestExporter_OtlpWithEndpoint verifies OTLP with endpoint env succeeds.
func TestExporter_OtlpWithEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4317")

	exp, err := NewTracingExporter(context.Background(), "otlp")
	if err != nil {
		t.Fatalf("failed to create OTLP exporter with endpoint: %v", err)
	}
	if exp == nil {
		t.Fatal("expected non-nil exporter")
	}
}

func TestExporter_None(t *testing.T) {
	if _, err := NewTracingExporter(context.Background(), "none"); err != nil {
		t.Errorf("none tracing exporter: %v", err)
	}
	if _, err := NewMetricsReader(context.Background(), ""); err != nil {
		t.Errorf("default metrics reader: %v", err)
	}
}

func TestExporter_MetricsInvalidName(t *testing.T) {
	_, err := NewMetricsReader(context.Background(), "prometheus")
	if err == nil || !strings.Contains(err.Error(), "unknown metrics exporter") {
		t.Errorf("expected unknown metrics exporter error, got: %v", err)
	}
}

func TestExporter_TextfileNeedsPath(t *testing.T) {
	if _, err := NewMetricsReader(context.Background(), "textfile"); !errors.Is(err, ErrTextfilePathRequired) {
		t.Errorf("expected ErrTextfilePathRequired, got: %v", err)
	}
	if _, err := NewTextfileReader(""); !errors.Is(err, ErrTextfilePathRequired) {
		t.Errorf("expected ErrTextfilePathRequired, got: %v", err)
	}
}

// TestTextfileReader_WriteFile verifies collected metrics are written in the
// Prometheus text format.
func TestTextfileReader_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin.prom")
	reader, err := NewTextfileReader(path)
	if err != nil {
		t.Fatalf("NewTextfileReader failed: %v", err)
	}
	if reader.Path() != path {
		t.Errorf("Path() = %q, want %q", reader.Path(), path)
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	counter, err := mp.Meter("test").Int64Counter("check.hits")
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	counter.Add(context.Background(), 3)

	if err := reader.WriteFile(); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mp.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	var found bool
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "check_hits_total") && strings.HasSuffix(line, " 3") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected check_hits_total sample of 3 in textfile, got:\n%s", data)
	}
}
