// Package exporters provides factory functions for creating OpenTelemetry exporters.
//
// Plugin output owns stdout, so the console exporters write to stderr.
package exporters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ErrTextfilePathRequired indicates the textfile exporter was selected without a path.
var ErrTextfilePathRequired = errors.New("exporters: textfile path is required")

// Console is where the stderr exporters write. Overridden in tests.
var Console io.Writer = os.Stderr

// NewTracingExporter creates a trace span exporter based on the exporter name.
// Supported exporters: stderr, otlp, none
func NewTracingExporter(ctx context.Context, name string) (sdktrace.SpanExporter, error) {
	switch name {
	case "stderr":
		return stdouttrace.New(stdouttrace.WithWriter(Console))

	case "otlp":
		endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
		if endpoint == "" {
			endpoint = os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")
		}
		if endpoint == "" {
			return nil, fmt.Errorf("OTLP endpoint not configured: set OTEL_EXPORTER_OTLP_ENDPOINT or OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")
		}
		return otlptracegrpc.New(ctx)

	case "none", "":
		return stdouttrace.New(stdouttrace.WithWriter(io.Discard))

	default:
		return nil, fmt.Errorf("unknown exporter: %q", name)
	}
}

// NewMetricsReader creates a metrics reader based on the exporter name.
// Supported exporters: stderr, otlp, none. The textfile exporter needs a
// path and is created with NewTextfileReader.
func NewMetricsReader(ctx context.Context, name string) (sdkmetric.Reader, error) {
	switch name {
	case "stderr":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(Console))
		if err != nil {
			return nil, fmt.Errorf("failed to create stderr metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "otlp":
		endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
		if endpoint == "" {
			endpoint = os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT")
		}
		if endpoint == "" {
			return nil, fmt.Errorf("OTLP metrics endpoint not configured: set OTEL_EXPORTER_OTLP_ENDPOINT or OTEL_EXPORTER_OTLP_METRICS_ENDPOINT")
		}
		exp, err := otlpmetricgrpc.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "textfile":
		return nil, ErrTextfilePathRequired

	case "none", "":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(io.Discard))
		if err != nil {
			return nil, err
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	default:
		return nil, fmt.Errorf("unknown metrics exporter: %q", name)
	}
}

// TextfileReader is a metrics reader that renders the collected metrics in
// the Prometheus text format into a file, for the node_exporter textfile
// collector. A plugin process is too short-lived to be scraped.
type TextfileReader struct {
	sdkmetric.Reader

	registry *prometheus.Registry
	path     string
}

// NewTextfileReader creates a reader that writes to path on WriteFile.
func NewTextfileReader(path string) (*TextfileReader, error) {
	if path == "" {
		return nil, ErrTextfilePathRequired
	}

	registry := prometheus.NewRegistry()
	exp, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	return &TextfileReader{
		Reader:   exp,
		registry: registry,
		path:     path,
	}, nil
}

// Path returns the target file.
func (r *TextfileReader) Path() string {
	return r.path
}

// WriteFile collects the current metrics and atomically replaces the target
// file. It must run before the meter provider is shut down.
func (r *TextfileReader) WriteFile() error {
	if err := prometheus.WriteToTextfile(r.path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
