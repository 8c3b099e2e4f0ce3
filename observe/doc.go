// Package observe provides observability primitives for check plugins.
//
// It is a pure instrumentation library: structured logging to stderr,
// OpenTelemetry tracing and run metrics, and a Middleware that wraps a single
// check run with all three. Nothing here writes to stdout, which carries the
// plugin's output.
package observe
