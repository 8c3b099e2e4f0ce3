package check

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jonwraymond/nagiosplugin/observe"
)

// CheckFunc performs a check and returns the resource to report.
type CheckFunc func(ctx context.Context) (*Resource, error)

// ErrorHandler maps a failed check to the state to report and the error to
// print. It may replace the error, for example with a friendlier message.
type ErrorHandler func(err error) (Severity, error)

// DefaultErrorHandler reports every failure as Critical.
func DefaultErrorHandler(err error) (Severity, error) {
	return SeverityCritical, err
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(h ErrorHandler) RunnerOption {
	return func(r *Runner) {
		if h != nil {
			r.onError = h
		}
	}
}

// WithErrorState reports every failure with the given state.
func WithErrorState(state Severity) RunnerOption {
	return WithErrorHandler(func(err error) (Severity, error) {
		return state, err
	})
}

// WithLogger sets the logger used when no middleware is configured.
func WithLogger(logger observe.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMiddleware wraps each run with the given instrumentation.
func WithMiddleware(mw *observe.Middleware) RunnerOption {
	return func(r *Runner) {
		r.middleware = mw
	}
}

// WithObserver instruments runs with obs and shuts obs down before
// PrintAndExit terminates the process. Callers that use Print instead must
// shut the observer down themselves.
func WithObserver(obs observe.Observer) RunnerOption {
	return func(r *Runner) {
		if obs == nil {
			return
		}
		r.observer = obs
		r.logger = obs.Logger()
	}
}

// WithMeta sets the plugin identity used in logs and telemetry.
// It defaults to the executable's base name.
func WithMeta(meta observe.CheckMeta) RunnerOption {
	return func(r *Runner) {
		r.meta = meta
	}
}

// Runner runs a check function and turns its failure into a plugin state,
// so plugins need no error-to-exit-code boilerplate.
type Runner struct {
	onError    ErrorHandler
	logger     observe.Logger
	middleware *observe.Middleware
	observer   observe.Observer
	meta       observe.CheckMeta
}

// NewRunner creates a Runner. Failures are reported as Critical unless an
// error handler is configured.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		onError: DefaultErrorHandler,
		logger:  observe.NopLogger(),
		meta:    observe.CheckMeta{Plugin: filepath.Base(os.Args[0])},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SafeRun calls fn once. A returned resource is kept for reporting; an error,
// or a nil resource, is passed to the error handler.
func (r *Runner) SafeRun(ctx context.Context, fn CheckFunc) *RunResult {
	result := &RunResult{}
	if r.observer != nil {
		obs := r.observer
		result.hooks = append(result.hooks, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := obs.Shutdown(ctx); err != nil {
				r.logger.Warn(ctx, "telemetry shutdown failed", observe.Field{Key: "error", Value: err.Error()})
			}
		})
	}

	run := func(ctx context.Context) (observe.Outcome, error) {
		resource, err := fn(ctx)
		if err == nil && resource == nil {
			err = ErrNilResource
		}
		if err != nil {
			state, reported := r.onError(err)
			if reported == nil {
				reported = err
			}
			result.state, result.err = state, reported
			return observe.Outcome{Status: state.String()}, err
		}
		result.resource = resource
		return observe.Outcome{Resource: resource.Name(), Status: resource.Status().String()}, nil
	}

	mw := r.middleware
	if mw == nil && r.observer != nil {
		var err error
		if mw, err = observe.MiddlewareFromObserver(r.observer); err != nil {
			r.logger.Warn(ctx, "telemetry disabled", observe.Field{Key: "error", Value: err.Error()})
			mw = nil
		}
	}
	if mw != nil {
		run = mw.Wrap(r.meta, run)
	}

	outcome, err := run(ctx)
	if mw == nil {
		logger := r.logger.WithCheck(r.meta)
		if err != nil {
			logger.Error(ctx, "check run failed",
				observe.Field{Key: "check.status", Value: outcome.Status},
				observe.Field{Key: "error", Value: err.Error()})
		} else {
			logger.Info(ctx, "check run completed",
				observe.Field{Key: "check.status", Value: outcome.Status},
				observe.Field{Key: "check.resource", Value: outcome.Resource})
		}
	}

	return result
}

// SafeRun runs fn with a Runner that reports failures with errorState.
func SafeRun(ctx context.Context, fn CheckFunc, errorState Severity) *RunResult {
	return NewRunner(WithErrorState(errorState)).SafeRun(ctx, fn)
}

// RunResult is the outcome of Runner.SafeRun: either a resource to report
// or a failure state with its error.
type RunResult struct {
	resource *Resource
	state    Severity
	err      error
	hooks    []func()
}

// Resource returns the resource produced by a successful run.
func (r *RunResult) Resource() (*Resource, bool) {
	return r.resource, r.resource != nil
}

// Err returns the error of a failed run.
func (r *RunResult) Err() error {
	return r.err
}

// Output returns the final state and plugin output.
//
// A successful run renders its resource. A failed run renders
// "<STATE>: <error>" without perf data.
func (r *RunResult) Output() (Severity, string) {
	if r.resource != nil {
		return r.resource.Output()
	}
	return r.state, fmt.Sprintf("%s: %s", r.state, r.err)
}

// Print writes the plugin output followed by a newline to w and returns the
// final state.
func (r *RunResult) Print(w io.Writer) (Severity, error) {
	state, text := r.Output()
	_, err := fmt.Fprintln(w, text)
	return state, err
}

// PrintAndExit prints the plugin output to stdout, flushes telemetry and
// exits with the final state's exit code.
func (r *RunResult) PrintAndExit() {
	state, text := r.Output()
	printAndExit(state, text, r.hooks...)
}
