// Command check_threshold is a monitoring plugin that compares a value
// given on the command line against warning and critical thresholds.
//
//	check_threshold --resource disk --metric used --value 91 --unit % \
//	    --warning 80 --critical 90 --min 0 --max 100
//
// Every flag can also be set through a CHECK_THRESHOLD_ environment
// variable, e.g. CHECK_THRESHOLD_WARNING=80.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jonwraymond/nagiosplugin/check"
	"github.com/jonwraymond/nagiosplugin/icinga"
	"github.com/jonwraymond/nagiosplugin/observe"
)

const pluginName = "check_threshold"

var version = "v0.1.0" // injected by -ldflags during build

var errValueRequired = errors.New("--value is required")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the plugin and returns its exit code.
func run(args []string, stdout io.Writer) int {
	v := viper.New()
	v.SetEnvPrefix("CHECK_THRESHOLD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	code := check.SeverityUnknown.ExitCode()
	cmd, err := newRootCommand(v, stdout, &code)
	if err != nil {
		fmt.Fprintf(stdout, "%s: %v\n", check.SeverityUnknown, err)
		return check.SeverityUnknown.ExitCode()
	}
	cmd.SetArgs(args)

	if err := icinga.PrintIfEnvAndExit("threshold", cmd.Flags()); err != nil {
		fmt.Fprintf(stdout, "%s: %v\n", check.SeverityUnknown, err)
		return check.SeverityUnknown.ExitCode()
	}

	if err := cmd.Execute(); err != nil {
		// Usage errors are reported like any other plugin failure.
		fmt.Fprintf(stdout, "%s: %v\n", check.SeverityUnknown, err)
		return check.SeverityUnknown.ExitCode()
	}
	return code
}

func newRootCommand(v *viper.Viper, stdout io.Writer, code *int) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:           pluginName,
		Short:         "Compare a value against warning and critical thresholds",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := execute(cmd.Context(), v, stdout)
			if err != nil {
				return err
			}
			*code = state.ExitCode()
			return nil
		},
	}
	cmd.SetOut(os.Stderr)

	addFlags(cmd.Flags())
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	return cmd, nil
}

func addFlags(fs *pflag.FlagSet) {
	fs.String("resource", "threshold", "Name of the checked resource")
	fs.String("metric", "value", "Name of the metric")
	fs.Float64("value", 0, "Measured value")
	fs.Float64("warning", 0, "Warning threshold")
	fs.Float64("critical", 0, "Critical threshold")
	fs.Bool("below", false, "Alert when the value falls to or below the thresholds")
	fs.String("unit", "", "Unit of measurement, e.g. s, %, MB")
	fs.Float64("min", 0, "Minimum value shown in perf data")
	fs.Float64("max", 0, "Maximum value shown in perf data")
	fs.String("description", "", "Text shown after the state")
	fs.String("state-on-error", "unknown", "State reported when the check fails")
	fs.String("log-level", "warn", "Log level (debug, info, warn, error)")
	fs.String("metrics-exporter", "none", "Run metrics exporter (stderr, otlp, textfile, none)")
	fs.String("metrics-textfile", "", "Target file of the textfile metrics exporter")
	fs.String("trace-exporter", "none", "Trace exporter (stderr, otlp, none)")
}

// execute runs the check, prints its result and flushes telemetry.
func execute(ctx context.Context, v *viper.Viper, stdout io.Writer) (check.Severity, error) {
	obs, err := observe.NewObserver(ctx, observerConfig(v))
	if err != nil {
		return check.SeverityUnknown, err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			obs.Logger().Warn(shutdownCtx, "telemetry shutdown failed", observe.Field{Key: "error", Value: err.Error()})
		}
	}()

	errorState, stateErr := check.ParseSeverity(v.GetString("state-on-error"))
	if stateErr != nil {
		errorState = check.SeverityUnknown
	}

	runner := check.NewRunner(
		check.WithErrorState(errorState),
		check.WithObserver(obs),
		check.WithMeta(observe.CheckMeta{Plugin: pluginName, Version: version}),
	)

	result := runner.SafeRun(ctx, func(ctx context.Context) (*check.Resource, error) {
		if stateErr != nil {
			return nil, stateErr
		}
		return buildResource(v)
	})
	return result.Print(stdout)
}

func observerConfig(v *viper.Viper) observe.Config {
	tracing := v.GetString("trace-exporter")
	metrics := v.GetString("metrics-exporter")
	return observe.Config{
		ServiceName: pluginName,
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:  tracing != "" && tracing != "none",
			Exporter: tracing,
		},
		Metrics: observe.MetricsConfig{
			Enabled:      metrics != "" && metrics != "none",
			Exporter:     metrics,
			TextfilePath: v.GetString("metrics-textfile"),
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   v.GetString("log-level"),
		},
	}
}

func buildResource(v *viper.Viper) (*check.Resource, error) {
	if !v.IsSet("value") {
		return nil, errValueRequired
	}

	unit, err := check.ParseUnit(v.GetString("unit"))
	if err != nil {
		return nil, err
	}

	m := check.NewMetric(v.GetString("metric"), v.GetFloat64("value")).WithUnit(unit)
	if v.IsSet("warning") {
		m = m.WithWarning(v.GetFloat64("warning"))
	}
	if v.IsSet("critical") {
		m = m.WithCritical(v.GetFloat64("critical"))
	}
	if v.GetBool("below") {
		m = m.WithTrigger(check.TriggerIfLess)
	}
	if v.IsSet("min") {
		m = m.WithMin(v.GetFloat64("min"))
	}
	if v.IsSet("max") {
		m = m.WithMax(v.GetFloat64("max"))
	}

	resource := check.NewResource(v.GetString("resource")).WithResult(m)
	if d := v.GetString("description"); d != "" {
		resource.WithDescription(d)
	}
	return resource, nil
}
