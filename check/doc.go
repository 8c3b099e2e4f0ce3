// Package check turns measurements into monitoring plugin results.
//
// A plugin builds Metrics, evaluates them against warning and critical
// thresholds, collects the results in a Resource and reports the Resource in
// the Nagios plugin text protocol: one status line, an optional message
// block and a '|'-separated perf data segment. The process exit code carries
// the state (OK=0, WARNING=1, CRITICAL=2, UNKNOWN=3).
//
// # Metrics
//
// A metric with thresholds reports Warning or Critical when its value
// reaches a bound in the trigger direction. Reaching the bound exactly is a
// breach, and the critical bound is checked first:
//
//	m := check.NewMetric("load", 4.2).
//	    WithThresholds(2.0, 5.0, check.TriggerIfGreater)
//
// A metric without thresholds, or whose bounds are not reached, has no
// opinion and does not influence the overall state.
//
// # Resources
//
// The overall state is the worst state of all results, ordered
// OK < UNKNOWN < WARNING < CRITICAL:
//
//	resource := check.NewResource("disk").
//	    WithDescription("root filesystem").
//	    WithResult(check.NewMetric("used", 91).WithUnit(check.UnitPercentage).
//	        WithThresholds(80, 90, check.TriggerIfGreater))
//	resource.PrintAndExit()
//
// # Runner
//
// Runner runs a check function and reports its failure as a state:
//
//	func main() {
//	    check.NewRunner().SafeRun(context.Background(), doCheck).PrintAndExit()
//	}
//
// Failures report CRITICAL unless WithErrorHandler or WithErrorState
// chooses otherwise.
package check
