package check

import (
	"fmt"
	"io"
	"strings"
)

// Resource is the service under check. It collects CheckResults and
// reduces them to one state and one block of plugin output.
//
// A Resource is built up once and rendered once: after Output, Print or
// PrintAndExit any further mutation panics with ErrResourceFinalized.
type Resource struct {
	name        string
	description *string
	fixedStatus *Severity
	results     []CheckResult
	finalized   bool
}

// NewResource creates a resource with the given display name.
func NewResource(name string) *Resource {
	return &Resource{name: name}
}

// WithDescription sets the text shown after the state on the first line.
func (r *Resource) WithDescription(description string) *Resource {
	r.mustAccumulate()
	r.description = &description
	return r
}

// WithFixedStatus overrides the computed overall state.
func (r *Resource) WithFixedStatus(status Severity) *Resource {
	r.mustAccumulate()
	r.fixedStatus = &status
	return r
}

// WithResult appends a result and returns r for chaining.
func (r *Resource) WithResult(result Resulter) *Resource {
	r.Push(result)
	return r
}

// Push appends a result.
func (r *Resource) Push(result Resulter) {
	r.mustAccumulate()
	r.results = append(r.results, result.CheckResult())
}

func (r *Resource) mustAccumulate() {
	if r.finalized {
		panic(fmt.Errorf("%w: %s", ErrResourceFinalized, r.name))
	}
}

// Name returns the resource name.
func (r *Resource) Name() string {
	return r.name
}

// Description returns the description, if any.
func (r *Resource) Description() (string, bool) {
	if r.description == nil {
		return "", false
	}
	return *r.description, true
}

// Results returns a copy of the collected results in insertion order.
func (r *Resource) Results() []CheckResult {
	out := make([]CheckResult, len(r.results))
	copy(out, r.results)
	return out
}

// Status computes the overall state without finalizing the resource.
//
// The state starts at OK and is raised to the worst status carried by any
// result. A fixed status replaces the computed one.
func (r *Resource) Status() Severity {
	if r.fixedStatus != nil {
		return *r.fixedStatus
	}
	overall := SeverityOK
	for _, res := range r.results {
		if status, ok := res.Status(); ok {
			overall = Worst(overall, status)
		}
	}
	return overall
}

// Output finalizes the resource and returns its state and plugin output.
//
//	<name> is <STATE>[: <description>]
//
//	<message>...|<perf data>
//
// The blank line and message block only appear when a result carries a
// message. The '|' is always present.
func (r *Resource) Output() (Severity, string) {
	r.finalized = true
	status := r.Status()

	var msgs strings.Builder
	perf := make([]string, 0, len(r.results))
	for _, res := range r.results {
		if msg, ok := res.Message(); ok {
			msgs.WriteString(strings.TrimSpace(msg))
			msgs.WriteByte('\n')
		}
		if p, ok := res.PerfString(); ok {
			perf = append(perf, strings.TrimSpace(p.String()))
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s is %s", r.name, status)
	if r.description != nil {
		fmt.Fprintf(&out, ": %s", *r.description)
	}
	if body := strings.TrimSpace(msgs.String()); body != "" {
		out.WriteString("\n\n")
		out.WriteString(body)
	}
	out.WriteByte('|')
	out.WriteString(strings.Join(perf, " "))

	return status, out.String()
}

// Print writes the plugin output followed by a newline to w and returns the
// overall state.
func (r *Resource) Print(w io.Writer) (Severity, error) {
	status, text := r.Output()
	_, err := fmt.Fprintln(w, text)
	return status, err
}

// PrintAndExit prints the plugin output to stdout and exits the process with
// the overall state's exit code.
func (r *Resource) PrintAndExit() {
	status, text := r.Output()
	printAndExit(status, text)
}
