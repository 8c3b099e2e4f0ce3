package check

// Resulter is anything that can be evaluated into a CheckResult.
// Metric and CheckResult both implement it.
type Resulter interface {
	CheckResult() CheckResult
}

// CheckResult is the evaluated outcome of one metric or manual signal.
//
// Each part is optional: a result without a status does not affect the
// overall state, one without a message adds nothing to the text body and one
// without perf data adds nothing to the perf data segment.
type CheckResult struct {
	status     Severity
	hasStatus  bool
	message    string
	hasMessage bool
	perf       PerfString
	hasPerf    bool
}

// NewCheckResult creates an empty result.
func NewCheckResult() CheckResult {
	return CheckResult{}
}

// Signal creates a result carrying a status and a message, for conditions
// that are not metrics, such as a failed connection.
func Signal(status Severity, message string) CheckResult {
	return NewCheckResult().WithStatus(status).WithMessage(message)
}

// WithStatus sets the status on a result.
func (r CheckResult) WithStatus(status Severity) CheckResult {
	r.status = status
	r.hasStatus = true
	return r
}

// WithMessage sets the message on a result.
func (r CheckResult) WithMessage(message string) CheckResult {
	r.message = message
	r.hasMessage = true
	return r
}

// WithPerfString sets the perf data fragment on a result.
func (r CheckResult) WithPerfString(perf PerfString) CheckResult {
	r.perf = perf
	r.hasPerf = true
	return r
}

// Status returns the status, if any.
func (r CheckResult) Status() (Severity, bool) {
	return r.status, r.hasStatus
}

// Message returns the message, if any.
func (r CheckResult) Message() (string, bool) {
	return r.message, r.hasMessage
}

// PerfString returns the perf data fragment, if any.
func (r CheckResult) PerfString() (PerfString, bool) {
	return r.perf, r.hasPerf
}

// CheckResult returns r itself.
func (r CheckResult) CheckResult() CheckResult {
	return r
}
