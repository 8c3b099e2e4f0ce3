package check

import (
	"cmp"
	"fmt"
)

// TriggerIfValue selects which side of a threshold counts as a breach.
type TriggerIfValue int

const (
	// TriggerIfGreater breaches when the value rises to or above the bound.
	TriggerIfGreater TriggerIfValue = iota
	// TriggerIfLess breaches when the value falls to or below the bound.
	TriggerIfLess
)

// String returns the trigger name.
func (t TriggerIfValue) String() string {
	switch t {
	case TriggerIfLess:
		return "less"
	default:
		return "greater"
	}
}

// Thresholds holds the warning and critical bounds of a metric.
// Either bound may be nil.
type Thresholds[T any] struct {
	Warning  *T
	Critical *T
	Trigger  TriggerIfValue
}

// Metric is a single named measurement with optional thresholds.
//
// The zero value is not usable; create metrics with NewMetric,
// NewMetricFunc or NewBoolMetric. All With methods return a modified copy.
type Metric[T any] struct {
	name        string
	value       T
	unit        Unit
	thresholds  *Thresholds[T]
	min         *T
	max         *T
	fixedStatus *Severity
	compare     func(a, b T) int
}

// NewMetric creates a metric for any ordered value type.
func NewMetric[T cmp.Ordered](name string, value T) Metric[T] {
	return NewMetricFunc(name, value, cmp.Compare[T])
}

// NewMetricFunc creates a metric whose values are ordered by compare, which
// must return a negative number when a < b, zero when a == b and a positive
// number when a > b.
func NewMetricFunc[T any](name string, value T, compare func(a, b T) int) Metric[T] {
	return Metric[T]{
		name:    name,
		value:   value,
		unit:    UnitNone,
		compare: compare,
	}
}

// NewBoolMetric creates a boolean metric ordered false < true.
func NewBoolMetric(name string, value bool) Metric[bool] {
	return NewMetricFunc(name, value, CompareBool)
}

// CompareBool orders false before true.
func CompareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// WithThresholds sets both bounds and the trigger direction.
func (m Metric[T]) WithThresholds(warning, critical T, trigger TriggerIfValue) Metric[T] {
	m.thresholds = &Thresholds[T]{
		Warning:  &warning,
		Critical: &critical,
		Trigger:  trigger,
	}
	return m
}

// WithWarning sets the warning bound, keeping any critical bound and trigger.
func (m Metric[T]) WithWarning(warning T) Metric[T] {
	th := m.copyThresholds()
	th.Warning = &warning
	m.thresholds = th
	return m
}

// WithCritical sets the critical bound, keeping any warning bound and trigger.
func (m Metric[T]) WithCritical(critical T) Metric[T] {
	th := m.copyThresholds()
	th.Critical = &critical
	m.thresholds = th
	return m
}

// WithTrigger sets the trigger direction. The default is TriggerIfGreater.
func (m Metric[T]) WithTrigger(trigger TriggerIfValue) Metric[T] {
	th := m.copyThresholds()
	th.Trigger = trigger
	m.thresholds = th
	return m
}

// WithMin sets the minimum value shown in perf data.
func (m Metric[T]) WithMin(v T) Metric[T] {
	m.min = &v
	return m
}

// WithMax sets the maximum value shown in perf data.
func (m Metric[T]) WithMax(v T) Metric[T] {
	m.max = &v
	return m
}

// WithUnit sets the unit of measurement.
func (m Metric[T]) WithUnit(unit Unit) Metric[T] {
	m.unit = unit
	return m
}

// WithFixedStatus makes the metric report status regardless of thresholds.
func (m Metric[T]) WithFixedStatus(status Severity) Metric[T] {
	m.fixedStatus = &status
	return m
}

func (m Metric[T]) copyThresholds() *Thresholds[T] {
	if m.thresholds == nil {
		return &Thresholds[T]{Trigger: TriggerIfGreater}
	}
	th := *m.thresholds
	return &th
}

// Name returns the metric name.
func (m Metric[T]) Name() string {
	return m.name
}

// Value returns the measured value.
func (m Metric[T]) Value() T {
	return m.value
}

// Unit returns the unit of measurement.
func (m Metric[T]) Unit() Unit {
	return m.unit
}

// Thresholds returns a copy of the configured thresholds, if any.
func (m Metric[T]) Thresholds() (Thresholds[T], bool) {
	if m.thresholds == nil {
		return Thresholds[T]{}, false
	}
	return *m.thresholds, true
}

// Evaluate decides the metric's status.
//
// A fixed status always wins. Without thresholds, or when no bound is
// breached, the metric has no opinion and ok is false. The critical bound is
// checked first, and reaching a bound exactly counts as breaching it.
func (m Metric[T]) Evaluate() (status Severity, ok bool) {
	status, _, ok = m.evaluate()
	return status, ok
}

func (m Metric[T]) evaluate() (Severity, *T, bool) {
	if m.fixedStatus != nil {
		return *m.fixedStatus, nil, true
	}
	if m.thresholds == nil {
		return SeverityOK, nil, false
	}
	if m.breaches(m.thresholds.Critical) {
		return SeverityCritical, m.thresholds.Critical, true
	}
	if m.breaches(m.thresholds.Warning) {
		return SeverityWarning, m.thresholds.Warning, true
	}
	return SeverityOK, nil, false
}

func (m Metric[T]) breaches(bound *T) bool {
	if bound == nil {
		return false
	}
	c := m.compare(m.value, *bound)
	if m.thresholds.Trigger == TriggerIfLess {
		return c <= 0
	}
	return c >= 0
}

// Message describes a threshold breach. It is empty unless a threshold
// produced a Warning or Critical status.
func (m Metric[T]) Message() (string, bool) {
	status, bound, ok := m.evaluate()
	if !ok || bound == nil {
		return "", false
	}
	return fmt.Sprintf("metric '%s' is %s: value '%s' has exceeded threshold of '%s'",
		m.name, status, FormatValue(m.value), FormatValue(*bound)), true
}

// PerfString renders the metric's perf data fragment.
func (m Metric[T]) PerfString() PerfString {
	var warning, critical *T
	if m.thresholds != nil {
		warning, critical = m.thresholds.Warning, m.thresholds.Critical
	}
	return NewPerfString(m.name, m.value, m.unit, warning, critical, m.min, m.max)
}

// CheckResult converts the metric into a CheckResult.
func (m Metric[T]) CheckResult() CheckResult {
	r := NewCheckResult().WithPerfString(m.PerfString())
	if status, ok := m.Evaluate(); ok {
		r = r.WithStatus(status)
	}
	if msg, ok := m.Message(); ok {
		r = r.WithMessage(msg)
	}
	return r
}
