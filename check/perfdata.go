package check

import (
	"strings"
)

// PerfString is one rendered performance data fragment:
//
//	'<label>'=<value><unit>;<warning>;<critical>;<min>;<max>
//
// Absent fields render empty and every separator is kept, so a parser can
// rely on field positions. A PerfString can only be built by NewPerfString,
// which means its content never needs escaping again.
type PerfString struct {
	s string
}

// NewPerfString renders a perf data fragment. Nil bounds are left empty.
func NewPerfString[T any](name string, value T, unit Unit, warning, critical, minValue, maxValue *T) PerfString {
	var b strings.Builder
	b.WriteString(quoteLabel(name))
	b.WriteByte('=')
	b.WriteString(FormatValue(value))
	b.WriteString(unit.String())
	for _, field := range []*T{warning, critical, minValue, maxValue} {
		b.WriteByte(';')
		b.WriteString(formatOptional(field))
	}
	return PerfString{s: b.String()}
}

// String returns the rendered fragment.
func (p PerfString) String() string {
	return p.s
}

// EscapeLabel makes a metric name safe to use as a perf data label.
//
// '=' becomes '_' and every single quote is doubled. A label that then
// contains a space is wrapped in single quotes.
func EscapeLabel(name string) string {
	label := strings.ReplaceAll(name, "=", "_")
	label = strings.ReplaceAll(label, "'", "''")
	if strings.Contains(label, " ") {
		label = "'" + label + "'"
	}
	return label
}

// quoteLabel always quotes; EscapeLabel already did so for labels with spaces.
func quoteLabel(name string) string {
	label := EscapeLabel(name)
	if strings.Contains(label, " ") {
		return label
	}
	return "'" + label + "'"
}
