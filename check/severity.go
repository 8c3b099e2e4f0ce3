package check

import (
	"fmt"
	"strings"
)

// Severity is the service state reported by a check.
//
// Severities are ordered by Rank (OK < Unknown < Warning < Critical), which
// decides which state wins when results are combined. The exit code table is
// independent of that order.
type Severity int

const (
	// SeverityOK indicates the service is healthy.
	SeverityOK Severity = iota
	// SeverityWarning indicates a warning threshold was breached.
	SeverityWarning
	// SeverityCritical indicates a critical threshold was breached.
	SeverityCritical
	// SeverityUnknown indicates the state could not be determined.
	SeverityUnknown
)

// Rank returns the position of s in the severity order.
func (s Severity) Rank() int {
	switch s {
	case SeverityOK:
		return 0
	case SeverityWarning:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 1
	}
}

// ExitCode returns the process exit code a plugin uses to report s.
func (s Severity) ExitCode() int {
	switch s {
	case SeverityOK:
		return 0
	case SeverityWarning:
		return 1
	case SeverityCritical:
		return 2
	default:
		return 3
	}
}

// String returns the upper-case name used in plugin output.
func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// WorseThan reports whether s ranks strictly above o.
func (s Severity) WorseThan(o Severity) bool {
	return s.Rank() > o.Rank()
}

// Worst returns whichever of a and b ranks higher.
func Worst(a, b Severity) Severity {
	if b.WorseThan(a) {
		return b
	}
	return a
}

// ParseSeverity parses a severity name case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "ok":
		return SeverityOK, nil
	case "warning":
		return SeverityWarning, nil
	case "critical":
		return SeverityCritical, nil
	case "unknown":
		return SeverityUnknown, nil
	default:
		return SeverityUnknown, fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
	}
}

// MarshalText produces the string value of this Severity.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
