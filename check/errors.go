package check

import "errors"

var (
	// ErrInvalidSeverity indicates a severity name outside ok|warning|critical|unknown.
	ErrInvalidSeverity = errors.New("check: invalid severity name")

	// ErrInvalidUnitString indicates a unit symbol that would corrupt performance data.
	ErrInvalidUnitString = errors.New("check: invalid unit string")

	// ErrResourceFinalized indicates a resource was mutated after its output was rendered.
	ErrResourceFinalized = errors.New("check: resource already finalized")

	// ErrNilResource indicates a check function returned neither a resource nor an error.
	ErrNilResource = errors.New("check: check returned nil resource")
)
