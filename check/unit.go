package check

import (
	"fmt"
	"strings"
	"unicode"
)

// UnitString is a unit symbol that is safe to embed in performance data.
type UnitString struct {
	symbol string
}

// NewUnitString validates s and wraps it as a UnitString.
// Digits, double quotes and semicolons are rejected: a perf data parser
// would read them as part of the value or as a field separator.
func NewUnitString(s string) (UnitString, error) {
	for _, r := range s {
		if unicode.IsDigit(r) || r == '"' || r == ';' {
			return UnitString{}, fmt.Errorf("%w: %q contains %q", ErrInvalidUnitString, s, r)
		}
	}
	return UnitString{symbol: s}, nil
}

// NewUnitStringUnchecked wraps s without validation.
// Only use it for symbols known to be valid.
func NewUnitStringUnchecked(s string) UnitString {
	return UnitString{symbol: s}
}

// String returns the unit symbol.
func (u UnitString) String() string {
	return u.symbol
}

// Unit is the unit of measurement appended to a metric value.
type Unit struct {
	symbol string
}

// Predefined units.
var (
	UnitNone         = Unit{}
	UnitSeconds      = Unit{symbol: "s"}
	UnitMilliseconds = Unit{symbol: "ms"}
	UnitMicroseconds = Unit{symbol: "us"}
	UnitPercentage   = Unit{symbol: "%"}
	UnitBytes        = Unit{symbol: "B"}
	UnitKilobytes    = Unit{symbol: "KB"}
	UnitMegabytes    = Unit{symbol: "MB"}
	UnitGigabytes    = Unit{symbol: "GB"}
	UnitTerabytes    = Unit{symbol: "TB"}
	UnitCounter      = Unit{symbol: "c"}
)

var predefinedUnits = []Unit{
	UnitNone,
	UnitSeconds,
	UnitMilliseconds,
	UnitMicroseconds,
	UnitPercentage,
	UnitBytes,
	UnitKilobytes,
	UnitMegabytes,
	UnitGigabytes,
	UnitTerabytes,
	UnitCounter,
}

// OtherUnit returns a unit with a custom symbol.
func OtherUnit(s UnitString) Unit {
	return Unit{symbol: s.symbol}
}

// ParseUnit maps a unit symbol to a Unit. Symbols that are not predefined
// become a validated OtherUnit.
func ParseUnit(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	for _, u := range predefinedUnits {
		if u.symbol == s {
			return u, nil
		}
	}
	us, err := NewUnitString(s)
	if err != nil {
		return UnitNone, err
	}
	return OtherUnit(us), nil
}

// String returns the symbol rendered after the value in perf data.
func (u Unit) String() string {
	return u.symbol
}
