package check

import (
	"fmt"
	"reflect"
	"strconv"
)

// PerfValuer is implemented by values with a custom perf data rendering.
// It is consulted before the built-in rendering, so a type can pick a
// representation without touching its String method.
type PerfValuer interface {
	PerfValue() string
}

// FormatValue renders v the way it appears in performance data and in
// threshold messages.
//
// Booleans render as true/false, integers in decimal, floats as the shortest
// decimal that round-trips (never in exponent form) and strings verbatim.
// Named types are rendered by their underlying kind.
func FormatValue(v any) string {
	if pv, ok := v.(PerfValuer); ok {
		return pv.PerfValue()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return rv.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatOptional[T any](v *T) string {
	if v == nil {
		return ""
	}
	return FormatValue(*v)
}
