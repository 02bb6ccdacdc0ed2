package table

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// IsMissing reports whether a cell value counts as missing: nil, a blank
// string, or a NaN float.
func IsMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case float64:
		return math.IsNaN(t)
	default:
		return false
	}
}

// Jsonable converts a cell value into its JSON representation, preserving
// the int/float/bool distinction. Missing values become nil; times render in
// UTC ISO-8601.
func Jsonable(v any) any {
	if IsMissing(v) {
		return nil
	}
	switch t := v.(type) {
	case time.Time:
		return FormatTime(t)
	case string, bool, int64, float64:
		return t
	case int:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return t
	}
}

// Numeric coerces a cell value to float64. Strings are parsed; anything else
// non-numeric reports ok=false.
func Numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return 0, false
		}
		return t, true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case float32:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Round4 rounds to 4 decimal places. Series values are decimal-rounded at
// serialization, not at storage, so repeated runs stay bit-for-bit stable.
func Round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}

// AsString renders a cell value as its raw string form for equality matching
// (region, variable and level comparisons).
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return FormatTime(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
