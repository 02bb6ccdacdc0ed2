package table

import (
	"strings"
	"time"
)

// isoLayout is the output timestamp format: UTC ISO-8601 with second
// precision.
const isoLayout = "2006-01-02T15:04:05Z"

// timestampLayouts are tried in order when parsing input timestamps.
// Layouts without a zone designator are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// ParseTimestamp parses a cell value as a UTC timestamp. Unparseable values
// report ok=false and the row is dropped by the caller.
func ParseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timestampLayouts {
			if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return parsed.UTC(), true
			}
		}
		return time.Time{}, false
	case int64:
		// Epoch seconds, as stored by some SQLite exports.
		return time.Unix(t, 0).UTC(), true
	default:
		return time.Time{}, false
	}
}

// FormatTime renders a timestamp as UTC ISO-8601 with second precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
