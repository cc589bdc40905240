package stats

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order. Layouts without a zone parse as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a date-time that may be missing or unparsable.
// The zero value is the "not a time" marker.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// ParseTimestamp never fails: unparsable input yields an invalid Timestamp
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, Valid: true}
		}
	}
	return Timestamp{}
}

// Naive drops the zone offset and keeps the wall-clock reading, so
// 10:00+02:00 becomes 10:00 rather than 08:00. The result is expressed
// in UTC which makes Naive idempotent.
func (t Timestamp) Naive() Timestamp {
	if !t.Valid {
		return t
	}
	w := t.Time
	return Timestamp{
		Time:  time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), time.UTC),
		Valid: true,
	}
}

// String formats valid timestamps as "2006-01-02 15:04:05" and returns
// an empty string otherwise
func (t Timestamp) String() string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format("2006-01-02 15:04:05")
}
