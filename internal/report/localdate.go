package report

import (
	"strings"
	"time"
)

// Timestamp layouts seen in the spreadsheet, most specific first.
// The zoneless ones carry shop-local wall-clock time.
var timestampLayouts = []struct {
	layout   string
	zoneless bool
}{
	{time.RFC3339Nano, false},
	{time.RFC3339, false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02", true},
}

// ParseTimestamp parses a wire timestamp leniently. Layouts without an
// offset are read as wall-clock time in loc; the old front-end wrote
// them in shop-local time, so reading them as UTC would shift sales
// near midnight onto the wrong calendar date. ok is false for anything
// unreadable; callers treat that record as non-matching rather than
// failing the whole aggregation.
func ParseTimestamp(ts string, loc *time.Location) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, l := range timestampLayouts {
		if l.zoneless {
			if t, err := time.ParseInLocation(l.layout, ts, loc); err == nil {
				return t, true
			}
			continue
		}
		if t, err := time.Parse(l.layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TodayLocal returns the calendar date of now in loc as "YYYY-MM-DD".
// It is built from local date components, not from slicing an ISO
// string, so it stays correct near midnight in non-UTC zones.
func TodayLocal(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format("2006-01-02")
}

// LocalDateOf converts an absolute instant to its calendar date as
// perceived in loc. ok is false for unparseable input.
func LocalDateOf(ts string, loc *time.Location) (string, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, ok := ParseTimestamp(ts, loc)
	if !ok {
		return "", false
	}
	return t.In(loc).Format("2006-01-02"), true
}

// IsOnDate reports whether ts falls on the target local calendar date.
// A missing or malformed timestamp never matches.
func IsOnDate(ts, target string, loc *time.Location) bool {
	if target == "" {
		return false
	}
	d, ok := LocalDateOf(ts, loc)
	return ok && d == target
}
