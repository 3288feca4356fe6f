package scalar

import (
	"strings"
	"time"
)

// dateLayouts is tried in order; the first layout that consumes the whole input wins.
// Day-first numeric layouts precede month-first ones, so "03/04/2024" is 3 April.
var dateLayouts = []string{
	"2/Jan/06 3:04 PM",
	"2/Jan/06 15:04",
	"2/Jan/2006 3:04 PM",
	"2/Jan/2006 15:04",
	"2006-1-2T15:04:05Z07:00",
	"2006-1-2T15:04:05Z0700",
	"2006-1-2T15:04:05",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06 15:04:05",
	"1/2/06 15:04",
	"1/2/06 3:04 PM",
	"1/2/06",
}

// ParseDate parses the date formats found in tracker exports.
// The result is timezone-naive: any offset in the input is dropped and the wall
// clock is kept, expressed in UTC. No conversion between zones is performed.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	// The PM layout element only accepts upper case.
	if n := len(value); n > 3 && value[n-3] == ' ' {
		if suffix := strings.ToUpper(value[n-2:]); suffix == "AM" || suffix == "PM" {
			value = value[:n-2] + suffix
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Naive(t), true
		}
	}
	return time.Time{}, false
}

// ParseDatePtr is ParseDate for optional fields.
func ParseDatePtr(value string) *time.Time {
	if t, ok := ParseDate(value); ok {
		return &t
	}
	return nil
}

// Naive keeps the wall clock of t and drops its location.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// MonthKey returns the YYYY-MM bucket of t.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DaysBetween returns (to - from) in fractional days. It is negative when to precedes from.
func DaysBetween(from, to time.Time) float64 {
	return to.Sub(from).Seconds() / 86400.0
}
