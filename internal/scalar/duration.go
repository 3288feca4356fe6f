package scalar

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Work-calendar units used by tracker time fields. A week is five working days
// of eight hours, not a calendar week.
// TODO: surface the work-week length as a profile setting if a tracker with calendar weeks shows up.
const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 8 * SecondsPerHour
	SecondsPerWeek   = 5 * SecondsPerDay
)

var durationRe = regexp.MustCompile(`(?i)^(?:(\d+)\s*w)?\s*(?:(\d+)\s*d)?\s*(?:(\d+)\s*h)?\s*(?:(\d+)\s*m)?\s*(?:(\d+)\s*s)?$`)

// ParseDuration converts "1w 2d 3h 30m" style strings, or a bare number of
// seconds, to seconds. Unparseable input reports false.
func ParseDuration(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	}

	m := durationRe.FindStringSubmatch(value)
	if m == nil {
		return 0, false
	}

	units := []int64{SecondsPerWeek, SecondsPerDay, SecondsPerHour, SecondsPerMinute, 1}
	var total int64
	matched := false
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, false
		}
		if n > (math.MaxInt64-total)/unit {
			return 0, false
		}
		matched = true
		total += n * unit
	}
	if !matched {
		return 0, false
	}
	return total, true
}

// ParseDurationPtr is ParseDuration for optional fields.
func ParseDurationPtr(value string) *int64 {
	if s, ok := ParseDuration(value); ok {
		return &s
	}
	return nil
}

// NoValue is printed for absent or negative durations.
const NoValue = "—"

// FormatDuration renders seconds as "1w 2d 3h 30m". Seconds are dropped.
func FormatDuration(seconds *int64) string {
	if seconds == nil || *seconds < 0 {
		return NoValue
	}
	s := *seconds
	if s == 0 {
		return "0m"
	}

	var parts []string
	for _, u := range []struct {
		size   int64
		suffix string
	}{
		{SecondsPerWeek, "w"},
		{SecondsPerDay, "d"},
		{SecondsPerHour, "h"},
		{SecondsPerMinute, "m"},
	} {
		n := s / u.size
		s %= u.size
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, u.suffix))
		}
	}
	if len(parts) == 0 {
		return "< 1m"
	}
	return strings.Join(parts, " ")
}

// FormatSeconds is FormatDuration for a plain value.
func FormatSeconds(seconds int64) string {
	return FormatDuration(&seconds)
}

// FormatDays renders a day count with one decimal, or "< 1d".
func FormatDays(days float64) string {
	if days < 1 {
		return "< 1d"
	}
	return fmt.Sprintf("%.1fd", days)
}
