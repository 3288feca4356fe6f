package scalar

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var listSep = regexp.MustCompile(`[,;]+`)

// SplitList splits a comma or semicolon joined cell into trimmed, non-empty items.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var items []string
	for _, item := range listSep.Split(value, -1) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseBool recognises true/1/yes and false/0/no, case-insensitively.
// Anything else is nil.
func ParseBool(value string) *bool {
	var b bool
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		b = true
	case "false", "0", "no":
		b = false
	default:
		return nil
	}
	return &b
}

// ParseFloatPtr returns nil for empty or non-numeric input.
func ParseFloatPtr(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseCountPtr parses counts exported as "2" or "2.0".
func ParseCountPtr(value string) *int {
	f := ParseFloatPtr(value)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// Round1 rounds to one decimal place, halves to even.
func Round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

// Percent returns part/total*100 rounded to one decimal, or 0 for an empty total.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round1(float64(part) / float64(total) * 100)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
