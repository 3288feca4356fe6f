package ingest

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

// customFieldRe matches Jira's "Custom field (Name)" header wrapper.
var customFieldRe = regexp.MustCompile(`^custom\s+field\s*\((.+)\)$`)

// FieldMap maps canonical field names to candidate column indices in header order.
type FieldMap map[string][]int

// ResolveFields finds, per canonical field, every column whose header matches one
// of its aliases. Headers are compared lowercased and trimmed, both as-is and with
// the "custom field (...)" wrapper removed. A column can serve several fields, but
// appears at most once in one field's list.
func ResolveFields(headers []string, aliases map[string][]string) FieldMap {
	lower := make([]string, len(headers))
	unwrapped := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
		unwrapped[i] = lower[i]
		if m := customFieldRe.FindStringSubmatch(lower[i]); m != nil {
			unwrapped[i] = strings.TrimSpace(m[1])
		}
	}

	fields := make(FieldMap, len(aliases))
	for canonical, aliasList := range aliases {
		indices := []int{}
		seen := make(map[int]bool)
		for _, alias := range aliasList {
			for i := range lower {
				if seen[i] {
					continue
				}
				if lower[i] == alias || unwrapped[i] == alias {
					indices = append(indices, i)
					seen[i] = true
				}
			}
		}
		fields[canonical] = indices
	}
	return fields
}

// Get returns the first non-empty trimmed value among the field's candidate columns.
func (m FieldMap) Get(row []string, field string) string {
	for _, idx := range m[field] {
		if idx < len(row) {
			if v := strings.TrimSpace(row[idx]); v != "" {
				return v
			}
		}
	}
	return ""
}

// Mapped lists canonical fields that found at least one column, sorted.
func (m FieldMap) Mapped() []string {
	var out []string
	for _, f := range slices.Sorted(maps.Keys(m)) {
		if len(m[f]) > 0 {
			out = append(out, f)
		}
	}
	return out
}

// Unmapped lists canonical fields with no matching column, sorted.
func (m FieldMap) Unmapped() []string {
	var out []string
	for _, f := range slices.Sorted(maps.Keys(m)) {
		if len(m[f]) == 0 {
			out = append(out, f)
		}
	}
	return out
}

// CommentColumns returns the indices of headers accepted by match.
func CommentColumns(headers []string, match func(string) bool) []int {
	var cols []int
	for i, h := range headers {
		if match(h) {
			cols = append(cols, i)
		}
	}
	return cols
}
