package report

import (
	"regexp"
	"sort"
	"strings"

	"ticketlens/internal/profile"
	"ticketlens/internal/ticket"
)

var keyPrefix = regexp.MustCompile(`^([A-Z]+)`)

// AutoTitle picks a report title. An explicit title always wins. Otherwise
// profiles with key prefix titles use the most common ticket key prefix, and
// the rest list their project keys.
func AutoTitle(tickets []ticket.Ticket, userTitle string, p profile.Profile) string {
	if userTitle != "" {
		return userTitle
	}
	fallback := p.DisplayName + " Dashboard"
	if len(tickets) == 0 {
		return fallback
	}

	if len(p.KeyPrefixTitles) > 0 {
		counts := make(map[string]int)
		var order []string
		for _, t := range tickets {
			m := keyPrefix.FindStringSubmatch(t.Key)
			if m == nil {
				continue
			}
			if counts[m[1]] == 0 {
				order = append(order, m[1])
			}
			counts[m[1]]++
		}
		if len(order) == 0 {
			return fallback
		}
		top := order[0]
		for _, prefix := range order[1:] {
			if counts[prefix] > counts[top] {
				top = prefix
			}
		}
		if label, ok := p.KeyPrefixTitles[top]; ok {
			return label + " Dashboard"
		}
		return top + " Dashboard"
	}

	projects := make(map[string]bool)
	for _, t := range tickets {
		if project, _, ok := strings.Cut(t.Key, "-"); ok {
			projects[project] = true
		} else if t.Project != "" {
			projects[t.Project] = true
		}
	}
	if len(projects) == 0 {
		return fallback
	}
	names := make([]string, 0, len(projects))
	for name := range projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ") + " Dashboard"
}
