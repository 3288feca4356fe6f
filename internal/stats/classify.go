package stats

import (
	"strings"
	"time"

	"ticketlens/internal/profile"
	"ticketlens/internal/scalar"
	"ticketlens/internal/ticket"
)

// IsOpen reports whether status counts as open under p. Closed statuses win,
// and statuses the profile does not know are treated as open.
func IsOpen(status string, p profile.Profile) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	if p.ClosedStatuses.Has(s) {
		return false
	}
	return true
}

// IsBlocked reports whether status is one of p's blocked statuses.
func IsBlocked(status string, p profile.Profile) bool {
	return p.BlockedStatuses.Has(strings.ToLower(strings.TrimSpace(status)))
}

// IsUnassigned reports whether an open ticket has no real owner.
func IsUnassigned(t ticket.Ticket, p profile.Profile) bool {
	return t.Assignee == "" || t.Assignee == p.Unassigned
}

// IsOverdue reports whether the due date is strictly before now.
func IsOverdue(t ticket.Ticket, now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}

// IsStale reports whether the last activity, or the creation date when there is
// no activity, lies more than staleDays before now. Tickets without either
// date are never stale. The open check is left to the caller.
func IsStale(t ticket.Ticket, staleDays int, now time.Time) bool {
	if last := t.LastActivity(); last != nil {
		return scalar.DaysBetween(*last, now) > float64(staleDays)
	}
	if t.Created != nil {
		return scalar.DaysBetween(*t.Created, now) > float64(staleDays)
	}
	return false
}

// ageBucket returns the index into AgeBucketLabels for an age in days.
func ageBucket(days float64) int {
	switch {
	case days < 7:
		return 0
	case days < 14:
		return 1
	case days < 30:
		return 2
	case days < 60:
		return 3
	case days < 90:
		return 4
	default:
		return 5
	}
}
