package ingest

import (
	"regexp"
	"strings"
	"time"

	"ticketlens/internal/profile"
	"ticketlens/internal/scalar"
)

var (
	// "15/Jan/24 9:30 AM" at the start of a comment cell.
	leadingDateRe = regexp.MustCompile(`^(\d{1,2}/\w{3}/\d{2,4}\s+\d{1,2}:\d{2}\s*(?:AM|PM)?)`)
	// "2024-01-15 09:30:00 - Author" header line of a work note.
	workNoteRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2})\s*-\s*(.+)`)
)

// LatestComment scans the comment columns of a row and returns the most recent
// dated note. Without any dated note, the first non-empty text is returned undated.
func LatestComment(row []string, cols []int, style profile.NoteStyle) (*time.Time, string) {
	var latest *time.Time
	var text string

	for _, ci := range cols {
		if ci >= len(row) {
			continue
		}
		val := strings.TrimSpace(row[ci])
		if val == "" {
			continue
		}

		var d *time.Time
		var body string
		switch style {
		case profile.NoteTimestamped:
			d, body = splitWorkNote(val)
		default:
			d, body = splitSemicolonComment(val)
		}

		if d != nil {
			if latest == nil || d.After(*latest) {
				latest = d
				text = body
			}
		} else if text == "" {
			text = body
		}
	}
	return latest, text
}

func splitSemicolonComment(val string) (*time.Time, string) {
	if parts := strings.Split(val, ";"); len(parts) >= 3 {
		return scalar.ParseDatePtr(strings.TrimSpace(parts[0])), strings.TrimSpace(parts[len(parts)-1])
	}
	if m := leadingDateRe.FindStringSubmatchIndex(val); m != nil {
		d := scalar.ParseDatePtr(val[m[2]:m[3]])
		body := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(val[m[1]:]), ";"))
		return d, body
	}
	return nil, val
}

func splitWorkNote(val string) (*time.Time, string) {
	m := workNoteRe.FindStringSubmatchIndex(val)
	if m == nil {
		return nil, val
	}
	d := scalar.ParseDatePtr(val[m[2]:m[3]])
	body := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(val[m[1]:]), "-"))
	if body == "" {
		body = val
	}
	return d, body
}
