package ticket

import (
	"encoding/json"
	"time"

	"ticketlens/internal/scalar"
)

// Field is one original header/value pair, kept verbatim.
type Field struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// Ticket is one export row mapped onto canonical attributes.
// Service-management attributes stay zero unless the source profile enables them.
type Ticket struct {
	Key        string     `json:"key"`
	Summary    string     `json:"summary"`
	Status     string     `json:"status"`
	Assignee   string     `json:"assignee"`
	Reporter   string     `json:"reporter"`
	Priority   string     `json:"priority"`
	IssueType  string     `json:"issue_type"`
	Created    *time.Time `json:"created,omitempty"`
	Updated    *time.Time `json:"updated,omitempty"`
	Resolved   *time.Time `json:"resolved,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Labels     string     `json:"labels,omitempty"`
	Components string     `json:"components,omitempty"`
	FixVersion string     `json:"fix_versions,omitempty"`
	Resolution string     `json:"resolution,omitempty"`

	StoryPoints       *float64 `json:"story_points,omitempty"`
	OriginalEstimate  *int64   `json:"original_estimate_secs,omitempty"`
	TimeSpent         *int64   `json:"time_spent_secs,omitempty"`
	RemainingEstimate *int64   `json:"remaining_estimate_secs,omitempty"`

	EpicLink string `json:"epic_link,omitempty"`
	Sprint   string `json:"sprint,omitempty"`
	Project  string `json:"project,omitempty"`
	Parent   string `json:"parent,omitempty"`

	LastCommentDate *time.Time `json:"last_comment_date,omitempty"`
	LastCommentText string     `json:"last_comment_text,omitempty"`

	// Raw holds every original column in header order.
	Raw []Field `json:"-"`

	Category          string     `json:"category,omitempty"`
	Subcategory       string     `json:"subcategory,omitempty"`
	AssignmentGroup   string     `json:"assignment_group,omitempty"`
	ContactType       string     `json:"contact_type,omitempty"`
	Impact            string     `json:"impact,omitempty"`
	Urgency           string     `json:"urgency,omitempty"`
	MadeSLA           *bool      `json:"made_sla,omitempty"`
	BusinessDuration  *int64     `json:"business_duration_secs,omitempty"`
	Escalation        string     `json:"escalation,omitempty"`
	ReassignmentCount *int       `json:"reassignment_count,omitempty"`
	ReopenCount       *int       `json:"reopen_count,omitempty"`
	CloseNotes        string     `json:"close_notes,omitempty"`
	ClosedAt          *time.Time `json:"closed_at,omitempty"`
	Severity          string     `json:"severity,omitempty"`
	Active            string     `json:"active,omitempty"`
	ConfigurationItem string     `json:"configuration_item,omitempty"`
}

// LabelList splits Labels on demand.
func (t Ticket) LabelList() []string { return scalar.SplitList(t.Labels) }

// ComponentList splits Components on demand.
func (t Ticket) ComponentList() []string { return scalar.SplitList(t.Components) }

// FixVersionList splits FixVersion on demand.
func (t Ticket) FixVersionList() []string { return scalar.SplitList(t.FixVersion) }

// LastActivity is the latest comment date, falling back to the updated date.
func (t Ticket) LastActivity() *time.Time {
	if t.LastCommentDate != nil {
		return t.LastCommentDate
	}
	return t.Updated
}

// Row is an ordered header → value map that marshals as a JSON object in header order.
type Row []Field

// MarshalJSON keeps column order, which a plain map would lose.
func (r Row) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, f := range r {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(f.Header)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}
