package profile

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Canonical field names shared by every profile.
const (
	FieldKey               = "key"
	FieldSummary           = "summary"
	FieldStatus            = "status"
	FieldAssignee          = "assignee"
	FieldReporter          = "reporter"
	FieldPriority          = "priority"
	FieldIssueType         = "issue_type"
	FieldCreated           = "created"
	FieldUpdated           = "updated"
	FieldResolved          = "resolved"
	FieldDueDate           = "due_date"
	FieldLabels            = "labels"
	FieldComponents        = "components"
	FieldFixVersions       = "fix_versions"
	FieldResolution        = "resolution"
	FieldStoryPoints       = "story_points"
	FieldOriginalEstimate  = "original_estimate"
	FieldTimeSpent         = "time_spent"
	FieldRemainingEstimate = "remaining_estimate"
	FieldEpicLink          = "epic_link"
	FieldSprint            = "sprint"
	FieldProject           = "project"
	FieldParent            = "parent"

	// Service-management fields.
	FieldCategory          = "category"
	FieldSubcategory       = "subcategory"
	FieldAssignmentGroup   = "assignment_group"
	FieldContactType       = "contact_type"
	FieldImpact            = "impact"
	FieldUrgency           = "urgency"
	FieldMadeSLA           = "made_sla"
	FieldBusinessDuration  = "business_duration"
	FieldEscalation        = "escalation"
	FieldReassignmentCount = "reassignment_count"
	FieldReopenCount       = "reopen_count"
	FieldCloseNotes        = "close_notes"
	FieldClosedAt          = "closed_at"
	FieldSeverity          = "severity"
	FieldActive            = "active"
	FieldConfigurationItem = "configuration_item"
)

// NoteStyle selects how comment cells are split into a date and a text.
type NoteStyle string

const (
	// NoteSemicolon is "date;author;text", falling back to a leading "d/Mon/yy h:mm" token.
	NoteSemicolon NoteStyle = "semicolon"
	// NoteTimestamped is "YYYY-MM-DD HH:MM:SS - header" followed by the note body.
	NoteTimestamped NoteStyle = "timestamped"
)

// CommentRule identifies comment-bearing columns by lowercase header.
type CommentRule struct {
	Contains []string  `yaml:"contains" json:"contains"`
	Exact    []string  `yaml:"exact" json:"exact,omitempty"`
	Style    NoteStyle `yaml:"style" json:"style"`
}

// Matches reports whether a header belongs to a comment column.
func (r CommentRule) Matches(header string) bool {
	h := strings.ToLower(strings.TrimSpace(header))
	for _, s := range r.Contains {
		if strings.Contains(h, s) {
			return true
		}
	}
	return slices.Contains(r.Exact, h)
}

// Features gates the optional metric groups and ticket fields.
type Features struct {
	Epics            bool `yaml:"epics" json:"epics"`
	Sprints          bool `yaml:"sprints" json:"sprints"`
	StoryPoints      bool `yaml:"story_points" json:"story_points"`
	Estimation       bool `yaml:"estimation" json:"estimation"`
	SLA              bool `yaml:"sla" json:"sla"`
	ContactType      bool `yaml:"contact_type" json:"contact_type"`
	Escalation       bool `yaml:"escalation" json:"escalation"`
	Reassignment     bool `yaml:"reassignment" json:"reassignment"`
	Categories       bool `yaml:"categories" json:"categories"`
	AssignmentGroups bool `yaml:"assignment_groups" json:"assignment_groups"`
}

// Profile describes one source system. Profiles are built once and never mutated.
type Profile struct {
	Name            string              `json:"name"`
	DisplayName     string              `json:"display_name"`
	Aliases         map[string][]string `json:"-"`
	OpenStatuses    Set                 `json:"-"`
	ClosedStatuses  Set                 `json:"-"`
	BlockedStatuses Set                 `json:"-"`
	StatusColors    map[string]string   `json:"status_colors"`
	PriorityColors  map[string]string   `json:"priority_colors"`
	TypeColors      map[string]string   `json:"type_colors"`
	Unassigned      string              `json:"unassigned"`
	Features        Features            `json:"features"`
	Signatures      Set                 `json:"-"`
	Comments        CommentRule         `json:"-"`
	KeyPrefixTitles map[string]string   `json:"-"`
	// CustomFieldBonus adds one detection point per "custom field (...)" header.
	CustomFieldBonus bool `json:"-"`
}

// Set is a lowercase string set.
type Set map[string]struct{}

// NewSet lowercases and trims its items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[strings.ToLower(strings.TrimSpace(it))] = struct{}{}
	}
	return s
}

// Has reports membership of the lowercased, trimmed value.
func (s Set) Has(v string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// CanonicalFields returns the profile's canonical field names in a stable order.
func (p Profile) CanonicalFields() []string {
	return slices.Sorted(maps.Keys(p.Aliases))
}

// Names of the built-in profiles.
const (
	NameJira       = "jira"
	NameServiceNow = "servicenow"
)

// Builtins lists the built-in profile names in detection priority order.
func Builtins() []string {
	return []string{NameJira, NameServiceNow}
}

// Lookup returns a fresh copy of a built-in profile.
func Lookup(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameJira:
		return Jira(), nil
	case NameServiceNow:
		return ServiceNow(), nil
	default:
		return Profile{}, fmt.Errorf("unknown source %q (available: %s)", name, strings.Join(Builtins(), ", "))
	}
}
