package stats

import (
	"time"

	"ticketlens/internal/themes"
	"ticketlens/internal/ticket"
)

// Age bucket labels, in display order.
var AgeBucketLabels = []string{"< 7d", "7–14d", "14–30d", "30–60d", "60–90d", "90d+"}

const (
	// NoActivityDays is reported as days-since for open tickets with no activity date.
	NoActivityDays = 999
	// OldestOpenLimit caps the oldest-open table.
	OldestOpenLimit = 10
	// FlowLimit caps the reporter to assignee table.
	FlowLimit = 20

	stalenessSummaryLen = 80
	oldestSummaryLen    = 60
	commentPreviewLen   = 60
	unknown             = "Unknown"
)

// Dashboard is the full aggregate computed from one export.
type Dashboard struct {
	Source      string    `json:"source_type"`
	GeneratedAt time.Time `json:"generated_at"`
	StaleDays   int       `json:"stale_days"`

	TotalTickets          int         `json:"total_tickets"`
	OpenTickets           int         `json:"open_tickets"`
	ClosedTickets         int         `json:"closed_tickets"`
	AvgAgeOpenDays        float64     `json:"avg_age_open_days"`
	OverdueTickets        int         `json:"overdue_tickets"`
	StaleTickets          int         `json:"stale_tickets"`
	ResolutionRate        float64     `json:"resolution_rate"`
	AvgResolutionDays     float64     `json:"avg_resolution_days"`
	MedianResolutionDays  float64     `json:"median_resolution_days"`
	ResolutionPercentiles Percentiles `json:"resolution_percentiles"`
	UnassignedTickets     int         `json:"unassigned_tickets"`
	BlockedTickets        int         `json:"blocked_tickets"`
	TotalStoryPoints      float64     `json:"total_story_points"`
	OpenStoryPoints       float64     `json:"open_story_points"`

	StatusCounts    Counts `json:"status_counts"`
	AssigneeCounts  Counts `json:"assignee_counts"` // open tickets only
	PriorityCounts  Counts `json:"priority_counts"`
	TypeCounts      Counts `json:"type_counts"`
	ComponentCounts Counts `json:"component_counts"`
	LabelCounts     Counts `json:"label_counts"`

	CreatedByMonth  Counts `json:"created_by_month"`
	ResolvedByMonth Counts `json:"resolved_by_month"`

	StalenessRows           []StalenessRow  `json:"staleness_rows"`
	AvgResolutionByType     Averages        `json:"avg_resolution_by_type"`
	AvgResolutionByPriority Averages        `json:"avg_resolution_by_priority"`
	AgeBuckets              Counts          `json:"age_buckets"`
	OldestOpen              []OldestOpenRow `json:"oldest_open"`
	AssigneeBreakdown       []AssigneeRow   `json:"assignee_breakdown"`
	ReporterBreakdown       []ReporterRow   `json:"reporter_breakdown"`
	EpicProgress            []ProgressRow   `json:"epic_progress"`
	SprintProgress          []ProgressRow   `json:"sprint_progress"`
	EstimationAccuracy      []EstimationRow `json:"estimation_accuracy"`
	ReporterAssigneeMatrix  []FlowRow       `json:"reporter_assignee_matrix"`

	// Service-management sections. Zero unless the profile enables them.
	SLACompliancePct         float64          `json:"sla_compliance_pct"`
	SLAMetCount              int              `json:"sla_met_count"`
	SLAMissedCount           int              `json:"sla_missed_count"`
	SLAByPriority            []SLAPriorityRow `json:"sla_by_priority"`
	ContactTypeCounts        Counts           `json:"contact_type_counts"`
	CategoryCounts           Counts           `json:"category_counts"`
	SubcategoryCounts        Counts           `json:"subcategory_counts"`
	AssignmentGroupCounts    Counts           `json:"assignment_group_counts"`
	AssignmentGroupBreakdown []GroupRow       `json:"assignment_group_breakdown"`
	EscalationCounts         Counts           `json:"escalation_counts"`
	AvgReassignmentCount     float64          `json:"avg_reassignment_count"`
	MedianReassignmentCount  float64          `json:"median_reassignment_count"`
	AvgReopenCount           float64          `json:"avg_reopen_count"`

	Themes []themes.Theme `json:"issue_themes"`

	// AllHeaders is the ordered union of every ticket's original headers and
	// AllRows holds one value per header for every ticket.
	AllHeaders []string     `json:"all_headers"`
	AllRows    []ticket.Row `json:"all_tickets"`
}

// StalenessRow describes one open ticket in the staleness table.
type StalenessRow struct {
	Key             string  `json:"key"`
	Summary         string  `json:"summary"`
	Reporter        string  `json:"reporter"`
	Assignee        string  `json:"assignee"`
	Status          string  `json:"status"`
	LastCommentDate string  `json:"last_comment_date"`
	DaysSince       float64 `json:"days_since"`
	CommentPreview  string  `json:"comment_preview"`
}

type OldestOpenRow struct {
	Key      string  `json:"key"`
	Summary  string  `json:"summary"`
	Assignee string  `json:"assignee"`
	Status   string  `json:"status"`
	AgeDays  float64 `json:"age_days"`
	Created  string  `json:"created"`
}

type AssigneeRow struct {
	Assignee    string  `json:"assignee"`
	Total       int     `json:"total"`
	Open        int     `json:"open"`
	Closed      int     `json:"closed"`
	AvgAge      float64 `json:"avg_age"`
	Overdue     int     `json:"overdue"`
	Stale       int     `json:"stale"`
	StoryPoints float64 `json:"story_points"`
}

type ReporterRow struct {
	Reporter string `json:"reporter"`
	Total    int    `json:"total"`
	Open     int    `json:"open"`
	Closed   int    `json:"closed"`
	Overdue  int    `json:"overdue"`
}

// ProgressRow is one epic or sprint.
type ProgressRow struct {
	Name        string  `json:"name"`
	Total       int     `json:"total"`
	Open        int     `json:"open"`
	Closed      int     `json:"closed"`
	PctDone     float64 `json:"pct_done"`
	StoryPoints float64 `json:"story_points"`
}

// EstimationRow compares mean time spent with mean original estimate for one issue type.
type EstimationRow struct {
	Type         string  `json:"type"`
	Count        int     `json:"count"`
	AvgEstimated string  `json:"avg_estimated"`
	AvgActual    string  `json:"avg_actual"`
	AccuracyPct  float64 `json:"accuracy_pct"`
}

type FlowRow struct {
	Reporter string `json:"reporter"`
	Assignee string `json:"assignee"`
	Count    int    `json:"count"`
}

type SLAPriorityRow struct {
	Priority string `json:"priority"`
	Met      int    `json:"met"`
	Missed   int    `json:"missed"`
}

// GroupRow is one assignment group.
type GroupRow struct {
	Group  string  `json:"group"`
	Total  int     `json:"total"`
	Open   int     `json:"open"`
	Closed int     `json:"closed"`
	SLAPct float64 `json:"sla_pct"`
}
