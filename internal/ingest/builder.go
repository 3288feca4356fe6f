package ingest

import (
	"strings"

	"ticketlens/internal/profile"
	"ticketlens/internal/scalar"
	"ticketlens/internal/ticket"
)

// IsBlank reports whether every cell of row is empty after trimming.
func IsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// BuildTicket maps one non-blank row onto a Ticket for profile p.
func BuildTicket(headers, row []string, fields FieldMap, commentCols []int, p profile.Profile) ticket.Ticket {
	get := func(field string) string { return fields.Get(row, field) }

	t := ticket.Ticket{
		Key:        get(profile.FieldKey),
		Summary:    get(profile.FieldSummary),
		Status:     get(profile.FieldStatus),
		Assignee:   get(profile.FieldAssignee),
		Reporter:   get(profile.FieldReporter),
		Priority:   get(profile.FieldPriority),
		IssueType:  get(profile.FieldIssueType),
		Created:    scalar.ParseDatePtr(get(profile.FieldCreated)),
		Updated:    scalar.ParseDatePtr(get(profile.FieldUpdated)),
		Resolved:   scalar.ParseDatePtr(get(profile.FieldResolved)),
		DueDate:    scalar.ParseDatePtr(get(profile.FieldDueDate)),
		Labels:     get(profile.FieldLabels),
		Components: get(profile.FieldComponents),
		FixVersion: get(profile.FieldFixVersions),
		Resolution: get(profile.FieldResolution),
		EpicLink:   get(profile.FieldEpicLink),
		Sprint:     get(profile.FieldSprint),
		Project:    get(profile.FieldProject),
		Parent:     get(profile.FieldParent),

		StoryPoints:       scalar.ParseFloatPtr(get(profile.FieldStoryPoints)),
		OriginalEstimate:  scalar.ParseDurationPtr(get(profile.FieldOriginalEstimate)),
		TimeSpent:         scalar.ParseDurationPtr(get(profile.FieldTimeSpent)),
		RemainingEstimate: scalar.ParseDurationPtr(get(profile.FieldRemainingEstimate)),
	}
	if t.Assignee == "" {
		t.Assignee = p.Unassigned
	}

	t.LastCommentDate, t.LastCommentText = LatestComment(row, commentCols, p.Comments.Style)

	f := p.Features
	if f.Categories {
		t.Category = get(profile.FieldCategory)
		t.Subcategory = get(profile.FieldSubcategory)
		t.ConfigurationItem = get(profile.FieldConfigurationItem)
	}
	if f.AssignmentGroups {
		t.AssignmentGroup = get(profile.FieldAssignmentGroup)
	}
	if f.ContactType {
		t.ContactType = get(profile.FieldContactType)
	}
	if f.Escalation {
		t.Escalation = get(profile.FieldEscalation)
	}
	if f.Reassignment {
		t.ReassignmentCount = scalar.ParseCountPtr(get(profile.FieldReassignmentCount))
		t.ReopenCount = scalar.ParseCountPtr(get(profile.FieldReopenCount))
	}
	if f.SLA {
		t.MadeSLA = scalar.ParseBool(get(profile.FieldMadeSLA))
		t.BusinessDuration = scalar.ParseDurationPtr(get(profile.FieldBusinessDuration))
		t.Impact = get(profile.FieldImpact)
		t.Urgency = get(profile.FieldUrgency)
		t.Severity = get(profile.FieldSeverity)
		t.CloseNotes = get(profile.FieldCloseNotes)
		t.ClosedAt = scalar.ParseDatePtr(get(profile.FieldClosedAt))
		t.Active = get(profile.FieldActive)
	}

	n := min(len(headers), len(row))
	t.Raw = make([]ticket.Field, 0, n)
	for i := 0; i < n; i++ {
		t.Raw = append(t.Raw, ticket.Field{Header: headers[i], Value: row[i]})
	}

	return t
}
