package profile

// Jira returns the profile for software-project tracker exports.
func Jira() Profile {
	return Profile{
		Name:        NameJira,
		DisplayName: "Jira",
		Aliases: map[string][]string{
			FieldKey:               {"issue key", "key", "issue_key", "issuekey"},
			FieldSummary:           {"summary", "title", "description_short"},
			FieldStatus:            {"status", "issue status", "status name"},
			FieldAssignee:          {"assignee", "assigned to", "assignee name"},
			FieldReporter:          {"reporter", "reporter name", "created by"},
			FieldPriority:          {"priority", "priority name"},
			FieldIssueType:         {"issue type", "issuetype", "type", "issue_type"},
			FieldCreated:           {"created", "date created", "creation date", "created date"},
			FieldUpdated:           {"updated", "date updated", "last updated", "updated date"},
			FieldResolved:          {"resolved", "date resolved", "resolution date", "resolved date"},
			FieldDueDate:           {"due date", "due", "duedate", "due_date"},
			FieldLabels:            {"labels", "label"},
			FieldComponents:        {"components", "component", "component/s"},
			FieldFixVersions:       {"fix version/s", "fix versions", "fix version", "fixversions"},
			FieldResolution:        {"resolution", "resolution name"},
			FieldStoryPoints:       {"story points", "story_points", "storypoints", "story point estimate"},
			FieldOriginalEstimate:  {"original estimate", "original_estimate", "time original estimate", "σ original estimate"},
			FieldTimeSpent:         {"time spent", "time_spent", "timespent"},
			FieldRemainingEstimate: {"remaining estimate", "remaining_estimate", "time remaining estimate"},
			FieldEpicLink:          {"epic link", "epic_link", "epic name", "epic"},
			FieldSprint:            {"sprint", "sprint name"},
			FieldProject:           {"project", "project key", "project name"},
			FieldParent:            {"parent", "parent key", "parent id"},
		},
		OpenStatuses: NewSet("open", "to do", "todo", "in progress", "in review", "reopened",
			"backlog", "selected for development", "blocked", "waiting",
			"new", "active", "in development", "in testing", "ready for review", "in uat"),
		ClosedStatuses: NewSet("done", "closed", "resolved", "complete", "completed", "cancelled",
			"won't do", "wontdo", "duplicate", "rejected"),
		BlockedStatuses: NewSet("blocked", "waiting", "on hold", "impediment"),
		StatusColors: map[string]string{
			"To Do": "#8A9499", "Open": "#8A9499", "Backlog": "#8A9499", "New": "#8A9499",
			"In Progress": "#4A9FD9", "In Review": "#6BB3E3", "In Development": "#4A9FD9",
			"In Testing": "#6BB3E3", "Active": "#4A9FD9", "In UAT": "#6BB3E3",
			"Done": "#4CAF50", "Closed": "#4CAF50", "Resolved": "#4CAF50", "Complete": "#4CAF50",
			"Blocked": "#F44336", "Waiting": "#FF9800", "Reopened": "#FF9800",
		},
		PriorityColors: map[string]string{
			"Critical": "#F44336", "Highest": "#F44336", "Blocker": "#F44336",
			"High": "#FF9800", "Major": "#FF9800",
			"Medium": "#FFD54F", "Normal": "#FFD54F",
			"Low": "#4CAF50", "Minor": "#4CAF50",
			"Lowest": "#8A9499", "Trivial": "#8A9499",
		},
		TypeColors: map[string]string{
			"Bug": "#F44336", "Defect": "#F44336",
			"Story": "#4A9FD9", "User Story": "#4A9FD9",
			"Task": "#8A9499", "Sub-task": "#6BB3E3",
			"Epic": "#9C27B0", "Initiative": "#9C27B0",
			"Improvement": "#FF9800", "New Feature": "#4CAF50",
		},
		Unassigned: "Unassigned",
		Features: Features{
			Epics:       true,
			Sprints:     true,
			StoryPoints: true,
			Estimation:  true,
		},
		Signatures: NewSet("issue key", "issue_key", "sprint", "epic link", "epic_link",
			"story points", "story_points", "issue type", "issuetype", "fix version/s"),
		Comments:         CommentRule{Contains: []string{"comment"}, Style: NoteSemicolon},
		CustomFieldBonus: true,
	}
}

// ServiceNow returns the profile for IT-service-management exports.
func ServiceNow() Profile {
	return Profile{
		Name:        NameServiceNow,
		DisplayName: "ServiceNow",
		Aliases: map[string][]string{
			FieldKey:               {"number", "task number", "ticket number", "task_number", "ticket_number"},
			FieldSummary:           {"short description", "short_description", "description"},
			FieldStatus:            {"state", "status", "incident state", "incident_state"},
			FieldAssignee:          {"assigned to", "assigned_to", "assignee"},
			FieldReporter:          {"caller_id", "caller id", "caller", "opened by", "opened_by", "requested by", "requested_by"},
			FieldPriority:          {"priority"},
			FieldIssueType:         {"sys_class_name", "type", "task type", "task_type"},
			FieldCreated:           {"opened at", "opened_at", "sys_created_on", "created"},
			FieldUpdated:           {"updated at", "updated_at", "sys_updated_on", "sys_updated_by", "updated"},
			FieldResolved:          {"resolved at", "resolved_at", "closed at", "closed_at"},
			FieldDueDate:           {"due date", "due_date", "expected start", "expected_start"},
			FieldLabels:            {},
			FieldComponents:        {},
			FieldFixVersions:       {},
			FieldResolution:        {"close code", "close_code", "resolution code", "resolution_code"},
			FieldStoryPoints:       {},
			FieldOriginalEstimate:  {},
			FieldTimeSpent:         {"time worked", "time_worked"},
			FieldRemainingEstimate: {},
			FieldEpicLink:          {},
			FieldSprint:            {},
			FieldProject:           {"company", "department", "service_offering", "business_service"},
			FieldParent:            {"parent", "parent incident", "parent_incident"},

			FieldCategory:          {"category"},
			FieldSubcategory:       {"subcategory", "sub_category"},
			FieldAssignmentGroup:   {"assignment group", "assignment_group"},
			FieldContactType:       {"contact type", "contact_type"},
			FieldImpact:            {"impact"},
			FieldUrgency:           {"urgency"},
			FieldMadeSLA:           {"made sla", "made_sla"},
			FieldBusinessDuration:  {"business duration", "business_duration", "business_stc", "calendar_duration", "calendar_stc"},
			FieldEscalation:        {"escalation"},
			FieldReassignmentCount: {"reassignment count", "reassignment_count"},
			FieldReopenCount:       {"reopen count", "reopen_count", "u_reopen_count_multiplied"},
			FieldCloseNotes:        {"close notes", "close_notes", "resolution notes", "resolution_notes"},
			FieldClosedAt:          {"closed at", "closed_at"},
			FieldSeverity:          {"severity"},
			FieldActive:            {"active"},
			FieldConfigurationItem: {"configuration item", "configuration_item", "cmdb_ci", "ci"},
		},
		// Numeric state codes appear in raw table exports.
		OpenStatuses: NewSet("new", "in progress", "on hold", "open", "work in progress",
			"assess", "authorize", "scheduled", "implement", "review",
			"assessed", "root cause analysis", "fix in progress",
			"active", "awaiting info", "awaiting problem",
			"awaiting change", "awaiting vendor",
			"1", "2", "3", "-5"),
		ClosedStatuses: NewSet("resolved", "closed", "cancelled", "closed complete",
			"closed incomplete", "closed skipped", "complete",
			"6", "7", "8", "4"),
		BlockedStatuses: NewSet("on hold", "pending", "awaiting info",
			"awaiting problem", "awaiting change",
			"awaiting vendor", "-5", "3"),
		StatusColors: map[string]string{
			"New": "#8A9499", "Open": "#8A9499",
			"In Progress": "#4A9FD9", "Work in Progress": "#4A9FD9",
			"Assess": "#6BB3E3", "Authorize": "#6BB3E3",
			"Scheduled": "#00BCD4", "Implement": "#4A9FD9",
			"Review": "#6BB3E3", "Fix in Progress": "#4A9FD9",
			"On Hold": "#FF9800", "Pending": "#FF9800",
			"Resolved": "#4CAF50", "Closed": "#4CAF50",
			"Closed Complete": "#4CAF50", "Closed Incomplete": "#8A9499",
			"Closed Skipped": "#8A9499", "Cancelled": "#607D8B",
			"1": "#8A9499", "2": "#4A9FD9", "3": "#FF9800",
			"6": "#4CAF50", "7": "#4CAF50", "8": "#607D8B",
		},
		PriorityColors: map[string]string{
			"1 - Critical": "#F44336", "1": "#F44336", "Critical": "#F44336",
			"2 - High": "#FF9800", "2": "#FF9800", "High": "#FF9800",
			"3 - Moderate": "#FFD54F", "3": "#FFD54F", "Moderate": "#FFD54F",
			"4 - Low": "#4CAF50", "4": "#4CAF50", "Low": "#4CAF50",
			"5 - Planning": "#8A9499", "5": "#8A9499", "Planning": "#8A9499",
		},
		TypeColors: map[string]string{
			"Incident": "#F44336", "incident": "#F44336",
			"Problem": "#FF9800", "problem": "#FF9800",
			"Change": "#4A9FD9", "change_request": "#4A9FD9",
			"Request": "#4CAF50", "sc_request": "#4CAF50",
			"Task": "#8A9499", "sc_task": "#6BB3E3",
			"Catalog Task": "#6BB3E3", "sc_cat_item": "#6BB3E3",
		},
		Unassigned: "Unassigned",
		Features: Features{
			SLA:              true,
			ContactType:      true,
			Escalation:       true,
			Reassignment:     true,
			Categories:       true,
			AssignmentGroups: true,
		},
		Signatures: NewSet("number", "opened at", "opened_at", "assignment group",
			"assignment_group", "made sla", "made_sla", "short description",
			"short_description", "configuration item", "configuration_item",
			"cmdb_ci", "contact type", "contact_type", "opened by",
			"opened_by", "caller_id", "resolved at", "resolved_at",
			"reassignment count", "reassignment_count", "incident_state",
			"sys_class_name", "sys_created_on", "sys_updated_on",
			"service_offering", "business_service"),
		Comments: CommentRule{
			Contains: []string{"work notes", "additional comments", "comment"},
			Exact:    []string{"actions_taken", "work_notes"},
			Style:    NoteTimestamped,
		},
		KeyPrefixTitles: map[string]string{
			"INC": "Incident", "CHG": "Change", "REQ": "Request", "PRB": "Problem",
			"RITM": "Request Item", "TASK": "Task", "SCTASK": "Catalog Task",
		},
	}
}
