package profile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    string
	}{
		{"JiraHeaders", []string{"Issue key", "Summary", "Status", "Sprint", "Epic Link", "Story Points"}, NameJira},
		{"ServiceNowHeaders", []string{"Number", "Short description", "State", "Opened at", "Assignment group", "Made SLA", "Contact type"}, NameServiceNow},
		{"AmbiguousDefaultsToJira", []string{"Key", "Summary", "Status", "Priority"}, NameJira},
		{"EmptyDefaultsToJira", nil, NameJira},
		{"TieGoesToJira", []string{"Number", "Summary", "Status", "Custom field (Story Points)"}, NameJira},
		{"ServiceNowIndicatorsWin", []string{"Number", "Short description", "State", "Opened at", "Assignment group", "Made SLA", "Reassignment count", "Configuration item"}, NameServiceNow},
		{"ServiceNowUnderscoreHeaders", []string{"number", "short_description", "state", "opened_at",
			"assignment_group", "made_sla", "contact_type", "caller_id", "resolved_at", "reassignment_count",
			"sys_class_name", "sys_created_on", "incident_state", "service_offering", "business_service"}, NameServiceNow},
		{"Whitespace", []string{"  NUMBER ", " opened_at", "made_sla  "}, NameServiceNow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.headers); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetect_Deterministic(t *testing.T) {
	headers := []string{"Number", "Issue key", "Custom field (Team)", "opened_at"}
	first := Detect(headers)
	for i := 0; i < 50; i++ {
		if got := Detect(headers); got != first {
			t.Fatalf("Detect() changed between calls: %q then %q", first, got)
		}
	}
}

func TestScore_CustomFieldBonusOnlyForJira(t *testing.T) {
	scores := Score([]string{"Custom field (Story Points)", "Custom field (Team)"}, Jira(), ServiceNow())
	if scores[0].Score != 2 || scores[0].CustomFields != 2 {
		t.Errorf("jira score = %+v, want 2 custom-field points", scores[0])
	}
	if scores[1].Score != 0 {
		t.Errorf("servicenow score = %+v, want 0", scores[1])
	}
}

func TestLookup(t *testing.T) {
	p, err := Lookup("ServiceNow")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !p.Features.SLA || p.Features.Epics {
		t.Errorf("servicenow features = %+v", p.Features)
	}
	if _, err := Lookup("bugzilla"); err == nil {
		t.Error("Lookup(bugzilla) expected error")
	}
}

func TestLookup_ReturnsIndependentCopies(t *testing.T) {
	a := Jira()
	a.Aliases[FieldKey] = []string{"changed"}
	b := Jira()
	if b.Aliases[FieldKey][0] != "issue key" {
		t.Errorf("built-in profile shared state between calls: %v", b.Aliases[FieldKey])
	}
}

func TestResolve(t *testing.T) {
	p, err := Resolve("auto", []string{"number", "opened_at", "assignment_group", "made_sla"})
	if err != nil || p.Name != NameServiceNow {
		t.Errorf("Resolve(auto) = %q, %v", p.Name, err)
	}
	p, err = Resolve("jira", []string{"number", "opened_at", "assignment_group", "made_sla"})
	if err != nil || p.Name != NameJira {
		t.Errorf("Resolve(jira) = %q, %v", p.Name, err)
	}
}

func TestSetHas(t *testing.T) {
	s := NewSet("In Progress", " done ")
	if !s.Has("in progress") || !s.Has("DONE") || s.Has("todo") {
		t.Errorf("Set membership is wrong: %v", s)
	}
}

func TestCommentRuleMatches(t *testing.T) {
	jira := Jira().Comments
	if !jira.Matches("Comment") || !jira.Matches("Comment Body") || jira.Matches("Summary") {
		t.Error("jira comment rule mismatch")
	}
	sn := ServiceNow().Comments
	for _, h := range []string{"Work notes", "Additional comments", "actions_taken", "work_notes"} {
		if !sn.Matches(h) {
			t.Errorf("servicenow rule should match %q", h)
		}
	}
	if sn.Matches("actions_taken_by") {
		t.Error("exact names must not match by prefix")
	}
}

func TestBuiltinsValidate(t *testing.T) {
	for _, name := range Builtins() {
		p, _ := Lookup(name)
		if res := p.Validate(); !res.IsValid() {
			t.Errorf("%s: %v", name, res.Error())
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "youtrack.yaml")
	content := `
name: youtrack
display_name: YouTrack
base: jira
unassigned: Nobody
aliases:
  key: ["issue id", "ID"]
  story_points: ["estimation"]
closed_statuses: ["fixed", "verified", "done"]
signatures: ["issue id", "estimation"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if p.Name != "youtrack" || p.DisplayName != "YouTrack" || p.Unassigned != "Nobody" {
		t.Errorf("identity = %q/%q/%q", p.Name, p.DisplayName, p.Unassigned)
	}
	if got := p.Aliases[FieldKey]; len(got) != 2 || got[1] != "id" {
		t.Errorf("key aliases = %v, want lowercased override", got)
	}
	if got := p.Aliases[FieldSummary]; len(got) == 0 || got[0] != "summary" {
		t.Errorf("summary aliases should inherit from base, got %v", got)
	}
	if !p.ClosedStatuses.Has("Fixed") || p.ClosedStatuses.Has("resolved") {
		t.Errorf("closed statuses not replaced: %v", p.ClosedStatuses.Sorted())
	}
	if !p.Features.Sprints {
		t.Error("features should inherit from base")
	}

	if got := DetectAmong([]string{"Issue Id", "Estimation"}, Jira(), p); got != "youtrack" {
		t.Errorf("DetectAmong() = %q, want youtrack", got)
	}
}

func TestParse_CommentRulesAreLowercased(t *testing.T) {
	p, err := Parse([]byte(`
name: custom-sn
base: servicenow
comments:
  contains: ["Work Notes", " Additional Comments "]
  exact: ["Journal"]
  style: timestamped
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	tests := []struct {
		header string
		want   bool
	}{
		{"Work Notes", true},
		{"work notes (internal)", true},
		{"Additional comments", true},
		{"JOURNAL", true},
		{"Journal entry", false},
		{"Short description", false},
	}
	for _, tt := range tests {
		if got := p.Comments.Matches(tt.header); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestValidate_CommentRuleCase(t *testing.T) {
	p := ServiceNow()
	p.Comments.Contains = []string{"Work Notes"}
	p.Comments.Exact = []string{" journal"}
	res := p.Validate()
	if len(res.Errors) != 2 {
		t.Errorf("Validate() errors = %v, want 2 comment rule errors", res.Errors)
	}
}

func TestValidate_Warnings(t *testing.T) {
	p := Jira()
	p.Unassigned = ""
	p.OpenStatuses = NewSet("done", "open")
	res := p.Validate()
	if !res.IsValid() {
		t.Fatalf("Validate() errors = %v", res.Errors)
	}
	if len(res.Warnings) != 2 {
		t.Errorf("Validate() warnings = %v, want unassigned and open/closed overlap", res.Warnings)
	}
}

func TestLoadFile_LogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	path := filepath.Join(t.TempDir(), "overlap.yaml")
	content := "name: overlap\nbase: jira\nopen_statuses: [open, done]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if out := buf.String(); !strings.Contains(out, `"field":"open_statuses"`) || !strings.Contains(out, "closed wins") {
		t.Errorf("expected an overlap warning in the log, got %q", out)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"MissingName", "base: jira\n"},
		{"UnknownBase", "name: x\nbase: redmine\n"},
		{"BadStyle", "name: x\ncomments:\n  contains: [note]\n  style: xml\n"},
		{"BadYAML", "name: [unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse() expected error")
			}
		})
	}
}
