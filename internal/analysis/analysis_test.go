package analysis

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ticketlens/internal/profile"
)

const jiraCSV = "Issue key,Summary,Status,Issue Type,Assignee,Created,Resolved,Sprint\n" +
	"ABC-1,Login fails,Open,Bug,Ann,2024-06-01,,S1\n" +
	"ABC-2,Add export,Done,Story,Bob,2024-05-01,2024-05-11,S1\n" +
	",,,,,,,\n"

const serviceNowCSV = "Number,Short description,State,Assignment group,Opened at,Made SLA\n" +
	"INC001,VPN down,New,Network,2024-06-01,false\n"

func writeExport(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	a, err := Run(Request{Path: writeExport(t, "jira.csv", jiraCSV), Source: "auto", StaleDays: 14, Now: now})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if a.Profile.Name != profile.NameJira {
		t.Errorf("profile = %q, want jira", a.Profile.Name)
	}
	if got := a.Dashboard.TotalTickets; got != 2 {
		t.Errorf("TotalTickets = %d, want 2", got)
	}
	if a.Result.BlankRows != 1 {
		t.Errorf("BlankRows = %d, want 1", a.Result.BlankRows)
	}
	if a.Title != "ABC Dashboard" {
		t.Errorf("Title = %q", a.Title)
	}
	if !a.Dashboard.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", a.Dashboard.GeneratedAt, now)
	}
}

func TestRun_Errors(t *testing.T) {
	path := writeExport(t, "jira.csv", jiraCSV)
	tests := []struct {
		name string
		req  Request
	}{
		{"missing file", Request{Path: filepath.Join(t.TempDir(), "nope.csv")}},
		{"unknown source", Request{Path: path, Source: "bugzilla"}},
		{"negative stale days", Request{Path: path, StaleDays: -1}},
		{"missing profile file", Request{Path: path, ProfileFile: filepath.Join(t.TempDir(), "p.yaml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(tt.req); err == nil {
				t.Error("Run() error = nil, want error")
			}
		})
	}
}

func TestRun_EmptyExport(t *testing.T) {
	a, err := Run(Request{Path: writeExport(t, "empty.csv", ""), StaleDays: 14})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if a.Dashboard.TotalTickets != 0 {
		t.Errorf("TotalTickets = %d, want 0", a.Dashboard.TotalTickets)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{jiraCSV, profile.NameJira},
		{serviceNowCSV, profile.NameServiceNow},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			d, err := Detect(writeExport(t, "x.csv", tt.body))
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if d.Profile != tt.want {
				t.Errorf("Detect() = %q, want %q", d.Profile, tt.want)
			}
			if len(d.Scores) != 2 {
				t.Errorf("len(Scores) = %d, want 2", len(d.Scores))
			}
		})
	}
}

func TestParseNow(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"", time.Time{}, false},
		{"2024-06-30T12:00:00+02:00", time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC), false},
		{"2024-06-30", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), false},
		{"yesterday", time.Time{}, true},
	}
	for _, tt := range tests {
		got, err := ParseNow(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNow(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseNow(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
