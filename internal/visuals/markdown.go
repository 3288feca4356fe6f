// Package visuals renders a Dashboard as Markdown with Mermaid charts.
package visuals

import (
	"fmt"
	"strings"

	"ticketlens/internal/profile"
	"ticketlens/internal/scalar"
	"ticketlens/internal/stats"
)

const tableLimit = 15

type chart struct {
	heading string
	body    string
}

// Markdown renders the summary, charts and main tables of d.
func Markdown(d stats.Dashboard, title string, p profile.Profile) string {
	var sb strings.Builder
	f := p.Features

	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "_%s export · generated %s · stale after %d days_\n\n",
		p.DisplayName, d.GeneratedAt.Format("2006-01-02 15:04"), d.StaleDays)

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	row := func(name string, value any) { fmt.Fprintf(&sb, "| %s | %v |\n", name, value) }
	row("Total tickets", d.TotalTickets)
	row("Open", d.OpenTickets)
	row("Closed", d.ClosedTickets)
	row("Resolution rate", fmt.Sprintf("%.1f%%", d.ResolutionRate))
	row("Avg open age", scalar.FormatDays(d.AvgAgeOpenDays))
	row("Avg resolution", scalar.FormatDays(d.AvgResolutionDays))
	row("Median resolution", scalar.FormatDays(d.MedianResolutionDays))
	row("85th percentile resolution", scalar.FormatDays(d.ResolutionPercentiles.P85))
	row("Overdue", d.OverdueTickets)
	row("Stale", d.StaleTickets)
	row("Unassigned", d.UnassignedTickets)
	row("Blocked", d.BlockedTickets)
	if f.StoryPoints {
		row("Story points (open / total)", fmt.Sprintf("%.1f / %.1f", d.OpenStoryPoints, d.TotalStoryPoints))
	}
	if f.SLA {
		row("SLA compliance", fmt.Sprintf("%.1f%% (%d met, %d missed)", d.SLACompliancePct, d.SLAMetCount, d.SLAMissedCount))
	}
	if f.Reassignment {
		row("Avg reassignments", d.AvgReassignmentCount)
		row("Avg reopens", d.AvgReopenCount)
	}
	sb.WriteString("\n")

	charts := []chart{
		{"Status", GenerateStatusPie(d.StatusCounts)},
		{"Trend", GenerateTrendChart(d.CreatedByMonth, d.ResolvedByMonth)},
		{"Open Ticket Age", GenerateAgeChart(d.AgeBuckets)},
		{"Resolution Time", GenerateResolutionChart("Avg Resolution by Type (Days)", d.AvgResolutionByType)},
	}
	if f.SLA {
		charts = append(charts, chart{"SLA", GenerateSLAPie(d.SLAMetCount, d.SLAMissedCount)})
	}
	for _, c := range charts {
		if c.body == "" {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", c.heading, c.body)
	}

	if len(d.Themes) > 0 {
		sb.WriteString("## Recurring Themes\n\n")
		for _, th := range d.Themes {
			fmt.Fprintf(&sb, "- **%s** (%d)\n", th.Theme, th.Count)
		}
		sb.WriteString("\n")
	}

	if len(d.OldestOpen) > 0 {
		sb.WriteString("## Oldest Open Tickets\n\n")
		sb.WriteString("| Key | Summary | Assignee | Status | Age (days) |\n|---|---|---|---|---|\n")
		for _, r := range d.OldestOpen {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %.1f |\n", cell(r.Key), cell(r.Summary), cell(r.Assignee), cell(r.Status), r.AgeDays)
		}
		sb.WriteString("\n")
	}

	if len(d.AssigneeBreakdown) > 0 {
		sb.WriteString("## Assignees\n\n")
		sb.WriteString("| Assignee | Total | Open | Closed | Avg age | Overdue | Stale |\n|---|---|---|---|---|---|---|\n")
		for i, r := range d.AssigneeBreakdown {
			if i == tableLimit {
				break
			}
			fmt.Fprintf(&sb, "| %s | %d | %d | %d | %.1f | %d | %d |\n", cell(r.Assignee), r.Total, r.Open, r.Closed, r.AvgAge, r.Overdue, r.Stale)
		}
		sb.WriteString("\n")
	}

	if f.Epics && len(d.EpicProgress) > 0 {
		progressTable(&sb, "Epic Progress", d.EpicProgress)
	}
	if f.Sprints && len(d.SprintProgress) > 0 {
		progressTable(&sb, "Sprint Progress", d.SprintProgress)
	}

	if f.AssignmentGroups && len(d.AssignmentGroupBreakdown) > 0 {
		sb.WriteString("## Assignment Groups\n\n")
		sb.WriteString("| Group | Total | Open | Closed | SLA % |\n|---|---|---|---|---|\n")
		for i, r := range d.AssignmentGroupBreakdown {
			if i == tableLimit {
				break
			}
			fmt.Fprintf(&sb, "| %s | %d | %d | %d | %.1f |\n", cell(r.Group), r.Total, r.Open, r.Closed, r.SLAPct)
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func progressTable(sb *strings.Builder, heading string, rows []stats.ProgressRow) {
	fmt.Fprintf(sb, "## %s\n\n", heading)
	sb.WriteString("| Name | Total | Open | Closed | % done | Points |\n|---|---|---|---|---|---|\n")
	for i, r := range rows {
		if i == tableLimit {
			break
		}
		fmt.Fprintf(sb, "| %s | %d | %d | %d | %.1f | %.1f |\n", cell(r.Name), r.Total, r.Open, r.Closed, r.PctDone, r.StoryPoints)
	}
	sb.WriteString("\n")
}

// cell keeps a value on one table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.Join(strings.Fields(s), " ")
}
