package visuals

import (
	"fmt"
	"math"
	"strings"

	"ticketlens/internal/stats"
)

// GenerateTrendChart creates a Mermaid xychart-beta with created (bars) and resolved (line) tickets per month.
func GenerateTrendChart(created, resolved stats.Counts) string {
	if len(created) == 0 {
		return ""
	}

	var labels, createdVals, resolvedVals []string
	maxVal := 0
	for _, e := range created {
		r := resolved.Get(e.Key)
		labels = append(labels, fmt.Sprintf("\"%s\"", e.Key))
		createdVals = append(createdVals, fmt.Sprintf("%d", e.Value))
		resolvedVals = append(resolvedVals, fmt.Sprintf("%d", r))
		maxVal = max(maxVal, e.Value, r)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Created vs Resolved per Month\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Tickets\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(createdVals, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(resolvedVals, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateAgeChart creates a Mermaid bar chart of open tickets per age bucket.
func GenerateAgeChart(buckets stats.Counts) string {
	if buckets.Total() == 0 {
		return ""
	}

	var labels, values []string
	maxVal := 0
	for _, e := range buckets {
		labels = append(labels, fmt.Sprintf("\"%s\"", e.Key))
		values = append(values, fmt.Sprintf("%d", e.Value))
		maxVal = max(maxVal, e.Value)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Open Ticket Age\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Open Tickets\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateResolutionChart creates a Mermaid bar chart of average resolution days per key.
// The y-axis starts below zero when an average is negative.
func GenerateResolutionChart(title string, averages stats.Averages) string {
	if len(averages) == 0 {
		return ""
	}

	var labels, values []string
	maxVal := 0.0
	minVal := 0.0
	for _, e := range averages {
		// Replace spaces to help mermaid rendering
		labels = append(labels, fmt.Sprintf("\"%s\"", strings.ReplaceAll(e.Key, " ", "_")))
		values = append(values, fmt.Sprintf("%.1f", e.Value))
		maxVal = math.Max(maxVal, e.Value)
		minVal = math.Min(minVal, e.Value)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Days\" %d --> %d\n", int(math.Floor(minVal)), int(math.Ceil(maxVal*1.2))+1))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateStatusPie creates a Mermaid pie chart of tickets per status.
func GenerateStatusPie(statuses stats.Counts) string {
	if statuses.Total() == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie title Tickets by Status\n")
	for _, e := range statuses.SortedByValue() {
		sb.WriteString(fmt.Sprintf("    \"%s\" : %d\n", strings.ReplaceAll(e.Key, "\"", "'"), e.Value))
	}
	sb.WriteString("```")
	return sb.String()
}

// GenerateSLAPie creates a Mermaid pie chart of met versus missed SLAs.
func GenerateSLAPie(met, missed int) string {
	if met+missed == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie title SLA Compliance\n")
	sb.WriteString(fmt.Sprintf("    \"Met\" : %d\n", met))
	sb.WriteString(fmt.Sprintf("    \"Missed\" : %d\n", missed))
	sb.WriteString("```")
	return sb.String()
}
