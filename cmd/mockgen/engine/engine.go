package engine

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ticketlens/internal/profile"
)

type GeneratorConfig struct {
	Source       string // profile.NameJira or profile.NameServiceNow
	Scenario     string // "mild", "chaos" or "drift"
	Distribution string // "uniform" or "weibull"
	Count        int
	Now          time.Time
	Seed         uint64
}

// Export is a generated CSV document.
type Export struct {
	Headers []string
	Rows    [][]string
}

type mockTicket struct {
	n         int
	created   time.Time
	updated   time.Time
	resolved  *time.Time
	due       *time.Time
	status    string
	issueType string
	priority  string
	assignee  string
	reporter  string
	summary   string
	theme     string
	points    int
	estimate  int64 // seconds
	spent     int64
	sprint    string
	epic      string
	group     string
	category  string
	madeSLA   bool
	reassign  int
	reopen    int
	note      time.Time
}

var (
	people       = []string{"Ana Silva", "Ben Okafor", "Chen Wei", "Dana Levi", "Emil Novak", "Fatima Zahra"}
	callers      = []string{"Greg House", "Helen Park", "Ivan Petrov", "Julia Rossi"}
	themes       = []string{"VPN connection drops", "Password reset fails", "Printer queue stuck", "Login page timeout", "Email sync delayed", "Report export broken"}
	epics        = []string{"Checkout Revamp", "Mobile Onboarding", "Search Relevance"}
	groups       = []string{"Service Desk", "Network", "Identity", "Applications"}
	cats         = []string{"Network", "Software", "Hardware", "Inquiry / Help"}
	jiraPrio     = []string{"Highest", "High", "Medium", "Medium", "Low"}
	snPrio       = []string{"1 - Critical", "2 - High", "3 - Moderate", "3 - Moderate", "4 - Low"}
	types        = []string{"Bug", "Story", "Story", "Task"}
	contactTypes = []string{"Phone", "Email", "Self-service"}
)

// Generate builds a synthetic export. Arrivals are spread one per day ending at
// cfg.Now; the cycle time of each ticket is sampled from the scenario.
func Generate(cfg GeneratorConfig) Export {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	r := newRand(cfg.Seed)

	tArrival := cfg.Now.AddDate(0, 0, -cfg.Count)
	tickets := make([]mockTicket, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		arrival := tArrival.Add(time.Duration(i*24)*time.Hour + time.Duration(r.IntN(9*60))*time.Minute)
		t := mockTicket{
			n:         i + 1,
			created:   arrival,
			issueType: pick(r, types),
			assignee:  pick(r, people),
			reporter:  pick(r, callers),
			theme:     pick(r, themes),
			points:    []int{1, 2, 3, 5, 8}[r.IntN(5)],
			sprint:    fmt.Sprintf("Sprint %d", 1+i/14),
			epic:      pick(r, epics),
			group:     pick(r, groups),
			category:  pick(r, cats),
			reassign:  r.IntN(3),
		}
		t.summary = fmt.Sprintf("%s for %s", t.theme, pick(r, []string{"finance", "sales", "support", "warehouse"}))
		if cfg.Source == profile.NameServiceNow {
			t.priority = pick(r, snPrio)
		} else {
			t.priority = pick(r, jiraPrio)
		}

		duration := cycleTime(r, cfg, i)
		ageDays := cfg.Now.Sub(arrival).Hours() / 24.0
		done := arrival.Add(time.Duration(duration * 24 * float64(time.Hour)))
		t.estimate = int64(math.Round(duration*0.6)) * 8 * 3600
		due := arrival.AddDate(0, 0, 10)
		t.due = &due

		if ageDays > duration {
			t.resolved = &done
			t.updated = done
			t.status = closedStatus(cfg.Source, r)
			t.spent = int64(duration*0.5*8) * 3600
			t.madeSLA = duration <= 10
		} else {
			t.status = openStatus(cfg.Source, ageDays/duration, r)
			t.updated = arrival.Add(time.Duration(ageDays*0.5*24) * time.Hour)
			t.spent = int64(ageDays*0.3*8) * 3600
			t.madeSLA = ageDays <= 10
		}
		t.note = t.updated
		if r.Float64() < 0.1 {
			t.reopen = 1
		}
		if cfg.Scenario == "chaos" && r.Float64() < 0.15 {
			t.assignee = ""
		}
		tickets = append(tickets, t)
	}

	var e Export
	switch cfg.Source {
	case profile.NameServiceNow:
		e = serviceNowExport(tickets)
	default:
		e = jiraExport(tickets)
	}
	if cfg.Scenario == "chaos" {
		dirty(&e, r)
	}
	return e
}

// cycleTime samples the days from creation to resolution.
func cycleTime(r *rand.Rand, cfg GeneratorConfig, i int) float64 {
	k, lambda := 2.5, 9.5
	switch cfg.Scenario {
	case "chaos":
		k = 0.8
		if cfg.Distribution == "weibull" {
			lambda = 12.0
		}
	case "drift":
		ratio := float64(i) / float64(cfg.Count)
		k = 2.5 - (1.7 * ratio)
		lambda = 9.5 + (2.5 * ratio)
	}

	if cfg.Distribution == "weibull" {
		return weibullSample(r, k, lambda)
	}
	d := 6.0 + r.Float64()*5.0
	if cfg.Scenario == "chaos" && r.Float64() < 0.2 {
		d += 10 + r.Float64()*15
	}
	if cfg.Scenario == "drift" && i > cfg.Count/2 {
		d *= 2.0
	}
	return d
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func weibullSample(r *rand.Rand, k, lambda float64) float64 {
	u := r.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

func openStatus(source string, progress float64, r *rand.Rand) string {
	if source == profile.NameServiceNow {
		switch {
		case progress < 0.15:
			return "New"
		case r.Float64() < 0.1:
			return "On Hold"
		default:
			return "In Progress"
		}
	}
	switch {
	case progress < 0.15:
		return "To Do"
	case r.Float64() < 0.1:
		return "Blocked"
	case progress < 0.6:
		return "In Progress"
	default:
		return "In Review"
	}
}

func closedStatus(source string, r *rand.Rand) string {
	if source == profile.NameServiceNow {
		if r.Float64() < 0.3 {
			return "Resolved"
		}
		return "Closed"
	}
	return "Done"
}

func jiraExport(tickets []mockTicket) Export {
	const layout = "02/Jan/06 3:04 PM"
	e := Export{Headers: []string{
		"Summary", "Issue key", "Issue Type", "Status", "Priority", "Assignee", "Reporter",
		"Created", "Updated", "Resolved", "Due Date", "Labels", "Labels", "Sprint",
		"Custom field (Story Points)", "Custom field (Epic Link)", "Original Estimate", "Time Spent", "Comment",
	}}
	for _, t := range tickets {
		e.Rows = append(e.Rows, []string{
			t.summary,
			fmt.Sprintf("SHOP-%d", t.n),
			t.issueType,
			t.status,
			t.priority,
			t.assignee,
			t.reporter,
			t.created.Format(layout),
			t.updated.Format(layout),
			formatPtr(t.resolved, layout),
			formatPtr(t.due, "2006-01-02"),
			"customer",
			labelFor(t),
			t.sprint,
			strconv.Itoa(t.points),
			t.epic,
			strconv.FormatInt(t.estimate, 10),
			strconv.FormatInt(t.spent, 10),
			fmt.Sprintf("%s;%s;Looked into %s", t.note.Format(layout), t.assignee, t.theme),
		})
	}
	return e
}

func serviceNowExport(tickets []mockTicket) Export {
	const layout = "2006-01-02 15:04:05"
	e := Export{Headers: []string{
		"number", "short_description", "state", "priority", "assigned_to", "caller_id",
		"opened_at", "sys_updated_on", "resolved_at", "due_date", "category", "assignment_group",
		"made_sla", "business_duration", "reassignment_count", "reopen_count", "contact_type", "Work notes",
	}}
	for _, t := range tickets {
		business := ""
		if t.resolved != nil {
			business = strconv.FormatInt(int64(t.resolved.Sub(t.created).Seconds()/3), 10)
		}
		e.Rows = append(e.Rows, []string{
			fmt.Sprintf("INC%07d", 10000+t.n),
			t.summary,
			t.status,
			t.priority,
			t.assignee,
			t.reporter,
			t.created.Format(layout),
			t.updated.Format(layout),
			formatPtr(t.resolved, layout),
			formatPtr(t.due, layout),
			t.category,
			t.group,
			strconv.FormatBool(t.madeSLA),
			business,
			strconv.Itoa(t.reassign),
			strconv.Itoa(t.reopen),
			contactTypes[t.n%len(contactTypes)],
			fmt.Sprintf("%s - %s (Work notes)\nChecked %s", t.note.Format(layout), t.assignee, t.theme),
		})
	}
	return e
}

// dirty mixes in the defects real exports carry: blank rows, unparseable dates
// and short rows.
func dirty(e *Export, r *rand.Rand) {
	for i := range e.Rows {
		switch x := r.Float64(); {
		case x < 0.03:
			e.Rows[i] = make([]string, len(e.Headers))
		case x < 0.06:
			e.Rows[i][indexOf(e.Headers, "Updated", "sys_updated_on")] = "not a date"
		case x < 0.08:
			e.Rows[i] = e.Rows[i][:len(e.Rows[i])/2]
		}
	}
}

func labelFor(t mockTicket) string {
	if t.issueType == "Bug" {
		return "defect"
	}
	return ""
}

func indexOf(headers []string, names ...string) int {
	for i, h := range headers {
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return 0
}

func formatPtr(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

func pick(r *rand.Rand, values []string) string {
	return values[r.IntN(len(values))]
}

// Save writes e as a CSV file, creating the output directory.
func Save(path string, e Export) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	w := csv.NewWriter(bw)
	if err := w.Write(e.Headers); err != nil {
		return err
	}
	if err := w.WriteAll(e.Rows); err != nil {
		return err
	}
	return bw.Flush()
}
