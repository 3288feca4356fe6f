package stats

import (
	"fmt"
	"sort"
	"time"

	"ticketlens/internal/profile"
	"ticketlens/internal/scalar"
	"ticketlens/internal/themes"
	"ticketlens/internal/ticket"

	"github.com/rs/zerolog/log"
)

type progress struct {
	total, open, closed int
	points              float64
}

type assigneeAcc struct {
	total, open, closed, overdue, stale int
	ageSum                              float64
	ageCount                            int
	points                              float64
}

type reporterAcc struct {
	total, open, closed, overdue int
}

type estimateAcc struct {
	estimated, actual []int64
}

type groupAcc struct {
	total, open, closed, slaMet, slaMissed int
}

type slaAcc struct {
	met, missed int
}

type flowKey struct {
	reporter, assignee string
}

// keyed keeps per-key accumulators in first-seen order.
type keyed[T any] struct {
	order []string
	items map[string]*T
}

func newKeyed[T any]() *keyed[T] {
	return &keyed[T]{items: make(map[string]*T)}
}

func (k *keyed[T]) get(key string) *T {
	if v, ok := k.items[key]; ok {
		return v
	}
	v := new(T)
	k.items[key] = v
	k.order = append(k.order, key)
	return v
}

// sortedBy returns keys ordered by descending score, ties in first-seen order.
func (k *keyed[T]) sortedBy(score func(*T) int) []string {
	keys := append([]string(nil), k.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return score(k.items[keys[i]]) > score(k.items[keys[j]])
	})
	return keys
}

// Compute aggregates tickets into a Dashboard. The result depends only on the
// arguments: now replaces the wall clock for every age and staleness check.
func Compute(tickets []ticket.Ticket, staleDays int, now time.Time, p profile.Profile) Dashboard {
	f := p.Features
	d := Dashboard{
		Source:       p.Name,
		GeneratedAt:  now,
		StaleDays:    staleDays,
		TotalTickets: len(tickets),

		StalenessRows:            []StalenessRow{},
		OldestOpen:               []OldestOpenRow{},
		AssigneeBreakdown:        []AssigneeRow{},
		ReporterBreakdown:        []ReporterRow{},
		EpicProgress:             []ProgressRow{},
		SprintProgress:           []ProgressRow{},
		EstimationAccuracy:       []EstimationRow{},
		SLAByPriority:            []SLAPriorityRow{},
		ContactTypeCounts:        Counts{},
		CategoryCounts:           Counts{},
		SubcategoryCounts:        Counts{},
		AssignmentGroupCounts:    Counts{},
		AssignmentGroupBreakdown: []GroupRow{},
		EscalationCounts:         Counts{},
		Themes:                   []themes.Theme{},
	}

	var (
		openAges       []float64
		resolutionDays []float64

		status, assignee, priority, itype = newTally[int](), newTally[int](), newTally[int](), newTally[int]()
		components, labels                = newTally[int](), newTally[int]()
		createdMonths, resolvedMonths     = newTally[int](), newTally[int]()
		buckets                           = make([]int, len(AgeBucketLabels))

		resByType     = newKeyed[[]float64]()
		resByPriority = newKeyed[[]float64]()
		epics         = newKeyed[progress]()
		sprints       = newKeyed[progress]()
		estimates     = newKeyed[estimateAcc]()
		assignees     = newKeyed[assigneeAcc]()
		reporters     = newKeyed[reporterAcc]()
		groups        = newKeyed[groupAcc]()
		slaByPriority = newKeyed[slaAcc]()

		flows     = make(map[flowKey]int)
		flowOrder []flowKey

		categories, subcategories = newTally[int](), newTally[int]()
		groupCounts               = newTally[int]()
		contactTypes, escalations = newTally[int](), newTally[int]()
		reassignments, reopens    []int
	)

	for _, t := range tickets {
		open := IsOpen(t.Status, p)
		if open {
			d.OpenTickets++
		} else {
			d.ClosedTickets++
		}
		if open && IsBlocked(t.Status, p) {
			d.BlockedTickets++
		}
		if open && IsUnassigned(t, p) {
			d.UnassignedTickets++
		}
		if t.StoryPoints != nil {
			d.TotalStoryPoints += *t.StoryPoints
			if open {
				d.OpenStoryPoints += *t.StoryPoints
			}
		}

		statusName := t.Status
		if statusName == "" {
			statusName = unknown
		}
		status.add(statusName, 1)
		if open {
			assignee.add(t.Assignee, 1)
		}
		if t.Priority != "" {
			priority.add(t.Priority, 1)
		}
		if t.IssueType != "" {
			itype.add(t.IssueType, 1)
		}
		for _, c := range t.ComponentList() {
			components.add(c, 1)
		}
		for _, l := range t.LabelList() {
			labels.add(l, 1)
		}

		if t.Created != nil {
			createdMonths.add(scalar.MonthKey(*t.Created), 1)
		}
		if t.Resolved != nil {
			resolvedMonths.add(scalar.MonthKey(*t.Resolved), 1)
		}

		var age float64
		if open && t.Created != nil {
			age = scalar.DaysBetween(*t.Created, now)
			openAges = append(openAges, age)
			buckets[ageBucket(age)]++
		}

		overdue := open && IsOverdue(t, now)
		if overdue {
			d.OverdueTickets++
		}

		stale := open && IsStale(t, staleDays, now)
		if stale {
			d.StaleTickets++
		}

		reporter := t.Reporter
		if reporter == "" {
			reporter = unknown
		}

		if open {
			d.StalenessRows = append(d.StalenessRows, stalenessRow(t, reporter, now))
		}

		typeName := t.IssueType
		if typeName == "" {
			typeName = unknown
		}
		if !open && t.Created != nil && t.Resolved != nil {
			days := scalar.DaysBetween(*t.Created, *t.Resolved)
			resolutionDays = append(resolutionDays, days)
			rt := resByType.get(typeName)
			*rt = append(*rt, days)
			if t.Priority != "" {
				rp := resByPriority.get(t.Priority)
				*rp = append(*rp, days)
			}
		}

		if t.EpicLink != "" {
			epics.get(t.EpicLink).record(open, t.StoryPoints)
		}
		if t.Sprint != "" {
			sprints.get(t.Sprint).record(open, t.StoryPoints)
		}

		if t.OriginalEstimate != nil && t.TimeSpent != nil {
			e := estimates.get(typeName)
			e.estimated = append(e.estimated, *t.OriginalEstimate)
			e.actual = append(e.actual, *t.TimeSpent)
		}

		fk := flowKey{reporter: reporter, assignee: t.Assignee}
		if _, ok := flows[fk]; !ok {
			flowOrder = append(flowOrder, fk)
		}
		flows[fk]++

		a := assignees.get(t.Assignee)
		a.total++
		if t.StoryPoints != nil {
			a.points += *t.StoryPoints
		}
		r := reporters.get(reporter)
		r.total++
		if open {
			a.open++
			r.open++
			if t.Created != nil {
				a.ageSum += age
				a.ageCount++
			}
			if overdue {
				a.overdue++
				r.overdue++
			}
			if stale {
				a.stale++
			}
		} else {
			a.closed++
			r.closed++
		}

		if f.SLA && t.MadeSLA != nil {
			pri := t.Priority
			if pri == "" {
				pri = unknown
			}
			s := slaByPriority.get(pri)
			if *t.MadeSLA {
				d.SLAMetCount++
				s.met++
			} else {
				d.SLAMissedCount++
				s.missed++
			}
		}
		if f.Categories && t.Category != "" {
			categories.add(t.Category, 1)
		}
		if f.Categories && t.Subcategory != "" {
			subcategories.add(t.Subcategory, 1)
		}
		if f.AssignmentGroups && t.AssignmentGroup != "" {
			groupCounts.add(t.AssignmentGroup, 1)
			g := groups.get(t.AssignmentGroup)
			g.total++
			if open {
				g.open++
			} else {
				g.closed++
			}
			if t.MadeSLA != nil {
				if *t.MadeSLA {
					g.slaMet++
				} else {
					g.slaMissed++
				}
			}
		}
		if f.ContactType && t.ContactType != "" {
			contactTypes.add(t.ContactType, 1)
		}
		if f.Escalation && t.Escalation != "" {
			escalations.add(t.Escalation, 1)
		}
		if f.Reassignment && t.ReassignmentCount != nil {
			reassignments = append(reassignments, *t.ReassignmentCount)
		}
		if f.Reassignment && t.ReopenCount != nil {
			reopens = append(reopens, *t.ReopenCount)
		}
	}

	d.AvgAgeOpenDays = scalar.Round1(mean(openAges))
	d.ResolutionRate = scalar.Percent(d.ClosedTickets, d.TotalTickets)
	d.AvgResolutionDays = scalar.Round1(mean(resolutionDays))
	d.MedianResolutionDays = scalar.Round1(Median(resolutionDays))
	d.ResolutionPercentiles = PercentilesOf(resolutionDays)
	d.TotalStoryPoints = scalar.Round1(d.TotalStoryPoints)
	d.OpenStoryPoints = scalar.Round1(d.OpenStoryPoints)

	d.StatusCounts = status.result()
	d.AssigneeCounts = assignee.result()
	d.PriorityCounts = priority.result()
	d.TypeCounts = itype.result()
	d.ComponentCounts = components.result()
	d.LabelCounts = labels.result()

	d.AvgResolutionByType = averages(resByType)
	d.AvgResolutionByPriority = averages(resByPriority)

	d.CreatedByMonth, d.ResolvedByMonth = alignMonths(createdMonths, resolvedMonths)

	d.AgeBuckets = make(Counts, len(AgeBucketLabels))
	for i, label := range AgeBucketLabels {
		d.AgeBuckets[i] = Entry[int]{Key: label, Value: buckets[i]}
	}

	sort.SliceStable(d.StalenessRows, func(i, j int) bool {
		return d.StalenessRows[i].DaysSince > d.StalenessRows[j].DaysSince
	})
	d.OldestOpen = oldestOpen(tickets, now, p)

	for _, name := range assignees.sortedBy(func(a *assigneeAcc) int { return a.total }) {
		a := assignees.items[name]
		var avgAge float64
		if a.ageCount > 0 {
			avgAge = scalar.Round1(a.ageSum / float64(a.ageCount))
		}
		d.AssigneeBreakdown = append(d.AssigneeBreakdown, AssigneeRow{
			Assignee: name, Total: a.total, Open: a.open, Closed: a.closed,
			AvgAge: avgAge, Overdue: a.overdue, Stale: a.stale,
			StoryPoints: scalar.Round1(a.points),
		})
	}
	for _, name := range reporters.sortedBy(func(r *reporterAcc) int { return r.total }) {
		r := reporters.items[name]
		d.ReporterBreakdown = append(d.ReporterBreakdown, ReporterRow{
			Reporter: name, Total: r.total, Open: r.open, Closed: r.closed, Overdue: r.overdue,
		})
	}

	d.EpicProgress = progressRows(epics)
	d.SprintProgress = progressRows(sprints)
	d.EstimationAccuracy = estimationRows(estimates)
	d.ReporterAssigneeMatrix = flowRows(flows, flowOrder)

	if f.SLA {
		d.SLACompliancePct = scalar.Percent(d.SLAMetCount, d.SLAMetCount+d.SLAMissedCount)
		keys := append([]string(nil), slaByPriority.order...)
		sort.Strings(keys)
		for _, pri := range keys {
			s := slaByPriority.items[pri]
			d.SLAByPriority = append(d.SLAByPriority, SLAPriorityRow{Priority: pri, Met: s.met, Missed: s.missed})
		}
	}
	if f.Categories {
		d.CategoryCounts = categories.result().SortedByValue()
		d.SubcategoryCounts = subcategories.result().SortedByValue()
	}
	if f.AssignmentGroups {
		d.AssignmentGroupCounts = groupCounts.result().SortedByValue()
		for _, name := range groups.sortedBy(func(g *groupAcc) int { return g.total }) {
			g := groups.items[name]
			d.AssignmentGroupBreakdown = append(d.AssignmentGroupBreakdown, GroupRow{
				Group: name, Total: g.total, Open: g.open, Closed: g.closed,
				SLAPct: scalar.Percent(g.slaMet, g.slaMet+g.slaMissed),
			})
		}
	}
	if f.ContactType {
		d.ContactTypeCounts = contactTypes.result().SortedByValue()
	}
	if f.Escalation {
		d.EscalationCounts = escalations.result().SortedByValue()
	}
	if f.Reassignment {
		d.AvgReassignmentCount = scalar.Round1(meanInt(reassignments))
		d.MedianReassignmentCount = MedianCount(reassignments)
		d.AvgReopenCount = scalar.Round1(meanInt(reopens))
	}

	var summaries []string
	for _, t := range tickets {
		summaries = append(summaries, t.Summary)
	}
	if th := themes.Extract(summaries, themes.MaxThemes); th != nil {
		d.Themes = th
	}

	d.AllHeaders, d.AllRows = passthrough(tickets)

	log.Debug().
		Str("source", p.Name).
		Int("total", d.TotalTickets).
		Int("open", d.OpenTickets).
		Int("stale", d.StaleTickets).
		Int("themes", len(d.Themes)).
		Msg("Computed dashboard")

	return d
}

func (pr *progress) record(open bool, points *float64) {
	pr.total++
	if open {
		pr.open++
	} else {
		pr.closed++
	}
	if points != nil {
		pr.points += *points
	}
}

func stalenessRow(t ticket.Ticket, reporter string, now time.Time) StalenessRow {
	row := StalenessRow{
		Key:             t.Key,
		Summary:         scalar.Truncate(t.Summary, stalenessSummaryLen),
		Reporter:        reporter,
		Assignee:        t.Assignee,
		Status:          t.Status,
		LastCommentDate: scalar.NoValue,
		DaysSince:       NoActivityDays,
		CommentPreview:  commentPreview(t.LastCommentText),
	}
	if last := t.LastActivity(); last != nil {
		row.LastCommentDate = last.Format(time.DateOnly)
		row.DaysSince = scalar.Round1(scalar.DaysBetween(*last, now))
	}
	return row
}

func commentPreview(text string) string {
	if text == "" {
		return scalar.NoValue
	}
	if len([]rune(text)) > commentPreviewLen {
		return scalar.Truncate(text, commentPreviewLen) + "…"
	}
	return text
}

func oldestOpen(tickets []ticket.Ticket, now time.Time, p profile.Profile) []OldestOpenRow {
	rows := []OldestOpenRow{}
	for _, t := range tickets {
		if !IsOpen(t.Status, p) || t.Created == nil {
			continue
		}
		rows = append(rows, OldestOpenRow{
			Key:      t.Key,
			Summary:  scalar.Truncate(t.Summary, oldestSummaryLen),
			Assignee: t.Assignee,
			Status:   t.Status,
			AgeDays:  scalar.Round1(scalar.DaysBetween(*t.Created, now)),
			Created:  t.Created.Format(time.DateOnly),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].AgeDays > rows[j].AgeDays })
	if len(rows) > OldestOpenLimit {
		rows = rows[:OldestOpenLimit]
	}
	return rows
}

// alignMonths gives both series the same sorted month keys, filling gaps with zero.
func alignMonths(created, resolved *tally[int]) (Counts, Counts) {
	seen := make(map[string]bool)
	var months []string
	for _, src := range []*tally[int]{created, resolved} {
		for _, e := range src.items {
			if !seen[e.Key] {
				seen[e.Key] = true
				months = append(months, e.Key)
			}
		}
	}
	sort.Strings(months)

	c := make(Counts, len(months))
	r := make(Counts, len(months))
	for i, m := range months {
		c[i] = Entry[int]{Key: m, Value: created.items.Get(m)}
		r[i] = Entry[int]{Key: m, Value: resolved.items.Get(m)}
	}
	return c, r
}

func averages(k *keyed[[]float64]) Averages {
	out := Averages{}
	for _, key := range k.order {
		out = append(out, Entry[float64]{Key: key, Value: scalar.Round1(mean(*k.items[key]))})
	}
	return out
}

func progressRows(k *keyed[progress]) []ProgressRow {
	rows := []ProgressRow{}
	for _, name := range k.sortedBy(func(p *progress) int { return p.total }) {
		p := k.items[name]
		rows = append(rows, ProgressRow{
			Name: name, Total: p.total, Open: p.open, Closed: p.closed,
			PctDone:     scalar.Percent(p.closed, p.total),
			StoryPoints: scalar.Round1(p.points),
		})
	}
	return rows
}

func estimationRows(k *keyed[estimateAcc]) []EstimationRow {
	types := append([]string(nil), k.order...)
	sort.Strings(types)

	rows := []EstimationRow{}
	for _, name := range types {
		e := k.items[name]
		avgEst := meanInt64(e.estimated)
		avgAct := meanInt64(e.actual)
		var accuracy float64
		if avgEst > 0 {
			accuracy = scalar.Round1(avgAct / avgEst * 100)
		}
		rows = append(rows, EstimationRow{
			Type:         name,
			Count:        len(e.estimated),
			AvgEstimated: scalar.FormatSeconds(int64(avgEst)),
			AvgActual:    scalar.FormatSeconds(int64(avgAct)),
			AccuracyPct:  accuracy,
		})
	}
	return rows
}

func flowRows(flows map[flowKey]int, order []flowKey) []FlowRow {
	keys := append([]flowKey(nil), order...)
	sort.SliceStable(keys, func(i, j int) bool { return flows[keys[i]] > flows[keys[j]] })
	if len(keys) > FlowLimit {
		keys = keys[:FlowLimit]
	}
	rows := make([]FlowRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, FlowRow{Reporter: k.reporter, Assignee: k.assignee, Count: flows[k]})
	}
	return rows
}

// passthrough builds the union of headers in first-seen order and one row per
// ticket. A header repeated within a ticket keeps its last value.
func passthrough(tickets []ticket.Ticket) ([]string, []ticket.Row) {
	headers := []string{}
	seen := make(map[string]bool)
	for _, t := range tickets {
		for _, f := range t.Raw {
			if !seen[f.Header] {
				seen[f.Header] = true
				headers = append(headers, f.Header)
			}
		}
	}

	rows := make([]ticket.Row, 0, len(tickets))
	for _, t := range tickets {
		values := make(map[string]string, len(t.Raw))
		for _, f := range t.Raw {
			values[f.Header] = f.Value
		}
		row := make(ticket.Row, len(headers))
		for i, h := range headers {
			row[i] = ticket.Field{Header: h, Value: values[h]}
		}
		rows = append(rows, row)
	}
	return headers, rows
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func meanInt(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum int
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func meanInt64(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum int64
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// String renders a one-line summary for logs and the detect command.
func (d Dashboard) String() string {
	return fmt.Sprintf("%s: %d tickets (%d open, %d closed, %d stale)",
		d.Source, d.TotalTickets, d.OpenTickets, d.ClosedTickets, d.StaleTickets)
}
