// Package analysis runs the read, detect, parse and compute pipeline shared by
// the CLI and the MCP server.
package analysis

import (
	"fmt"
	"time"

	"ticketlens/internal/ingest"
	"ticketlens/internal/profile"
	"ticketlens/internal/report"
	"ticketlens/internal/scalar"
	"ticketlens/internal/stats"

	"github.com/rs/zerolog/log"
)

// Request selects an export and how to read it.
type Request struct {
	Path        string
	Source      string // "auto", "jira" or "servicenow"
	ProfileFile string // YAML profile; overrides Source when set
	StaleDays   int
	Now         time.Time // zero means time.Now()
	Title       string
}

// Analysis is one computed export.
type Analysis struct {
	Profile   profile.Profile
	Scores    []profile.DetectionScore
	Result    *ingest.Result
	Dashboard stats.Dashboard
	Title     string
}

// Detection is the outcome of sniffing an export's header row.
type Detection struct {
	Profile string                   `json:"profile"`
	Headers int                      `json:"headers"`
	Scores  []profile.DetectionScore `json:"scores"`
}

// Run reads the export at req.Path and computes its dashboard.
func Run(req Request) (*Analysis, error) {
	text, err := ingest.ReadFile(req.Path)
	if err != nil {
		return nil, err
	}
	return FromText(text, req)
}

// FromText is Run over already decoded CSV text.
func FromText(text string, req Request) (*Analysis, error) {
	headers, err := ingest.ReadHeaders(text)
	if err != nil {
		return nil, err
	}

	p, err := resolveProfile(req, headers)
	if err != nil {
		return nil, err
	}

	res, err := ingest.Parse(text, p)
	if err != nil {
		return nil, err
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = scalar.Naive(now)

	staleDays := req.StaleDays
	if staleDays < 0 {
		return nil, fmt.Errorf("stale days must not be negative, got %d", staleDays)
	}

	a := &Analysis{
		Profile:   p,
		Scores:    profile.Score(headers, profile.Jira(), profile.ServiceNow()),
		Result:    res,
		Dashboard: stats.Compute(res.Tickets, staleDays, now, p),
		Title:     report.AutoTitle(res.Tickets, req.Title, p),
	}

	log.Info().
		Str("path", req.Path).
		Str("profile", p.Name).
		Int("tickets", len(res.Tickets)).
		Int("open", a.Dashboard.OpenTickets).
		Msg("Analyzed export")

	return a, nil
}

// Detect reports which built-in profile fits the export at path.
func Detect(path string) (*Detection, error) {
	text, err := ingest.ReadFile(path)
	if err != nil {
		return nil, err
	}
	headers, err := ingest.ReadHeaders(text)
	if err != nil {
		return nil, err
	}
	return &Detection{
		Profile: profile.Detect(headers),
		Headers: len(headers),
		Scores:  profile.Score(headers, profile.Jira(), profile.ServiceNow()),
	}, nil
}

// ParseNow reads a reference time given as RFC 3339 or any export date format.
// An empty value yields the zero time.
func ParseNow(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return scalar.Naive(t), nil
	}
	if t, ok := scalar.ParseDate(value); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized reference time %q", value)
}

func resolveProfile(req Request, headers []string) (profile.Profile, error) {
	if req.ProfileFile != "" {
		p, err := profile.LoadFile(req.ProfileFile)
		if err != nil {
			return profile.Profile{}, err
		}
		log.Debug().Str("file", req.ProfileFile).Str("profile", p.Name).Msg("Using profile file")
		return p, nil
	}
	p, err := profile.Resolve(req.Source, headers)
	if err != nil {
		return profile.Profile{}, err
	}
	log.Debug().Str("selector", req.Source).Str("profile", p.Name).Msg("Resolved profile")
	return p, nil
}
