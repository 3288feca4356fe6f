package mcp

import (
	"context"
	"fmt"

	"ticketlens/internal/analysis"
	"ticketlens/internal/stats"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// DetectInput names the export to sniff.
type DetectInput struct {
	Path string `json:"path" jsonschema:"absolute path of the CSV export"`
}

// AnalyzeInput selects an export and the options for its dashboard.
type AnalyzeInput struct {
	Path      string `json:"path" jsonschema:"absolute path of the CSV export"`
	Source    string `json:"source,omitempty" jsonschema:"jira or servicenow or auto (default)"`
	StaleDays *int   `json:"stale_days,omitempty" jsonschema:"days without activity before an open ticket counts as stale"`
	Now       string `json:"now,omitempty" jsonschema:"reference time in RFC 3339 (defaults to the current time)"`
}

func (s *Server) registerTools(srv *sdk.Server) error {
	schema, err := stats.Schema()
	if err != nil {
		return fmt.Errorf("failed to build dashboard schema: %w", err)
	}

	sdk.AddTool(srv, &sdk.Tool{
		Name: "detect_source",
		Description: "Inspect the header row of a ticket CSV export and report which tracker produced it. " +
			"Returns the winning profile and the signature headers each profile matched.",
	}, s.handleDetect)

	sdk.AddTool(srv, &sdk.Tool{
		Name: "analyze_export",
		Description: "Parse a jira or servicenow CSV export and compute the dashboard aggregates: " +
			"status and priority counts, ageing, staleness, assignee workload, monthly trend, " +
			"recurring themes and the tracker specific sections.",
		OutputSchema: schema,
	}, s.handleAnalyze)

	return nil
}

func (s *Server) handleDetect(_ context.Context, _ *sdk.CallToolRequest, in DetectInput) (*sdk.CallToolResult, analysis.Detection, error) {
	if in.Path == "" {
		return nil, analysis.Detection{}, fmt.Errorf("path is required")
	}
	d, err := analysis.Detect(in.Path)
	if err != nil {
		return nil, analysis.Detection{}, err
	}
	log.Debug().Str("path", in.Path).Str("profile", d.Profile).Msg("detect_source")
	return nil, *d, nil
}

func (s *Server) handleAnalyze(_ context.Context, _ *sdk.CallToolRequest, in AnalyzeInput) (*sdk.CallToolResult, stats.Dashboard, error) {
	req, err := s.request(in)
	if err != nil {
		return nil, stats.Dashboard{}, err
	}
	a, err := analysis.Run(req)
	if err != nil {
		return nil, stats.Dashboard{}, err
	}
	return nil, a.Dashboard, nil
}

// request fills unset inputs from the configuration.
func (s *Server) request(in AnalyzeInput) (analysis.Request, error) {
	if in.Path == "" {
		return analysis.Request{}, fmt.Errorf("path is required")
	}
	now, err := analysis.ParseNow(in.Now)
	if err != nil {
		return analysis.Request{}, err
	}
	req := analysis.Request{
		Path:        in.Path,
		Source:      s.cfg.Source,
		ProfileFile: s.cfg.ProfileFile,
		StaleDays:   s.cfg.StaleDays,
		Now:         now,
	}
	if in.Source != "" {
		req.Source = in.Source
		req.ProfileFile = ""
	}
	if in.StaleDays != nil {
		req.StaleDays = *in.StaleDays
	}
	return req, nil
}
