package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"ticketlens/internal/config"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const exportCSV = "Number,Short description,State,Assignment group,Opened at,Made SLA\n" +
	"INC001,VPN connection drops,New,Network,2024-06-01,false\n" +
	"INC002,VPN connection drops again,Closed,Network,2024-05-01,true\n"

func connect(t *testing.T) *sdk.ClientSession {
	t.Helper()
	ctx := context.Background()

	srv, err := NewServer(&config.AppConfig{StaleDays: 14, Source: "auto"}, "test").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	serverT, clientT := sdk.NewInMemoryTransports()
	ss, err := srv.Connect(ctx, serverT, nil)
	if err != nil {
		t.Fatalf("server Connect() error = %v", err)
	}
	t.Cleanup(func() { _ = ss.Close() })

	client := sdk.NewClient(&sdk.Implementation{Name: "client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client Connect() error = %v", err)
	}
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "incidents.csv")
	if err := os.WriteFile(path, []byte(exportCSV), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func structured(t *testing.T, res *sdk.CallToolResult, v any) {
	t.Helper()
	data, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
}

func TestListTools(t *testing.T) {
	cs := connect(t)
	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	names := map[string]bool{}
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"detect_source", "analyze_export"} {
		if !names[want] {
			t.Errorf("tool %q not registered", want)
		}
	}
}

func TestDetectSource(t *testing.T) {
	cs := connect(t)
	res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{
		Name:      "detect_source",
		Arguments: map[string]any{"path": writeExport(t)},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("detect_source returned a tool error: %+v", res.Content)
	}
	var got struct {
		Profile string `json:"profile"`
	}
	structured(t, res, &got)
	if got.Profile != "servicenow" {
		t.Errorf("profile = %q, want servicenow", got.Profile)
	}
}

func TestAnalyzeExport(t *testing.T) {
	cs := connect(t)
	res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{
		Name: "analyze_export",
		Arguments: map[string]any{
			"path":       writeExport(t),
			"stale_days": 7,
			"now":        "2024-06-30T12:00:00Z",
		},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("analyze_export returned a tool error: %+v", res.Content)
	}
	var got struct {
		SourceType   string `json:"source_type"`
		TotalTickets int    `json:"total_tickets"`
		StaleDays    int    `json:"stale_days"`
		SLAMetCount  int    `json:"sla_met_count"`
	}
	structured(t, res, &got)
	if got.SourceType != "servicenow" || got.TotalTickets != 2 || got.StaleDays != 7 || got.SLAMetCount != 1 {
		t.Errorf("analyze_export = %+v", got)
	}
}

func TestAnalyzeExport_ToolErrors(t *testing.T) {
	cs := connect(t)
	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing file", map[string]any{"path": filepath.Join(t.TempDir(), "nope.csv")}},
		{"bad now", map[string]any{"path": writeExport(t), "now": "soon"}},
		{"bad source", map[string]any{"path": writeExport(t), "source": "bugzilla"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{Name: "analyze_export", Arguments: tt.args})
			if err != nil {
				t.Fatalf("CallTool() error = %v", err)
			}
			if !res.IsError {
				t.Error("expected a tool error result")
			}
		})
	}
}

func TestRequestDefaults(t *testing.T) {
	s := NewServer(&config.AppConfig{StaleDays: 21, Source: "jira", ProfileFile: "custom.yaml"}, "test")

	req, err := s.request(AnalyzeInput{Path: "x.csv"})
	if err != nil {
		t.Fatal(err)
	}
	if req.StaleDays != 21 || req.Source != "jira" || req.ProfileFile != "custom.yaml" {
		t.Errorf("request() = %+v, want config defaults", req)
	}

	zero := 0
	req, err = s.request(AnalyzeInput{Path: "x.csv", Source: "servicenow", StaleDays: &zero})
	if err != nil {
		t.Fatal(err)
	}
	if req.StaleDays != 0 || req.Source != "servicenow" || req.ProfileFile != "" {
		t.Errorf("request() = %+v, want explicit inputs", req)
	}

	if _, err := s.request(AnalyzeInput{}); err == nil {
		t.Error("request() without path should fail")
	}
}
