package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ticketlens/internal/ingest"
	"ticketlens/internal/profile"
)

var now = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func TestGenerate_RoundTripsThroughIngest(t *testing.T) {
	tests := []struct {
		source string
	}{
		{profile.NameJira},
		{profile.NameServiceNow},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			e := Generate(GeneratorConfig{Source: tt.source, Scenario: "mild", Count: 60, Now: now, Seed: 7})
			if len(e.Rows) != 60 {
				t.Fatalf("len(Rows) = %d, want 60", len(e.Rows))
			}

			path := filepath.Join(t.TempDir(), "export.csv")
			if err := Save(path, e); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			text, err := ingest.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			headers, err := ingest.ReadHeaders(text)
			if err != nil {
				t.Fatal(err)
			}
			if got := profile.Detect(headers); got != tt.source {
				t.Errorf("Detect() = %q, want %q", got, tt.source)
			}

			p, _ := profile.Lookup(tt.source)
			res, err := ingest.Parse(text, p)
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Tickets) != 60 {
				t.Errorf("parsed %d tickets, want 60", len(res.Tickets))
			}
			for _, tk := range res.Tickets {
				if tk.Created == nil {
					t.Fatalf("%s: created date did not parse", tk.Key)
				}
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := GeneratorConfig{Source: profile.NameJira, Scenario: "chaos", Distribution: "weibull", Count: 30, Now: now, Seed: 42}
	a, b := Generate(cfg), Generate(cfg)
	for i := range a.Rows {
		if len(a.Rows[i]) != len(b.Rows[i]) {
			t.Fatalf("row %d differs between runs", i)
		}
		for j := range a.Rows[i] {
			if a.Rows[i][j] != b.Rows[i][j] {
				t.Fatalf("row %d col %d differs: %q vs %q", i, j, a.Rows[i][j], b.Rows[i][j])
			}
		}
	}
}

func TestWeibullSample_Positive(t *testing.T) {
	r := newRand(3)
	for i := 0; i < 100; i++ {
		if v := weibullSample(r, 0.8, 12); v <= 0 {
			t.Fatalf("weibullSample() = %v, want > 0", v)
		}
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "x.csv")
	if err := Save(path, Export{Headers: []string{"Issue key"}, Rows: [][]string{{"X-1"}}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Issue key\nX-1\n" {
		t.Errorf("file = %q", data)
	}
}
