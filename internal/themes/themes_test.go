package themes

import (
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("Please reset the VPN password for a user!")
	want := []string{"reset", "vpn", "password", "user"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestExtract_ThresholdAndCoverage(t *testing.T) {
	summaries := []string{
		"VPN connection drops every hour",
		"vpn connection drops at login",
		"The VPN connection drops again",
		"Printer jammed on floor 3",
		"Printer jammed again",
		"",
	}

	got := Extract(summaries, MaxThemes)
	if len(got) != 1 {
		t.Fatalf("Extract() = %+v, want exactly one theme", got)
	}
	if got[0].Theme != "Vpn Connection Drops" || got[0].Count != 3 {
		t.Errorf("theme = %+v", got[0])
	}
	if len(got[0].Examples) != 3 {
		t.Errorf("examples = %v, want 3", got[0].Examples)
	}
	for _, th := range got {
		if th.Theme == "Vpn Connection" || th.Theme == "Connection Drops" {
			t.Errorf("bigram %q should be covered by its trigram", th.Theme)
		}
	}
}

func TestExtract_CountsDistinctSummaries(t *testing.T) {
	// One summary repeating a phrase counts once.
	summaries := []string{
		"disk full disk full disk full",
		"disk full on server",
	}
	if got := Extract(summaries, MaxThemes); len(got) != 0 {
		t.Errorf("Extract() = %+v, want none below the threshold", got)
	}
}

func TestExtract_OrderAndCap(t *testing.T) {
	var summaries []string
	for i := 0; i < 5; i++ {
		summaries = append(summaries, "email delivery delayed")
	}
	for i := 0; i < 4; i++ {
		summaries = append(summaries, "badge reader offline")
	}
	for i := 0; i < 3; i++ {
		summaries = append(summaries, "monitor flickering")
	}

	got := Extract(summaries, MaxThemes)
	if len(got) != 3 {
		t.Fatalf("Extract() returned %d themes: %+v", len(got), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Errorf("themes not sorted by count: %+v", got)
		}
	}
	if got[2].Theme != "Monitor Flickering" {
		t.Errorf("last theme = %q", got[2].Theme)
	}

	if capped := Extract(summaries, 2); len(capped) != 2 {
		t.Errorf("Extract(max=2) returned %d themes", len(capped))
	}
}

func TestExtract_TruncatesExamples(t *testing.T) {
	long := "server outage " + strings.Repeat("x", 200)
	got := Extract([]string{long, long, long}, MaxThemes)
	if len(got) == 0 {
		t.Fatal("expected a theme")
	}
	for _, ex := range got[0].Examples {
		if len([]rune(ex)) != SnippetLength {
			t.Errorf("example length = %d, want %d", len([]rune(ex)), SnippetLength)
		}
	}
}

func TestExtract_Empty(t *testing.T) {
	if got := Extract(nil, MaxThemes); got != nil {
		t.Errorf("Extract(nil) = %v", got)
	}
}
