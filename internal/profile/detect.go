package profile

import (
	"strings"
)

// DetectionScore is the signature evidence one profile collected from a header row.
type DetectionScore struct {
	Profile      string   `json:"profile"`
	Score        int      `json:"score"`
	Hits         []string `json:"hits"`
	CustomFields int      `json:"custom_fields,omitempty"`
}

// Score computes signature hits for each candidate profile, in candidate order.
func Score(headers []string, candidates ...Profile) []DetectionScore {
	lower := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		lower[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}

	scores := make([]DetectionScore, 0, len(candidates))
	for _, p := range candidates {
		ds := DetectionScore{Profile: p.Name}
		for _, sig := range p.Signatures.Sorted() {
			if _, ok := lower[sig]; ok {
				ds.Hits = append(ds.Hits, sig)
			}
		}
		if p.CustomFieldBonus {
			for h := range lower {
				if strings.HasPrefix(h, "custom field") {
					ds.CustomFields++
				}
			}
		}
		ds.Score = len(ds.Hits) + ds.CustomFields
		scores = append(scores, ds)
	}
	return scores
}

// Detect picks the built-in profile whose signature headers best match.
// A later profile must score strictly higher to win, so ties go to jira.
func Detect(headers []string) string {
	return DetectAmong(headers, Jira(), ServiceNow())
}

// DetectAmong is Detect over an explicit, ordered candidate list. It returns ""
// when no candidates are given.
func DetectAmong(headers []string, candidates ...Profile) string {
	scores := Score(headers, candidates...)
	if len(scores) == 0 {
		return ""
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best.Profile
}

// Resolve turns a source selector into a profile. "auto" (or "") runs detection
// over the header row; any other value must name a built-in.
func Resolve(selector string, headers []string) (Profile, error) {
	sel := strings.ToLower(strings.TrimSpace(selector))
	if sel == "" || sel == "auto" {
		return Lookup(Detect(headers))
	}
	return Lookup(sel)
}
