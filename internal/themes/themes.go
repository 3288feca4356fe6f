// Package themes finds recurring phrases in ticket summaries.
package themes

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"ticketlens/internal/scalar"
)

const (
	// MaxThemes caps the number of themes returned by Extract.
	MaxThemes = 25
	// MinSummaries is how many distinct summaries must share a phrase.
	MinSummaries = 3
	// MaxExamples is the number of example snippets kept per theme.
	MaxExamples = 3
	// SnippetLength truncates example snippets.
	SnippetLength = 100
)

// Theme is a phrase shared by several summaries.
type Theme struct {
	Theme    string   `json:"theme"`
	Count    int      `json:"count"`
	Examples []string `json:"examples"`
}

var wordRe = regexp.MustCompile(`[a-z0-9]+`)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`a an the to of for in on is it and or be as at by was are has had not but
		from with this that i we they you my our do so if no up out can all been have will its did get got
		need needs needed please hi hello thanks thank would could should re fw fwd per via ie eg etc also
		just about their them there these those when what which who how very some any more other into over
		only than then each after before between same being both does done going make may new now one two
		use way`) {
		stopWords[w] = struct{}{}
	}
}

// Tokenize lowercases text and keeps alphanumeric words that are not stop words
// and longer than one character.
func Tokenize(text string) []string {
	var words []string
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) <= 1 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		words = append(words, w)
	}
	return words
}

// Extract counts 3-word and 2-word phrases by the number of distinct summaries
// containing them, keeps those shared by at least MinSummaries summaries, and
// returns up to max themes by descending count. A 2-word phrase covered by an
// already emitted 3-word phrase is skipped.
func Extract(summaries []string, max int) []Theme {
	counts := make(map[string]int)
	examples := make(map[string][]string)
	var order []string

	for _, s := range summaries {
		if strings.TrimSpace(s) == "" {
			continue
		}
		words := Tokenize(s)
		seen := make(map[string]bool)
		for _, n := range []int{3, 2} {
			for i := 0; i+n <= len(words); i++ {
				ng := strings.Join(words[i:i+n], " ")
				if seen[ng] {
					continue
				}
				seen[ng] = true
				if _, ok := counts[ng]; !ok {
					order = append(order, ng)
				}
				counts[ng]++
				if len(examples[ng]) < MaxExamples {
					examples[ng] = append(examples[ng], scalar.Truncate(s, SnippetLength))
				}
			}
		}
	}

	var candidates []string
	for _, ng := range order {
		if counts[ng] >= MinSummaries {
			candidates = append(candidates, ng)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return counts[candidates[i]] > counts[candidates[j]]
	})

	var out []Theme
	covered := make(map[string]bool)
	for _, ng := range candidates {
		if len(out) >= max {
			break
		}
		words := strings.Fields(ng)
		if len(words) == 2 && covered[ng] {
			continue
		}
		out = append(out, Theme{
			Theme:    titleCase(ng),
			Count:    counts[ng],
			Examples: examples[ng],
		})
		if len(words) == 3 {
			covered[words[0]+" "+words[1]] = true
			covered[words[1]+" "+words[2]] = true
		}
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
