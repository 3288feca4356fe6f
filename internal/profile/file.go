package profile

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// fileProfile is the YAML shape of a custom profile. Omitted sections inherit from Base.
type fileProfile struct {
	Name            string              `yaml:"name"`
	DisplayName     string              `yaml:"display_name"`
	Base            string              `yaml:"base"`
	Unassigned      string              `yaml:"unassigned"`
	Aliases         map[string][]string `yaml:"aliases"`
	OpenStatuses    []string            `yaml:"open_statuses"`
	ClosedStatuses  []string            `yaml:"closed_statuses"`
	BlockedStatuses []string            `yaml:"blocked_statuses"`
	Signatures      []string            `yaml:"signatures"`
	Features        *Features           `yaml:"features"`
	Comments        *CommentRule        `yaml:"comments"`
	StatusColors    map[string]string   `yaml:"status_colors"`
	PriorityColors  map[string]string   `yaml:"priority_colors"`
	TypeColors      map[string]string   `yaml:"type_colors"`
	KeyPrefixTitles map[string]string   `yaml:"key_prefix_titles"`
}

// LoadFile reads a YAML profile definition and validates it.
func LoadFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	for _, w := range p.Validate().Warnings {
		log.Warn().Str("file", path).Str("field", w.Field).Msg(w.Message)
	}
	return p, nil
}

// Parse builds a profile from YAML bytes.
func Parse(data []byte) (Profile, error) {
	var fp fileProfile
	if err := yaml.Unmarshal(data, &fp); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}

	base := fp.Base
	if base == "" {
		base = NameJira
	}
	p, err := Lookup(base)
	if err != nil {
		return Profile{}, fmt.Errorf("base: %w", err)
	}

	p.Name = fp.Name
	if fp.DisplayName != "" {
		p.DisplayName = fp.DisplayName
	} else if fp.Name != "" {
		p.DisplayName = fp.Name
	}
	if fp.Unassigned != "" {
		p.Unassigned = fp.Unassigned
	}

	if len(fp.Aliases) > 0 {
		merged := maps.Clone(p.Aliases)
		for field, aliases := range fp.Aliases {
			merged[field] = lowerAll(aliases)
		}
		p.Aliases = merged
	}
	if fp.OpenStatuses != nil {
		p.OpenStatuses = NewSet(fp.OpenStatuses...)
	}
	if fp.ClosedStatuses != nil {
		p.ClosedStatuses = NewSet(fp.ClosedStatuses...)
	}
	if fp.BlockedStatuses != nil {
		p.BlockedStatuses = NewSet(fp.BlockedStatuses...)
	}
	if fp.Signatures != nil {
		p.Signatures = NewSet(fp.Signatures...)
	}
	if fp.Features != nil {
		p.Features = *fp.Features
	}
	if fp.Comments != nil {
		p.Comments = CommentRule{
			Contains: lowerAll(fp.Comments.Contains),
			Exact:    lowerAll(fp.Comments.Exact),
			Style:    fp.Comments.Style,
		}
	}
	if fp.StatusColors != nil {
		p.StatusColors = fp.StatusColors
	}
	if fp.PriorityColors != nil {
		p.PriorityColors = fp.PriorityColors
	}
	if fp.TypeColors != nil {
		p.TypeColors = fp.TypeColors
	}
	if fp.KeyPrefixTitles != nil {
		p.KeyPrefixTitles = fp.KeyPrefixTitles
	}

	res := p.Validate()
	if !res.IsValid() {
		return Profile{}, res
	}
	return p, nil
}

func lowerAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}

// ValidationError is a single problem found in a profile definition.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds all validation errors and warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) AddError(field, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

func (r *ValidationResult) AddWarning(field, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Message: message})
}

func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) Error() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return "invalid profile: " + strings.Join(msgs, "; ")
}

// Validate checks a profile for mistakes that would silently break matching.
func (p Profile) Validate() *ValidationResult {
	result := &ValidationResult{}

	if strings.TrimSpace(p.Name) == "" {
		result.AddError("name", "profile name is required")
	}
	if p.Unassigned == "" {
		result.AddWarning("unassigned", "no unassigned label, blank assignees stay blank")
	}

	for _, field := range p.CanonicalFields() {
		for i, alias := range p.Aliases[field] {
			if alias != strings.ToLower(strings.TrimSpace(alias)) {
				result.AddError(fmt.Sprintf("aliases.%s[%d]", field, i), fmt.Sprintf("alias %q must be lowercase and trimmed", alias))
			}
		}
	}
	if len(p.Aliases[FieldStatus]) == 0 {
		result.AddWarning("aliases.status", "no status aliases, every ticket will count as open")
	}

	for s := range p.OpenStatuses {
		if p.ClosedStatuses.Has(s) {
			result.AddWarning("open_statuses", fmt.Sprintf("status %q is also closed; closed wins", s))
		}
	}

	for i, c := range p.Comments.Contains {
		if c != strings.ToLower(strings.TrimSpace(c)) {
			result.AddError(fmt.Sprintf("comments.contains[%d]", i), fmt.Sprintf("pattern %q must be lowercase and trimmed", c))
		}
	}
	for i, c := range p.Comments.Exact {
		if c != strings.ToLower(strings.TrimSpace(c)) {
			result.AddError(fmt.Sprintf("comments.exact[%d]", i), fmt.Sprintf("header %q must be lowercase and trimmed", c))
		}
	}

	switch p.Comments.Style {
	case NoteSemicolon, NoteTimestamped:
	case "":
		if len(p.Comments.Contains) > 0 || len(p.Comments.Exact) > 0 {
			result.AddError("comments.style", "comment columns need a style (semicolon|timestamped)")
		}
	default:
		result.AddError("comments.style", fmt.Sprintf("unknown style %q (semicolon|timestamped)", p.Comments.Style))
	}

	return result
}
