// Package report renders a Dashboard as a single self-contained HTML document.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"ticketlens/internal/profile"
	"ticketlens/internal/scalar"
	"ticketlens/internal/stats"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"
)

//go:embed assets/dashboard.html.tmpl
var pageTemplate string

//go:embed assets/dashboard.css
var pageCSS string

//go:embed assets/dashboard.js
var pageJS string

var page = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"days": scalar.FormatDays,
}).Parse(pageTemplate))

// Input is everything the document shows.
type Input struct {
	Title      string
	SourceFile string
	Profile    profile.Profile
	Dashboard  stats.Dashboard
}

// Options tune the output.
type Options struct {
	// Minify runs the inline stylesheet and script through esbuild.
	Minify bool
}

type pageData struct {
	Title       string
	SourceFile  string
	GeneratedAt string
	Profile     profile.Profile
	Features    profile.Features
	Dashboard   stats.Dashboard
	CSS         template.CSS
	JS          template.JS
	Data        template.JS
}

type payload struct {
	Dashboard stats.Dashboard `json:"dashboard"`
	Colors    colors          `json:"colors"`
}

type colors struct {
	Status   map[string]string `json:"status"`
	Priority map[string]string `json:"priority"`
	Type     map[string]string `json:"type"`
}

// Render writes the HTML document for in to w.
func Render(w io.Writer, in Input, opts Options) error {
	css, js := pageCSS, pageJS
	if opts.Minify {
		var err error
		if css, err = minify(css, api.LoaderCSS); err != nil {
			return err
		}
		if js, err = minify(js, api.LoaderJS); err != nil {
			return err
		}
	}

	data, err := Embed(payload{
		Dashboard: in.Dashboard,
		Colors: colors{
			Status:   lowerKeys(in.Profile.StatusColors),
			Priority: lowerKeys(in.Profile.PriorityColors),
			Type:     lowerKeys(in.Profile.TypeColors),
		},
	})
	if err != nil {
		return err
	}

	pd := pageData{
		Title:       in.Title,
		SourceFile:  in.SourceFile,
		GeneratedAt: in.Dashboard.GeneratedAt.Format(time.DateTime),
		Profile:     in.Profile,
		Features:    in.Profile.Features,
		Dashboard:   in.Dashboard,
		CSS:         template.CSS(css),
		JS:          template.JS(js),
		Data:        data,
	}
	if err := page.Execute(w, pd); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	log.Debug().
		Str("title", in.Title).
		Int("tickets", in.Dashboard.TotalTickets).
		Bool("minified", opts.Minify).
		Msg("Rendered HTML report")
	return nil
}

func minify(code string, loader api.Loader) (string, error) {
	res := api.Transform(code, api.TransformOptions{
		Loader:            loader,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
	})
	if len(res.Errors) > 0 {
		msgs := make([]string, 0, len(res.Errors))
		for _, m := range res.Errors {
			msgs = append(msgs, m.Text)
		}
		return "", fmt.Errorf("failed to minify inline asset: %s", strings.Join(msgs, "; "))
	}
	return string(res.Code), nil
}

func lowerKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}
