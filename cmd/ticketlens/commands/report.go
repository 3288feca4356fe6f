package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ticketlens/internal/analysis"
	"ticketlens/internal/report"
	"ticketlens/internal/visuals"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Output formats accepted by --format.
const (
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatMarkdown = "md"
)

var reportOpts struct {
	output      string
	format      string
	staleDays   int
	title       string
	source      string
	profileFile string
	now         string
	open        bool
	minify      bool
}

var reportCmd = &cobra.Command{
	Use:   "report <export.csv>",
	Short: "Render a dashboard from a CSV export",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("stale-days") {
		reportOpts.staleDays = cfg.StaleDays
	}
	if !flags.Changed("source") {
		reportOpts.source = cfg.Source
	}
	if !flags.Changed("profile-file") {
		reportOpts.profileFile = cfg.ProfileFile
	}
	if !flags.Changed("minify") {
		reportOpts.minify = cfg.Minify
	}
	output := outputPath(cfg.Output, reportOpts.format)
	if flags.Changed("output") {
		output = reportOpts.output
	}

	now, err := analysis.ParseNow(reportOpts.now)
	if err != nil {
		return err
	}

	a, err := analysis.Run(analysis.Request{
		Path:        args[0],
		Source:      reportOpts.source,
		ProfileFile: reportOpts.profileFile,
		StaleDays:   reportOpts.staleDays,
		Now:         now,
		Title:       reportOpts.title,
	})
	if err != nil {
		return err
	}
	if len(a.Result.Tickets) == 0 {
		log.Warn().Str("path", args[0]).Msg("No tickets parsed from export; the report will be empty")
	}

	var buf bytes.Buffer
	if err := encode(&buf, a, filepath.Base(args[0]), reportOpts.format, reportOpts.minify); err != nil {
		return err
	}

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	log.Info().Str("output", output).Str("format", reportOpts.format).Int("tickets", a.Dashboard.TotalTickets).Msg("Report written")

	if reportOpts.open {
		if err := browser.OpenFile(output); err != nil {
			log.Warn().Err(err).Str("output", output).Msg("Could not open report in browser")
		}
	}
	return nil
}

// encode writes a in the requested format.
func encode(w io.Writer, a *analysis.Analysis, sourceFile, format string, minify bool) error {
	switch format {
	case FormatHTML:
		return report.Render(w, report.Input{
			Title:      a.Title,
			SourceFile: sourceFile,
			Profile:    a.Profile,
			Dashboard:  a.Dashboard,
		}, report.Options{Minify: minify})
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(a.Dashboard); err != nil {
			return fmt.Errorf("failed to encode dashboard: %w", err)
		}
		return nil
	case FormatMarkdown:
		_, err := io.WriteString(w, visuals.Markdown(a.Dashboard, a.Title, a.Profile))
		return err
	default:
		return fmt.Errorf("unknown format %q (want html, json or md)", format)
	}
}

// outputPath swaps the extension of the configured output for non-HTML formats.
func outputPath(configured, format string) string {
	if format == FormatHTML || configured == "-" {
		return configured
	}
	return strings.TrimSuffix(configured, filepath.Ext(configured)) + "." + format
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportOpts.output, "output", "o", "", "output file, or - for stdout (default from config, dashboard.html)")
	f.StringVar(&reportOpts.format, "format", FormatHTML, "output format: html, json or md")
	f.IntVar(&reportOpts.staleDays, "stale-days", 14, "days without activity before an open ticket is stale")
	f.StringVar(&reportOpts.title, "title", "", "report title (derived from ticket keys when empty)")
	f.StringVar(&reportOpts.source, "source", "auto", "export source: jira, servicenow or auto")
	f.StringVar(&reportOpts.profileFile, "profile-file", "", "YAML profile overriding the built-in source profiles")
	f.StringVar(&reportOpts.now, "now", "", "reference time for ageing, RFC 3339 or an export date")
	f.BoolVar(&reportOpts.open, "open", false, "open the written report in the browser")
	f.BoolVar(&reportOpts.minify, "minify", true, "minify the inline stylesheet and script")
	rootCmd.AddCommand(reportCmd)
}
