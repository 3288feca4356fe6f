package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"ticketlens/internal/analysis"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect <export.csv>",
	Short: "Show which tracker produced an export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := analysis.Detect(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "profile: %s (%d headers)\n\n", d.Profile, d.Headers)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PROFILE\tSCORE\tCUSTOM\tHITS")
		for _, s := range d.Scores {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", s.Profile, s.Score, s.CustomFields, strings.Join(s.Hits, ", "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
