package commands

import (
	"ticketlens/internal/mcp"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP tool server on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcp.NewServer(cfg, Version).Start(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
