package cmd

import (
	"github.com/spf13/cobra"

	"coindash/internal/tui/views"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the live dashboard",
	Long: `Open the full-screen dashboard TUI.

The price table and trend chart refresh on independent schedules taken
from the config file; edits to the poll intervals apply without a
restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return views.Run(cfgFile, verbose, noColor)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
