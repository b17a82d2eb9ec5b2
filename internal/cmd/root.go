package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "coindash",
	Short: "Live cryptocurrency price dashboard for the terminal",
	Long: `Coindash - a live market dashboard in your terminal

Polls current prices for your configured markets and charts the trend
for the selected market and period, with independent refresh schedules
for each.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("coindash " + version)
		fmt.Println("Run 'coindash watch' to open the dashboard, or 'coindash --help' for commands")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose log output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
}
