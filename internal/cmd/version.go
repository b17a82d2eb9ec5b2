package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags.
var version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the coindash version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("coindash " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
