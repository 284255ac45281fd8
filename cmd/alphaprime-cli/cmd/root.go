package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "alphaprime-cli",
	Short: "AlphaPrime CLI tool",
	Long: `alphaprime-cli is a command-line interface for developing the AlphaPrime site.

Available commands:
  catalog       Print the course, blog and career catalog
  topics        Explore the event topics the site publishes
  new-module    Scaffold a new application module

Use "alphaprime-cli [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
