package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytstats",
	Short: "Load YouTube most-popular video statistics into a warehouse",
	Long: `ytstats fetches one page of the YouTube most-popular chart, enriches each
video with its channel's statistics, validates the resulting table and loads it
into BigQuery, PostgreSQL or a CSV file.

Configuration is read from .env and the environment (YOUTUBE_API_KEY, WAREHOUSE, ...).

Examples:
  ytstats run
  ytstats run --max-results 10 --dry-run
  ytstats categories`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
