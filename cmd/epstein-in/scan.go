// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/epstein-in/internal/report"
	"github.com/pdiddy/epstein-in/internal/scan"
	"github.com/pdiddy/epstein-in/internal/search"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Search the Epstein files for each contact and write an HTML report",
	Long: `Scan loads contacts from a LinkedIn connections CSV and/or an X following.js
export, searches the Epstein files index for each full name as an exact phrase,
and writes a self-contained HTML report of contacts with mentions.

Searches run one at a time with a short pause between contacts. Rate-limit
responses are retried with exponential backoff. Press Ctrl+C to stop early;
a partial report is written from the contacts searched so far.`,
	Example: `  epstein-in scan --connections Connections.csv
  epstein-in scan --x-following following.js --x-bearer-token TOKEN
  epstein-in scan -c Connections.csv -o report.html --export report.yaml`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
		defer stop()
		return runScan(ctx, loadOptions(), stop, cmd.OutOrStdout())
	},
}

func init() {
	addScanFlags(scanCmd)
	rootCmd.AddCommand(scanCmd)
}

// addScanFlags registers the source flags plus the search and report flags.
func addScanFlags(cmd *cobra.Command) {
	addSourceFlags(cmd)
	cmd.Flags().StringP("output", "o", defaultOutput, "output HTML file path")
	cmd.Flags().String("export", "", "also write results as YAML to this path")
	cmd.Flags().Duration("delay", scan.DefaultInitialDelay, "initial pause between searches and rate-limit backoff")
	cmd.Flags().String("search-endpoint", search.DefaultEndpoint, "Epstein files search API endpoint")
	cmd.Flags().String("index", search.DefaultIndex, "search index name")
	cmd.Flags().String("documents-base-url", report.DefaultDocumentsBaseURL, "base URL for PDF links in the report")
	cmd.Flags().Int("visible-hits", report.DefaultVisibleHits, "hits shown per contact before the show-more toggle")
}
