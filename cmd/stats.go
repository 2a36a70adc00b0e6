/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// stats.go adds "hgrep stats": a summary of recent print runs from the
// audit log.
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpl-au/hgrep/internal/auditlog"
)

var statsCount int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent print runs from the audit log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := auditlog.Open(); err != nil {
			return fmt.Errorf("opening audit log %s: %w", auditlog.DBPath(), err)
		}
		defer auditlog.Close()

		entries, err := auditlog.Recent(statsCount)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
			return nil
		}

		w := cmd.OutOrStdout()
		for _, e := range entries {
			status := "ok"
			if !e.Success {
				status = "failed: " + e.Error
			}
			start := time.Unix(e.Start, 0).Format(time.RFC3339)
			dur := time.Duration(e.End-e.Start) * time.Second
			fmt.Fprintf(w, "%s  %-7s  %d files, %d chunks, %d matches  (%s)  %s\n",
				start, e.Printer, e.Files, e.Chunks, e.Matches, dur, status)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVarP(&statsCount, "count", "n", 20, "How many recent runs to show")
	rootCmd.AddCommand(statsCmd)
}
