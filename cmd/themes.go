/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// themes.go adds "hgrep themes" as a subcommand alongside the root
// command's --list-themes flag.
package cmd

import (
	"github.com/spf13/cobra"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available syntax highlighting theme names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListThemes(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
