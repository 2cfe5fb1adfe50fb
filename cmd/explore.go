// Copyright © 2025 The declnav authors

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/declnav/declnav/explore"
)

var exploreCmd = &cobra.Command{
	Use:   "explore FILE",
	Short: "Open an interactive shell on a fixture",
	Long: `Load the fixture and start an interactive shell for inspecting it.

Shell commands:
  decls              list declarations in the fixture
  refs               dump reference records in source order
  resolve LINE:COL   show the target set for the name at a position
  reload             re-read the fixture from disk
  quit               exit`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return explore.Run(args[0])
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
