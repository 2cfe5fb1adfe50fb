// Copyright © 2025 The declnav authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/declnav/declnav/docs"
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Show the fixture file format reference",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Print(docs.FixtureFormat)
	},
}

func init() {
	rootCmd.AddCommand(docCmd)
}
