// Copyright © 2025 The declnav authors

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/declnav/declnav/fixture"
	"github.com/declnav/declnav/resolve"
	"github.com/declnav/declnav/telemetry"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve FILE LINE:COL",
	Short: "Show the target set for the name at a position",
	Long: `Resolve the name written at LINE:COL in the fixture's source and print
every declaration it refers to, with the relation tags describing how
each one was reached (alias, underlying, instantiation, pattern).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := fixture.ParseFile(args[0])
		if err != nil {
			return err
		}
		line, col, err := parsePos(args[1])
		if err != nil {
			return err
		}

		node := tree.NodeAt(line, col)
		if node == nil {
			return fmt.Errorf("%s: no name at %d:%d", args[0], line, col)
		}

		rctx := resolve.NewContext(tree)
		ann := telemetry.NewOpenTelemetryAnnotator(cmd.Context())
		ts := ann.Targets(rctx, node)

		fmt.Printf("%s %q resolves to:\n", node.Kind, node.Name)
		if ts.Empty() {
			fmt.Println("  (nothing)")
			return nil
		}
		for _, tgt := range ts.Targets() {
			if tgt.Relations.Empty() {
				fmt.Printf("  %s\n", tgt.Decl.DisplayName())
			} else {
				fmt.Printf("  %s  %v\n", tgt.Decl.DisplayName(), tgt.Relations)
			}
		}
		return nil
	},
}

func parsePos(s string) (line, col int, err error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("want LINE:COL, got %q", s)
	}
	line, err1 := strconv.Atoi(l)
	col, err2 := strconv.Atoi(c)
	if err1 != nil || err2 != nil || line < 1 || col < 1 {
		return 0, 0, fmt.Errorf("want LINE:COL, got %q", s)
	}
	return line, col, nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
