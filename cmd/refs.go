// Copyright © 2025 The declnav authors

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/declnav/declnav/fixture"
	"github.com/declnav/declnav/resolve"
	"github.com/declnav/declnav/telemetry"
)

var refsJSON bool

// refRecord is the JSON shape of one reference record.
type refRecord struct {
	Loc       string   `json:"loc"`
	Name      string   `json:"name"`
	Qualifier string   `json:"qualifier,omitempty"`
	Targets   []string `json:"targets"`
}

var refsCmd = &cobra.Command{
	Use:   "refs FILE",
	Short: "Dump every explicit reference record in a fixture",
	Long: `Enumerate every explicit, user-written name in the fixture's tree and
print one record per name, in source order. Each record shows the name's
position, the qualifying path written before it, and the declarations it
resolves to. Unresolved names print an empty target set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := fixture.ParseFile(args[0])
		if err != nil {
			return err
		}

		rctx := resolve.NewContext(tree)
		ann := telemetry.NewOpenTelemetryAnnotator(cmd.Context())
		var refs []resolve.Reference
		ann.CollectReferences(rctx, tree.Root, func(r resolve.Reference) {
			refs = append(refs, r)
		})
		sort.SliceStable(refs, func(i, j int) bool {
			return refs[i].NameLoc.Before(refs[j].NameLoc)
		})

		if refsJSON {
			records := make([]refRecord, 0, len(refs))
			for _, r := range refs {
				rec := refRecord{
					Loc:       r.NameLoc.String(),
					Name:      r.Name,
					Qualifier: r.Qualifier,
					Targets:   []string{},
				}
				for _, d := range r.Targets {
					rec.Targets = append(rec.Targets, d.DisplayName())
				}
				records = append(records, rec)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		for _, r := range refs {
			fmt.Printf("%s\t%s\t%s\n", r.NameLoc, r.Name, r)
		}
		return nil
	},
}

func init() {
	refsCmd.Flags().BoolVar(&refsJSON, "json", false, "emit records as JSON")
	rootCmd.AddCommand(refsCmd)
}
