package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaii/gaii/pkg/rollup"
	"github.com/gaii/gaii/pkg/surface"
)

func newRollupCmd(a *app) *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Show regional rollups and the global summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(outputFmt); err != nil {
				return err
			}
			ds, err := a.dataset(cmd.Context())
			if err != nil {
				return err
			}

			g := rollup.Global(ds)
			w := cmd.OutOrStdout()
			if outputFmt == "json" {
				return writeJSON(w, g)
			}

			surface.RenderRegions(w, g.Regions)
			fmt.Fprintf(w, "\nGlobal: %d countries, weighted score %.1f (%s), adoption proxy %.1f\n",
				g.CountryCount, g.WeightedScore, g.Grade, g.WeightedProxy)
			fmt.Fprintf(w, "North %.1f vs south %.1f, gap %.1f\n",
				g.Split.North.WeightedScore, g.Split.South.WeightedScore, g.Split.Gap)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	return cmd
}
