package main

import (
	"github.com/spf13/cobra"

	"github.com/gaii/gaii/pkg/ranking"
	"github.com/gaii/gaii/pkg/surface"
)

func newRankCmd(a *app) *cobra.Command {
	var (
		by        string
		n         int
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank countries: most equal, least equal or fastest improving",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(outputFmt); err != nil {
				return err
			}
			order, err := ranking.ParseOrder(by)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("n") {
				n = a.cfg.Report.TopN
			}
			ds, err := a.dataset(cmd.Context())
			if err != nil {
				return err
			}

			recs, err := ranking.By(ds, order, n)
			if err != nil {
				return err
			}
			if outputFmt == "json" {
				return writeJSON(cmd.OutOrStdout(), recs)
			}
			surface.RenderCountries(cmd.OutOrStdout(), recs)
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", string(ranking.OrderTop), "Ranking: top, bottom or improving")
	cmd.Flags().IntVarP(&n, "n", "n", 10, "Number of countries (default: report.top_n)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}
