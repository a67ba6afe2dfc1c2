package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/scoring"
	"github.com/gaii/gaii/pkg/surface"
)

func newCountriesCmd(a *app) *cobra.Command {
	var (
		region    string
		grade     string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "countries [code]",
		Short: "List countries or look one up by code",
		Long: `Without arguments, lists every country with its score, grade and trend.
With a code, shows one country in detail. Codes match the primary or
secondary code case-insensitively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(outputFmt); err != nil {
				return err
			}
			ds, err := a.dataset(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				rec, ok := ds.Find(args[0])
				if !ok {
					return fmt.Errorf("country %q not found in %s", args[0], ds.Meta().Name)
				}
				if outputFmt == "json" {
					return writeJSON(w, rec)
				}
				surface.RenderCountry(w, rec)
				return nil
			}

			recs, err := filterCountries(ds, region, grade)
			if err != nil {
				return err
			}
			if outputFmt == "json" {
				return writeJSON(w, recs)
			}
			surface.RenderCountries(w, recs)
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "Only countries in this region code (e.g. EUR, SSA)")
	cmd.Flags().StringVar(&grade, "grade", "", "Only countries with this grade (Low, Moderate, High, Critical)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

func filterCountries(ds *country.Dataset, region, grade string) ([]country.Record, error) {
	recs := ds.Records()
	if region != "" {
		r := country.Region(strings.ToUpper(region))
		if !r.Valid() {
			return nil, fmt.Errorf("unknown region %q", region)
		}
		recs = ds.InRegion(r)
	}
	if grade == "" {
		return recs, nil
	}
	g, err := scoring.ParseGrade(grade)
	if err != nil {
		return nil, err
	}
	out := make([]country.Record, 0, len(recs))
	for _, rec := range recs {
		if rec.Grade == g {
			out = append(out, rec)
		}
	}
	return out, nil
}

func checkOutput(f string) error {
	if f != "text" && f != "json" {
		return fmt.Errorf("unknown output format %q (want text or json)", f)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
