// Package report assembles rollups, rankings and methodology metadata into a
// single Report that every output surface renders from.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/ranking"
	"github.com/gaii/gaii/pkg/rollup"
	"github.com/gaii/gaii/pkg/scoring"
)

// DefaultTopN is the ranking length used when Options.TopN is unset.
const DefaultTopN = 10

// DefaultTitle is the report title used when Options.Title is unset.
const DefaultTitle = "Global AI Inequality Index"

// Options controls report assembly.
type Options struct {
	Title string
	TopN  int
	Now   func() time.Time
}

// Report is the assembled output of one engine run. Methodology is taken from
// the scoring package so stated weights always match the computed scores.
type Report struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	GeneratedAt time.Time           `json:"generated_at"`
	Dataset     country.Meta        `json:"dataset"`
	Methodology scoring.Methodology `json:"methodology"`
	Global      rollup.GlobalRollup `json:"global"`
	Countries   []country.Record    `json:"countries"`
	Top         []country.Record    `json:"top"`
	Bottom      []country.Record    `json:"bottom"`
	Improving   []country.Record    `json:"improving"`
	Findings    []string            `json:"findings"`
}

// Summary is the compact form of a report used in listings.
type Summary struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	GeneratedAt   time.Time     `json:"generated_at"`
	DatasetName   string        `json:"dataset_name"`
	CountryCount  int           `json:"country_count"`
	WeightedScore float64       `json:"weighted_score"`
	Grade         scoring.Grade `json:"grade"`
	Gap           float64       `json:"gap"`
}

// Assemble builds a report over ds.
func Assemble(ds *country.Dataset, opts Options) *Report {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	g := rollup.Global(ds)
	r := &Report{
		ID:          uuid.New().String(),
		Title:       opts.Title,
		GeneratedAt: now().UTC(),
		Dataset:     ds.Meta(),
		Methodology: scoring.MethodologyInfo(),
		Global:      g,
		Countries:   ds.Records(),
		Top:         ranking.Top(ds, opts.TopN),
		Bottom:      ranking.Bottom(ds, opts.TopN),
		Improving:   ranking.FastestImproving(ds, opts.TopN),
	}
	r.Findings = findings(r)

	zap.L().Debug("report assembled",
		zap.String("id", r.ID),
		zap.String("dataset", r.Dataset.Name),
		zap.Int("countries", g.CountryCount),
		zap.Float64("global_score", g.WeightedScore),
		zap.Float64("gap", g.Split.Gap),
	)
	return r
}

// Summary returns the listing form of r.
func (r *Report) Summary() Summary {
	return Summary{
		ID:            r.ID,
		Title:         r.Title,
		GeneratedAt:   r.GeneratedAt,
		DatasetName:   r.Dataset.Name,
		CountryCount:  r.Global.CountryCount,
		WeightedScore: r.Global.WeightedScore,
		Grade:         r.Global.Grade,
		Gap:           r.Global.Split.Gap,
	}
}

// findings derives the headline sentences shown above the tables.
func findings(r *Report) []string {
	g := r.Global
	out := []string{
		fmt.Sprintf("Global population-weighted score is %.1f (%s) across %d countries.",
			g.WeightedScore, g.Grade, g.CountryCount),
		fmt.Sprintf("The north/south adoption gap is %.1f points (north %.1f, south %.1f).",
			g.Split.Gap, g.Split.North.WeightedProxy, g.Split.South.WeightedProxy),
	}

	var best, worst *rollup.RegionRollup
	for i := range g.Regions {
		ru := &g.Regions[i]
		if ru.CountryCount == 0 {
			continue
		}
		if best == nil || ru.WeightedScore < best.WeightedScore {
			best = ru
		}
		if worst == nil || ru.WeightedScore > worst.WeightedScore {
			worst = ru
		}
	}
	if best != nil && worst != nil && best != worst {
		out = append(out, fmt.Sprintf("%s is the most equal region (%.1f); %s the least (%.1f).",
			best.Name, best.WeightedScore, worst.Name, worst.WeightedScore))
	}

	if len(r.Improving) > 0 {
		lead := r.Improving[0]
		out = append(out, fmt.Sprintf("%s is improving fastest (trend %+.1f).", lead.Name, lead.Trend.Magnitude))
	}
	return out
}
