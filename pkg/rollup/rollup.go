// Package rollup aggregates country records into population-weighted region
// and global summaries. Every function is pure over an immutable dataset and
// safe to call concurrently.
package rollup

import (
	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/scoring"
)

// WorstScore is reported for a region or group with no population.
const WorstScore = 100.0

// Aggregate trend thresholds on the population-weighted mean magnitude.
// The bands are asymmetric on purpose and must not be made symmetric.
const (
	ImprovingThreshold = 0.5  // mean above this: scores trending down
	WorseningThreshold = -0.2 // mean below this: scores trending up
)

// GradeCounts is the number of countries per grade band. Every grade is
// always present, possibly with a zero count.
type GradeCounts map[scoring.Grade]int

// RegionRollup summarizes one region.
type RegionRollup struct {
	Region        country.Region `json:"region"`
	Name          string         `json:"name"`
	CountryCount  int            `json:"country_count"`
	Population    float64        `json:"population"`
	MeanScore     float64        `json:"mean_score"`
	WeightedScore float64        `json:"weighted_score"`
	WeightedProxy float64        `json:"weighted_adoption_proxy"`
	Grade         scoring.Grade  `json:"grade"`
	Grades        GradeCounts    `json:"grades"`
	Trend         country.Trend  `json:"trend"`
}

// GlobalRollup summarizes the whole dataset.
type GlobalRollup struct {
	CountryCount  int              `json:"country_count"`
	Population    float64          `json:"population"`
	WeightedScore float64          `json:"weighted_score"`
	WeightedProxy float64          `json:"weighted_adoption_proxy"`
	Grade         scoring.Grade    `json:"grade"`
	Split         Split            `json:"split"`
	Regions       []RegionRollup   `json:"regions"`
	Dataset       *country.Dataset `json:"-"`
}

// ByRegion returns one rollup per region in country.Regions order, including
// regions with no member countries.
func ByRegion(ds *country.Dataset) []RegionRollup {
	members := make(map[country.Region][]country.Record)
	for _, rec := range ds.Records() {
		members[rec.Region] = append(members[rec.Region], rec)
	}

	regions := country.Regions()
	out := make([]RegionRollup, 0, len(regions))
	for _, r := range regions {
		out = append(out, Region(r, members[r]))
	}
	return out
}

// Region aggregates the given records under region r.
func Region(r country.Region, recs []country.Record) RegionRollup {
	ru := RegionRollup{
		Region:        r,
		Name:          r.Name(),
		CountryCount:  len(recs),
		MeanScore:     WorstScore,
		WeightedScore: WorstScore,
		Grades:        countGrades(recs),
	}

	if len(recs) > 0 {
		var sum float64
		for _, rec := range recs {
			sum += rec.Score
		}
		ru.MeanScore = scoring.Round1(sum / float64(len(recs)))
	}

	w := weigh(recs)
	ru.Population = scoring.Round1(w.population)
	ru.WeightedScore = scoring.Round1(w.score())
	ru.WeightedProxy = scoring.Round1(w.proxy())
	ru.Grade = scoring.GradeFromScore(ru.WeightedScore)

	mag := w.trend()
	ru.Trend = country.Trend{Direction: ClassifyTrend(mag), Magnitude: scoring.Round1(mag)}
	return ru
}

// Global aggregates the full dataset, including the north/south split and
// every region rollup.
func Global(ds *country.Dataset) GlobalRollup {
	recs := ds.Records()
	w := weigh(recs)
	score := scoring.Round1(w.score())
	return GlobalRollup{
		CountryCount:  len(recs),
		Population:    scoring.Round1(w.population),
		WeightedScore: score,
		WeightedProxy: scoring.Round1(w.proxy()),
		Grade:         scoring.GradeFromScore(score),
		Split:         SplitNorthSouth(ds),
		Regions:       ByRegion(ds),
		Dataset:       ds,
	}
}

// ClassifyTrend maps a population-weighted mean magnitude to a direction.
func ClassifyTrend(mean float64) country.Direction {
	switch {
	case mean > ImprovingThreshold:
		return country.DirectionDown
	case mean < WorseningThreshold:
		return country.DirectionUp
	default:
		return country.DirectionStable
	}
}

func countGrades(recs []country.Record) GradeCounts {
	counts := make(GradeCounts, len(scoring.Grades()))
	for _, g := range scoring.Grades() {
		counts[g] = 0
	}
	for _, rec := range recs {
		counts[rec.Grade]++
	}
	return counts
}

// weighted accumulates population-weighted sums. Its accessors apply the
// zero-population fallbacks.
type weighted struct {
	population float64
	scoreSum   float64
	proxySum   float64
	trendSum   float64
}

func weigh(recs []country.Record) weighted {
	var w weighted
	for _, rec := range recs {
		p := rec.Population
		w.population += p
		w.scoreSum += rec.Score * p
		w.proxySum += rec.AdoptionProxy() * p
		w.trendSum += rec.Trend.Magnitude * p
	}
	return w
}

func (w weighted) score() float64 {
	if w.population <= 0 {
		return WorstScore
	}
	return w.scoreSum / w.population
}

func (w weighted) proxy() float64 {
	if w.population <= 0 {
		return 0
	}
	return w.proxySum / w.population
}

func (w weighted) trend() float64 {
	if w.population <= 0 {
		return 0
	}
	return w.trendSum / w.population
}
