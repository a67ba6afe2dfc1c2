// Package country defines the per-country records of the GAII dataset and the
// immutable Dataset that indexes them. Every record is scored exactly once,
// at construction, through the scoring package.
package country

import (
	"math"

	"github.com/gaii/gaii/pkg/indicator"
	"github.com/gaii/gaii/pkg/scoring"
)

// Record is one country's scored entry. Records are immutable once built;
// Score and Grade always agree under scoring.GradeFromScore.
type Record struct {
	Code          string        `json:"code"`               // primary key, e.g. "US"
	AltCode       string        `json:"alt_code,omitempty"` // secondary lookup key, e.g. "USA"
	Name          string        `json:"name"`
	Region        Region        `json:"region"`
	Population    float64       `json:"population"` // millions
	Indicators    indicator.Set `json:"indicators"`
	Basis         scoring.Basis `json:"basis"`
	AdoptionRate  float64       `json:"adoption_rate,omitempty"`
	PaidUserIndex float64       `json:"paid_user_index,omitempty"`
	Score         float64       `json:"score"`
	Grade         scoring.Grade `json:"grade"`
	Trend         Trend         `json:"trend"`
	Source        string        `json:"source,omitempty"`
	LastUpdated   string        `json:"last_updated,omitempty"`
}

// AdoptionProxy is the access sub-indicator of the canonical indicator set.
// On the legacy path it is the adoption rate scaled against scoring.MaxAdoption.
func (r Record) AdoptionProxy() float64 {
	return r.Indicators.Access
}

// Direction is the year-over-year movement of a country or region.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// Valid reports whether d is one of the three known directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionStable:
		return true
	default:
		return false
	}
}

// Trend is a direction with a signed magnitude.
type Trend struct {
	Direction Direction `json:"direction" yaml:"direction"`
	Magnitude float64   `json:"magnitude" yaml:"magnitude"`
}

// Input is everything needed to build a Record.
type Input struct {
	Code        string
	AltCode     string
	Name        string
	Region      Region
	Population  float64
	Scoring     scoring.Input
	Trend       Trend
	Source      string
	LastUpdated string
}

// NewRecord resolves the scoring input and returns the finished record.
// Out-of-range population is clamped to zero; an empty trend direction
// becomes stable.
func NewRecord(in Input) Record {
	res := in.Scoring.Resolve()

	rec := Record{
		Code:        normalizeCode(in.Code),
		AltCode:     normalizeCode(in.AltCode),
		Name:        in.Name,
		Region:      in.Region,
		Population:  clampPopulation(in.Population),
		Indicators:  res.Indicators.Clone(),
		Basis:       res.Basis,
		Score:       res.Score,
		Grade:       res.Grade,
		Trend:       in.Trend,
		Source:      in.Source,
		LastUpdated: in.LastUpdated,
	}
	if rec.Trend.Direction == "" {
		rec.Trend.Direction = DirectionStable
	}
	rec.Trend.Magnitude = finite(rec.Trend.Magnitude)
	for _, b := range rec.Indicators.Details.Breakdowns() {
		for k, v := range b {
			b[k] = finite(v)
		}
	}
	if legacy, ok := in.Scoring.(scoring.LegacyAdoption); ok {
		rec.AdoptionRate = finite(legacy.Rate)
		rec.PaidUserIndex = finite(legacy.PaidUserIndex)
	}
	return rec
}

// clone returns a copy of r that shares no maps with the dataset.
func (r Record) clone() Record {
	r.Indicators = r.Indicators.Clone()
	return r
}

// finite maps NaN and ±Inf to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clampPopulation(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}
