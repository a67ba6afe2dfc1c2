package country_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/indicator"
	"github.com/gaii/gaii/pkg/scoring"
)

func indicators(a, f, l, s float64) scoring.Input {
	return scoring.Indicators{Set: indicator.Set{Access: a, Affordability: f, Language: l, Skill: s}}
}

func sampleInputs() []country.Input {
	return []country.Input{
		{Code: "us", AltCode: "usa", Name: "United States", Region: country.NorthAmerica, Population: 335,
			Scoring: indicators(80, 70, 90, 60), Trend: country.Trend{Direction: country.DirectionUp, Magnitude: 1.2}},
		{Code: "NG", AltCode: "NGA", Name: "Nigeria", Region: country.SubSaharanAfrica, Population: 220,
			Scoring: scoring.LegacyAdoption{Rate: 8, PaidUserIndex: 10}},
		{Code: "DE", AltCode: "DEU", Name: "Germany", Region: country.Europe, Population: 84,
			Scoring: indicators(75, 65, 70, 55), Source: "national survey"},
	}
}

func TestNewDataset(t *testing.T) {
	ds, err := country.NewDataset(country.Meta{Name: "test", Source: "GAII", LastUpdated: "2025-01"}, sampleInputs())
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	us := ds.At(0)
	assert.Equal(t, "US", us.Code, "codes are normalized to upper case")
	assert.Equal(t, "USA", us.AltCode)
	assert.Equal(t, scoring.BasisIndicators, us.Basis)
	assert.Equal(t, scoring.GradeFromScore(us.Score), us.Grade)
	assert.Equal(t, "GAII", us.Source, "record inherits dataset source")
	assert.Equal(t, "2025-01", us.LastUpdated)

	ng := ds.At(1)
	assert.Equal(t, scoring.BasisAdoption, ng.Basis)
	assert.Equal(t, 8.0, ng.AdoptionRate)
	assert.Equal(t, 10.0, ng.PaidUserIndex)
	assert.Equal(t, country.DirectionStable, ng.Trend.Direction, "empty direction defaults to stable")

	assert.Equal(t, "national survey", ds.At(2).Source)
}

func TestDatasetLookup(t *testing.T) {
	ds := country.MustNewDataset(country.Meta{Name: "test"}, sampleInputs())

	rec, ok := ds.Lookup("de")
	require.True(t, ok)
	assert.Equal(t, "Germany", rec.Name)

	_, ok = ds.Lookup("DEU")
	assert.False(t, ok, "primary lookup ignores secondary codes")

	rec, ok = ds.LookupAlt("NGA")
	require.True(t, ok)
	assert.Equal(t, "NG", rec.Code)

	rec, ok = ds.Find(" usa ")
	require.True(t, ok)
	assert.Equal(t, "US", rec.Code)

	_, ok = ds.Find("ZZ")
	assert.False(t, ok)
}

func TestDatasetRecordsAreCopies(t *testing.T) {
	ds := country.MustNewDataset(country.Meta{Name: "test"}, sampleInputs())

	recs := ds.Records()
	recs[0].Score = -1
	recs[0].Name = "changed"

	assert.NotEqual(t, -1.0, ds.At(0).Score)
	rec, _ := ds.Lookup("US")
	assert.Equal(t, "United States", rec.Name)
}

func TestDatasetBreakdownsAreDeepCopies(t *testing.T) {
	set := indicator.Set{
		Access: 10, Affordability: 10, Language: 10, Skill: 10,
		Details: &indicator.Details{Access: indicator.Breakdown{"broadband_pct": 10}},
	}
	ds := country.MustNewDataset(country.Meta{Name: "test"}, []country.Input{
		{Code: "A", Region: country.Europe, Population: 1, Scoring: scoring.Indicators{Set: set}},
	})

	// the caller's input no longer aliases the dataset
	set.Details.Access["broadband_pct"] = 500

	ds.Records()[0].Indicators.Details.Access["broadband_pct"] = 999
	ds.At(0).Indicators.Details.Access["broadband_pct"] = 998
	got, ok := ds.Lookup("A")
	require.True(t, ok)
	got.Indicators.Details.Access["broadband_pct"] = 997
	ds.InRegion(country.Europe)[0].Indicators.Details.Access["broadband_pct"] = 996

	again, _ := ds.Lookup("a")
	assert.Equal(t, 10.0, again.Indicators.Details.Access["broadband_pct"])
}

func TestNewRecordZeroesNonFiniteValues(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		rec := country.NewRecord(country.Input{
			Code: "X", Region: country.Europe, Population: 1,
			Scoring: scoring.LegacyAdoption{Rate: v, PaidUserIndex: v},
			Trend:   country.Trend{Direction: country.DirectionUp, Magnitude: v},
		})
		assert.Equal(t, 0.0, rec.Trend.Magnitude)
		assert.Equal(t, 0.0, rec.AdoptionRate)
		assert.Equal(t, 0.0, rec.PaidUserIndex)

		detailed := country.NewRecord(country.Input{
			Code: "Y", Region: country.Europe, Population: 1,
			Scoring: scoring.Indicators{Set: indicator.Set{
				Details: &indicator.Details{Skill: indicator.Breakdown{"courses": v}},
			}},
		})
		assert.Equal(t, 0.0, detailed.Indicators.Details.Skill["courses"])
	}
}

func TestDatasetInRegion(t *testing.T) {
	ds := country.MustNewDataset(country.Meta{Name: "test"}, sampleInputs())

	eur := ds.InRegion(country.Europe)
	require.Len(t, eur, 1)
	assert.Equal(t, "DE", eur[0].Code)
	assert.Empty(t, ds.InRegion(country.Oceania))
}

func TestNewDatasetRejectsDefects(t *testing.T) {
	base := sampleInputs()

	tests := []struct {
		name   string
		mutate func([]country.Input) []country.Input
		want   error
	}{
		{"duplicate primary code", func(in []country.Input) []country.Input {
			in[2].Code = "US"
			return in
		}, country.ErrDuplicateCode},
		{"duplicate secondary code", func(in []country.Input) []country.Input {
			in[2].AltCode = "NGA"
			return in
		}, country.ErrDuplicateCode},
		{"secondary collides with primary", func(in []country.Input) []country.Input {
			in[2].AltCode = "NG"
			return in
		}, country.ErrDuplicateCode},
		{"unknown region", func(in []country.Input) []country.Input {
			in[1].Region = "ATL"
			return in
		}, country.ErrUnknownRegion},
		{"unknown direction", func(in []country.Input) []country.Input {
			in[0].Trend.Direction = "sideways"
			return in
		}, country.ErrUnknownDirection},
		{"missing code", func(in []country.Input) []country.Input {
			in[0].Code = "  "
			return in
		}, country.ErrMissingCode},
		{"missing scoring input", func(in []country.Input) []country.Input {
			in[0].Scoring = nil
			return in
		}, country.ErrMissingInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]country.Input, len(base))
			copy(in, base)
			_, err := country.NewDataset(country.Meta{Name: "bad"}, tt.mutate(in))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMustNewDatasetPanics(t *testing.T) {
	in := sampleInputs()
	in[1].Code = "US"
	assert.Panics(t, func() { country.MustNewDataset(country.Meta{Name: "bad"}, in) })
}

func TestNewRecordClampsPopulation(t *testing.T) {
	for _, p := range []float64{-5, math.NaN(), math.Inf(1)} {
		rec := country.NewRecord(country.Input{Code: "X", Region: country.Europe, Population: p, Scoring: indicators(0, 0, 0, 0)})
		assert.Equal(t, 0.0, rec.Population)
	}
}

func TestAdoptionProxyIsAccess(t *testing.T) {
	rec := country.NewRecord(country.Input{Code: "X", Region: country.Europe, Scoring: indicators(42, 10, 10, 10)})
	assert.Equal(t, 42.0, rec.AdoptionProxy())

	legacy := country.NewRecord(country.Input{Code: "Y", Region: country.Europe, Scoring: scoring.LegacyAdoption{Rate: scoring.MaxAdoption}})
	assert.InDelta(t, 100.0, legacy.AdoptionProxy(), 1e-9)
}

func TestRegions(t *testing.T) {
	regions := country.Regions()
	require.Len(t, regions, 10)

	seen := map[country.Region]bool{}
	for _, r := range regions {
		assert.True(t, r.Valid())
		assert.NotEqual(t, string(r), r.Name())
		assert.False(t, seen[r])
		seen[r] = true
	}
	assert.False(t, country.Region("XYZ").Valid())
	assert.Equal(t, "XYZ", country.Region("XYZ").Name())
}
