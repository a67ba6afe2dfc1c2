package ranking_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaii/gaii/data"
	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/ranking"
	"github.com/gaii/gaii/pkg/scoring"
)

func input(code string, score float64, trend country.Trend) country.Input {
	v := 100 - score
	return country.Input{
		Code:       code,
		Region:     country.Europe,
		Population: 1,
		Scoring:    scoring.LegacyAdoption{Rate: v * scoring.MaxAdoption / 100},
		Trend:      trend,
	}
}

func small(t *testing.T) *country.Dataset {
	t.Helper()
	ds, err := country.NewDataset(country.Meta{Name: "t"}, []country.Input{
		input("A", 40, country.Trend{Direction: country.DirectionUp, Magnitude: 0}),
		input("B", 20, country.Trend{Direction: country.DirectionStable, Magnitude: 0.3}),
		input("C", 40, country.Trend{Direction: country.DirectionDown, Magnitude: -1}),
		input("D", 80, country.Trend{Direction: country.DirectionUp, Magnitude: 2}),
		input("E", 20, country.Trend{Direction: country.DirectionStable}),
	})
	require.NoError(t, err)
	return ds
}

func codes(recs []country.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Code
	}
	return out
}

func TestTopIsStableAscending(t *testing.T) {
	ds := small(t)
	assert.Equal(t, []string{"B", "E", "A", "C", "D"}, codes(ranking.Top(ds, 10)))
	assert.Equal(t, []string{"B", "E"}, codes(ranking.Top(ds, 2)))
}

func TestBottomReversesTop(t *testing.T) {
	ds := small(t)
	assert.Equal(t, []string{"D", "C", "A", "E", "B"}, codes(ranking.Bottom(ds, 5)))
	assert.Equal(t, []string{"D"}, codes(ranking.Bottom(ds, 1)))

	top := codes(ranking.Top(ds, ds.Len()))
	slices.Reverse(top)
	assert.Equal(t, top, codes(ranking.Bottom(ds, ds.Len())))
}

func TestTopAndBottomDisjointWhenAllTied(t *testing.T) {
	inputs := make([]country.Input, 10)
	for i := range inputs {
		inputs[i] = country.Input{
			Code:       fmt.Sprintf("C%d", i),
			Region:     country.Europe,
			Population: 1,
			Scoring:    scoring.LegacyAdoption{Rate: 30},
		}
	}
	ds, err := country.NewDataset(country.Meta{Name: "tied"}, inputs)
	require.NoError(t, err)

	assert.Equal(t, []string{"C0", "C1", "C2", "C3", "C4"}, codes(ranking.Top(ds, 5)))
	assert.Equal(t, []string{"C9", "C8", "C7", "C6", "C5"}, codes(ranking.Bottom(ds, 5)))
}

func TestFastestImprovingUnion(t *testing.T) {
	ds := small(t)
	// A qualifies by direction only, B by magnitude only.
	assert.Equal(t, []string{"D", "B", "A"}, codes(ranking.FastestImproving(ds, 10)))
}

func TestRankingBounds(t *testing.T) {
	ds := small(t)
	assert.Empty(t, ranking.Top(ds, 0))
	assert.Empty(t, ranking.Bottom(ds, -1))
	assert.NotNil(t, ranking.FastestImproving(ds, 0))
	assert.Len(t, ranking.Top(ds, ds.Len()+100), ds.Len())
}

func TestRankingDoesNotMutateDataset(t *testing.T) {
	ds := small(t)
	before := ds.Records()
	ranking.Top(ds, 3)
	ranking.Bottom(ds, 3)
	ranking.FastestImproving(ds, 3)
	assert.Equal(t, before, ds.Records())
}

func TestTopAndBottomDisjoint(t *testing.T) {
	ds, err := data.Default()
	require.NoError(t, err)
	require.GreaterOrEqual(t, ds.Len(), 10)

	top := ranking.Top(ds, 5)
	bottom := ranking.Bottom(ds, 5)
	seen := map[string]bool{}
	for _, r := range top {
		seen[r.Code] = true
	}
	for _, r := range bottom {
		assert.False(t, seen[r.Code], "%s in both top and bottom", r.Code)
	}
}

func TestParseOrderAndBy(t *testing.T) {
	ds := small(t)
	for _, o := range ranking.Orders() {
		parsed, err := ranking.ParseOrder(" " + string(o) + " ")
		require.NoError(t, err)
		recs, err := ranking.By(ds, parsed, 2)
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	}

	o, err := ranking.ParseOrder("TOP")
	require.NoError(t, err)
	assert.Equal(t, ranking.OrderTop, o)

	_, err = ranking.ParseOrder("middle")
	assert.Error(t, err)
	_, err = ranking.By(ds, "middle", 1)
	assert.Error(t, err)
}
