package scoring_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaii/gaii/pkg/scoring"
)

func TestMethodologyMatchesConstants(t *testing.T) {
	m := scoring.MethodologyInfo()
	w := scoring.Defaults()

	require.Len(t, m.Weights, 4)
	var sum float64
	for _, e := range m.Weights {
		assert.Equal(t, w.Of(e.Indicator), e.Weight, e.Indicator)
		assert.NotEmpty(t, e.Description, e.Indicator)
		sum += e.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	assert.Equal(t, scoring.MaxAdoption, m.MaxAdoption)
	assert.True(t, strings.Contains(m.Formula, "0.40*access"), m.Formula)
	assert.True(t, strings.Contains(m.Legacy, "66.7"), m.Legacy)
	assert.NotEmpty(t, m.Citations)
}

func TestMethodologyBandsAreContiguous(t *testing.T) {
	bands := scoring.MethodologyInfo().Bands
	require.Len(t, bands, 4)

	assert.Equal(t, 0.0, bands[0].Min)
	assert.Equal(t, 100.0, bands[len(bands)-1].Max)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, bands[i-1].Max, bands[i].Min)
	}
	for _, b := range bands {
		assert.Equal(t, b.Grade, scoring.GradeFromScore(b.Min))
	}
}

func TestMethodologyCitationsAreCopied(t *testing.T) {
	m := scoring.MethodologyInfo()
	m.Citations[0].Source = "changed"
	assert.NotEqual(t, "changed", scoring.Citations[0].Source)
}
