package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaii/gaii/data"
	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/report"
	"github.com/gaii/gaii/pkg/scoring"
)

func fixedNow() time.Time {
	return time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
}

func TestAssemble(t *testing.T) {
	ds, err := data.Default()
	require.NoError(t, err)

	r := report.Assemble(ds, report.Options{TopN: 5, Now: fixedNow})

	_, err = uuid.Parse(r.ID)
	assert.NoError(t, err)
	assert.Equal(t, report.DefaultTitle, r.Title)
	assert.Equal(t, fixedNow(), r.GeneratedAt)
	assert.Equal(t, ds.Meta(), r.Dataset)
	assert.Len(t, r.Countries, ds.Len())
	assert.Len(t, r.Top, 5)
	assert.Len(t, r.Bottom, 5)
	assert.LessOrEqual(t, len(r.Improving), 5)
	assert.Len(t, r.Global.Regions, len(country.Regions()))
	assert.NotEmpty(t, r.Findings)
}

func TestAssembleMethodologyMatchesScoring(t *testing.T) {
	ds, err := data.Default()
	require.NoError(t, err)

	r := report.Assemble(ds, report.Options{})
	assert.Equal(t, scoring.MethodologyInfo(), r.Methodology)
	assert.Len(t, r.Top, min(report.DefaultTopN, ds.Len()))
}

func TestAssembleUniqueIDs(t *testing.T) {
	ds := country.MustNewDataset(country.Meta{Name: "tiny"}, []country.Input{
		{Code: "A", Region: country.Europe, Population: 1, Scoring: scoring.LegacyAdoption{Rate: 10}},
	})
	a := report.Assemble(ds, report.Options{Title: "x"})
	b := report.Assemble(ds, report.Options{Title: "x"})
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "x", a.Title)
}

func TestSummary(t *testing.T) {
	ds, err := data.Default()
	require.NoError(t, err)

	r := report.Assemble(ds, report.Options{Now: fixedNow})
	s := r.Summary()
	assert.Equal(t, r.ID, s.ID)
	assert.Equal(t, ds.Meta().Name, s.DatasetName)
	assert.Equal(t, r.Global.WeightedScore, s.WeightedScore)
	assert.Equal(t, r.Global.Grade, s.Grade)
	assert.Equal(t, r.Global.Split.Gap, s.Gap)
	assert.Equal(t, ds.Len(), s.CountryCount)
}
