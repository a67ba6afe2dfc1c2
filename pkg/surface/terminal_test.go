package surface_test

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/indicator"
	"github.com/gaii/gaii/pkg/report"
	"github.com/gaii/gaii/pkg/scoring"
	"github.com/gaii/gaii/pkg/surface"
)

func sampleReport() *report.Report {
	ds := country.MustNewDataset(country.Meta{Name: "sample", Source: "survey", LastUpdated: "2025-06"}, []country.Input{
		{
			Code: "DE", AltCode: "DEU", Name: "Germany", Region: country.Europe, Population: 84.5,
			Scoring: scoring.Indicators{Set: indicator.Set{Access: 80, Affordability: 75, Language: 80, Skill: 60}},
			Trend:   country.Trend{Direction: country.DirectionUp, Magnitude: 1.1},
		},
		{
			Code: "IN", AltCode: "IND", Name: "India", Region: country.SouthAsia, Population: 1428.6,
			Scoring: scoring.Indicators{Set: indicator.Set{Access: 38, Affordability: 30, Language: 46, Skill: 34}},
			Trend:   country.Trend{Direction: country.DirectionUp, Magnitude: 3.1},
		},
		{
			Code: "CD", AltCode: "COD", Name: "DR Congo", Region: country.SubSaharanAfrica, Population: 102.3,
			Scoring: scoring.LegacyAdoption{Rate: 1.5},
			Trend:   country.Trend{Direction: country.DirectionDown, Magnitude: -0.6},
		},
	})
	return report.Assemble(ds, report.Options{
		Title: "GAII Test",
		TopN:  2,
		Now:   func() time.Time { return time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC) },
	})
}

func TestTerminalRenderer_BasicOutput(t *testing.T) {
	// Set NO_COLOR to avoid ANSI codes in test comparison
	t.Setenv("NO_COLOR", "1")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	err := r.Render(&buf, sampleReport())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"GAII Test",
		"North/south split:",
		"Regions:",
		"Europe",
		"Central Asia",
		"no countries",
		"Most equal:",
		"Least equal:",
		"Fastest improving:",
		"Germany",
		"DR Congo",
		"1,428.6M",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output", want)
		}
	}

	if strings.Contains(output, "\033[") {
		t.Error("expected no ANSI escape codes with NO_COLOR set")
	}
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	// Without NO_COLOR, output should have ANSI codes
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	err := r.Render(&buf, sampleReport())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !strings.Contains(buf.String(), "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestRenderCountry(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	rec := country.NewRecord(country.Input{
		Code: "KE", AltCode: "KEN", Name: "Kenya", Region: country.SubSaharanAfrica, Population: 55.1,
		Scoring: scoring.LegacyAdoption{Rate: 12, PaidUserIndex: 5},
	})

	var buf bytes.Buffer
	surface.RenderCountry(&buf, rec)
	output := buf.String()

	for _, want := range []string{"Kenya (KE / KEN)", "Sub-Saharan Africa", "adoption", "paid-user index 5.0", "access"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}
