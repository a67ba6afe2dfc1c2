package scoring

import (
	"fmt"

	"github.com/gaii/gaii/pkg/indicator"
)

// Methodology describes how scores are computed. Reports embed it verbatim so
// the published method always matches the constants in this package.
type Methodology struct {
	Weights     []WeightEntry `json:"weights"`
	Bands       []Band        `json:"bands"`
	MaxAdoption float64       `json:"max_adoption"`
	Formula     string        `json:"formula"`
	Legacy      string        `json:"legacy_formula"`
	Citations   []Citation    `json:"citations"`
}

// WeightEntry is one sub-indicator and its composite weight.
type WeightEntry struct {
	Indicator   indicator.Name `json:"indicator"`
	Weight      float64        `json:"weight"`
	Description string         `json:"description"`
}

// Band is one grade with its inclusive lower and exclusive upper bound.
// The Critical band's upper bound of 100 is inclusive.
type Band struct {
	Grade Grade   `json:"grade"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Citation names an upstream data source.
type Citation struct {
	Indicator indicator.Name `json:"indicator,omitempty"`
	Source    string         `json:"source"`
	URL       string         `json:"url,omitempty"`
}

var descriptions = map[indicator.Name]string{
	indicator.Access:        "Share of the population able to reach generative AI services (connectivity, device ownership, service availability).",
	indicator.Affordability: "Cost of a paid AI subscription relative to local income.",
	indicator.Language:      "Coverage and quality of AI models in the country's main languages.",
	indicator.Skill:         "Digital and AI literacy of the working-age population.",
}

// Citations lists the data sources behind each sub-indicator.
var Citations = []Citation{
	{Indicator: indicator.Access, Source: "ITU Facts and Figures: Focus on Connectivity", URL: "https://www.itu.int/itu-d/reports/statistics/facts-figures/"},
	{Indicator: indicator.Affordability, Source: "World Bank International Comparison Program (GNI per capita, PPP)", URL: "https://www.worldbank.org/en/programs/icp"},
	{Indicator: indicator.Language, Source: "Ethnologue language population estimates and model language coverage benchmarks", URL: "https://www.ethnologue.com/"},
	{Indicator: indicator.Skill, Source: "World Bank Human Capital Index and ITU ICT skills indicators", URL: "https://www.worldbank.org/en/publication/human-capital"},
	{Source: "AI adoption survey (legacy adoption-rate path)"},
}

// MethodologyInfo returns the method description derived from the package
// constants.
func MethodologyInfo() Methodology {
	w := Defaults()
	formula := fmt.Sprintf("score = 100 - (%.2f*access + %.2f*affordability + %.2f*language + %.2f*skill), clamped to [0,100], one decimal",
		w.Access, w.Affordability, w.Language, w.Skill)
	legacy := fmt.Sprintf("score = 100 - adoption_rate / %.1f * 100, clamped to [0,100], one decimal", MaxAdoption)

	m := Methodology{
		MaxAdoption: MaxAdoption,
		Formula:     formula,
		Legacy:      legacy,
		Citations:   append([]Citation(nil), Citations...),
	}
	for _, n := range indicator.Names() {
		m.Weights = append(m.Weights, WeightEntry{
			Indicator:   n,
			Weight:      w.Of(n),
			Description: descriptions[n],
		})
	}
	grades := Grades()
	for i, g := range grades {
		upper := 100.0
		if i+1 < len(grades) {
			upper = grades[i+1].Threshold()
		}
		m.Bands = append(m.Bands, Band{Grade: g, Min: g.Threshold(), Max: upper})
	}
	return m
}
