// Package scoring implements the GAII score calculator. It turns raw
// sub-indicators, or a legacy adoption rate, into a 0-100 composite
// inequality score and a severity grade. Higher scores mean greater
// inequality of AI access.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/gaii/gaii/pkg/indicator"
)

// Result is the resolved output of scoring one country.
// Immutable once computed.
type Result struct {
	Indicators indicator.Set `json:"indicators"`
	Score      float64       `json:"score"`
	Grade      Grade         `json:"grade"`
	Basis      Basis         `json:"basis"`
}

// Basis records which computation path produced a Result.
type Basis string

const (
	BasisIndicators Basis = "indicators"
	BasisAdoption   Basis = "adoption"
)

// Grade is one of four ordered severity bands.
type Grade string

const (
	GradeLow      Grade = "Low"
	GradeModerate Grade = "Moderate"
	GradeHigh     Grade = "High"
	GradeCritical Grade = "Critical"
)

// Grades returns every band from least to most severe.
func Grades() []Grade {
	return []Grade{GradeLow, GradeModerate, GradeHigh, GradeCritical}
}

// ParseGrade accepts a band name case-insensitively.
func ParseGrade(s string) (Grade, error) {
	for _, g := range Grades() {
		if strings.EqualFold(strings.TrimSpace(s), string(g)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown grade %q", s)
}

// Level returns the position of g in the severity ordering (Low = 0).
// Unknown grades sort after Critical.
func (g Grade) Level() int {
	switch g {
	case GradeLow:
		return 0
	case GradeModerate:
		return 1
	case GradeHigh:
		return 2
	case GradeCritical:
		return 3
	default:
		return 4
	}
}

// Threshold returns the inclusive lower score bound of the band.
func (g Grade) Threshold() float64 {
	switch g {
	case GradeModerate:
		return ThresholdModerate
	case GradeHigh:
		return ThresholdHigh
	case GradeCritical:
		return ThresholdCritical
	default:
		return 0
	}
}

// GradeFromScore maps a composite score to its severity band.
// The score is rounded to one decimal first so that every caller grades the
// same value the record stores. NaN is graded Critical.
func GradeFromScore(score float64) Grade {
	s := Round1(score)
	switch {
	case s < ThresholdModerate:
		return GradeLow
	case s < ThresholdHigh:
		return GradeModerate
	case s < ThresholdCritical:
		return GradeHigh
	default:
		return GradeCritical
	}
}

// Round1 rounds v to one decimal place, half away from zero.
func Round1(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}
