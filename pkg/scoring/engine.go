package scoring

import (
	"math"

	"github.com/gaii/gaii/pkg/indicator"
)

// Input is the raw material for one country's score. It is either
// Indicators or LegacyAdoption; Resolve turns it into the canonical Result
// once, so consumers never branch on which fields are present.
type Input interface {
	Resolve() Result
	isInput()
}

// Indicators scores a country from its four measured sub-indicators.
type Indicators struct {
	Set indicator.Set
}

// LegacyAdoption scores a country from a single adoption-rate percentage.
// PaidUserIndex only feeds the synthetic indicator set.
type LegacyAdoption struct {
	Rate          float64
	PaidUserIndex float64
}

func (Indicators) isInput()     {}
func (LegacyAdoption) isInput() {}

// Resolve clamps the sub-indicators and computes the weighted composite.
func (in Indicators) Resolve() Result {
	set := in.Set.Clamped()
	score := Composite(set)
	return Result{
		Indicators: set,
		Score:      score,
		Grade:      GradeFromScore(score),
		Basis:      BasisIndicators,
	}
}

// Resolve computes the adoption-based score and back-fills a synthetic
// indicator set so downstream consumers always see four values.
func (in LegacyAdoption) Resolve() Result {
	score := LegacyComposite(in.Rate)
	return Result{
		Indicators: SyntheticIndicators(in.Rate, in.PaidUserIndex),
		Score:      score,
		Grade:      GradeFromScore(score),
		Basis:      BasisAdoption,
	}
}

// Composite inverts the weighted sum of the clamped sub-indicators into an
// inequality score: 100 - Σ wᵢ·xᵢ, clamped to [0,100] and rounded to one
// decimal. A missing sub-indicator counts as 0; weights are never
// re-normalised over the ones present.
func Composite(s indicator.Set) float64 {
	s = s.Clamped()
	w := Defaults()
	weighted := w.Access*s.Access +
		w.Affordability*s.Affordability +
		w.Language*s.Language +
		w.Skill*s.Skill
	return Round1(indicator.Clamp(100 - weighted))
}

// LegacyComposite scores an adoption rate against MaxAdoption.
func LegacyComposite(adoptionRate float64) float64 {
	rate := adoptionRate
	if math.IsNaN(rate) {
		rate = 0
	}
	return Round1(indicator.Clamp(100 - (rate/MaxAdoption)*100))
}

// SyntheticIndicators estimates a full indicator set from an adoption rate
// and a paid-user index using fixed linear estimators.
func SyntheticIndicators(adoptionRate, paidUserIndex float64) indicator.Set {
	return indicator.Set{
		Access:        indicator.Clamp(adoptionRate / MaxAdoption * 100),
		Affordability: indicator.Clamp(affordabilityBase + affordabilityPerPaid*paidUserIndex),
		Language:      indicator.Clamp(languageBase + languagePerAdoption*adoptionRate),
		Skill:         indicator.Clamp(skillBase + skillPerAdoption*adoptionRate + skillPerPaid*paidUserIndex),
	}
}
