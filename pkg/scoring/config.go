package scoring

import "github.com/gaii/gaii/pkg/indicator"

// Composite weights. They sum to 1.0; the tests enforce it.
const (
	WeightAccess        = 0.40
	WeightAffordability = 0.30
	WeightLanguage      = 0.20
	WeightSkill         = 0.10
)

// Grade band lower bounds, inclusive.
const (
	ThresholdModerate = 30.0
	ThresholdHigh     = 50.0
	ThresholdCritical = 70.0
)

// MaxAdoption is the reference ceiling for the legacy adoption-rate path, in
// percent. It is the highest adoption rate observed in the source survey.
const MaxAdoption = 66.7

// Legacy estimator coefficients used to back-fill a synthetic indicator set
// from an adoption rate and a paid-user index.
const (
	affordabilityBase    = 15.0
	affordabilityPerPaid = 0.7
	languageBase         = 30.0
	languagePerAdoption  = 0.9
	skillBase            = 20.0
	skillPerAdoption     = 0.6
	skillPerPaid         = 0.3
)

// Weights holds the composite weight of each sub-indicator.
type Weights struct {
	Access        float64 `json:"access"`
	Affordability float64 `json:"affordability"`
	Language      float64 `json:"language"`
	Skill         float64 `json:"skill"`
}

// Defaults returns the fixed composite weights.
func Defaults() Weights {
	return Weights{
		Access:        WeightAccess,
		Affordability: WeightAffordability,
		Language:      WeightLanguage,
		Skill:         WeightSkill,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Access + w.Affordability + w.Language + w.Skill
}

// Of returns the weight for a named sub-indicator.
func (w Weights) Of(n indicator.Name) float64 {
	switch n {
	case indicator.Access:
		return w.Access
	case indicator.Affordability:
		return w.Affordability
	case indicator.Language:
		return w.Language
	case indicator.Skill:
		return w.Skill
	default:
		return 0
	}
}
