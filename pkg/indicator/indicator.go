// Package indicator defines the four raw sub-indicators that feed the GAII
// composite score. These types are shared by the scoring engine, the country
// dataset and every output surface.
package indicator

import (
	"maps"
	"math"
)

// Name identifies one of the four sub-indicators.
type Name string

const (
	Access        Name = "access"
	Affordability Name = "affordability"
	Language      Name = "language"
	Skill         Name = "skill"
)

// Names returns the sub-indicators in methodology order.
func Names() []Name {
	return []Name{Access, Affordability, Language, Skill}
}

// Set holds the four sub-indicator values for one country.
// Higher values mean better access; each value lives in [0,100].
type Set struct {
	Access        float64  `json:"access" yaml:"access"`
	Affordability float64  `json:"affordability" yaml:"affordability"`
	Language      float64  `json:"language" yaml:"language"`
	Skill         float64  `json:"skill" yaml:"skill"`
	Details       *Details `json:"details,omitempty" yaml:"details,omitempty"`
}

// Details carries finer-grained raw measurements per sub-indicator.
// Display only; nothing in the engine recomputes from it.
type Details struct {
	Access        Breakdown `json:"access,omitempty" yaml:"access,omitempty"`
	Affordability Breakdown `json:"affordability,omitempty" yaml:"affordability,omitempty"`
	Language      Breakdown `json:"language,omitempty" yaml:"language,omitempty"`
	Skill         Breakdown `json:"skill,omitempty" yaml:"skill,omitempty"`
}

// Breakdown maps a measurement label to its raw value, e.g. "broadband_pct": 71.2.
type Breakdown map[string]float64

// Clone returns a deep copy of d, or nil for nil.
func (d *Details) Clone() *Details {
	if d == nil {
		return nil
	}
	return &Details{
		Access:        maps.Clone(d.Access),
		Affordability: maps.Clone(d.Affordability),
		Language:      maps.Clone(d.Language),
		Skill:         maps.Clone(d.Skill),
	}
}

// Breakdowns returns the four breakdowns in methodology order.
func (d *Details) Breakdowns() []Breakdown {
	if d == nil {
		return nil
	}
	return []Breakdown{d.Access, d.Affordability, d.Language, d.Skill}
}

// Clone returns a copy of s that shares no maps with it.
func (s Set) Clone() Set {
	s.Details = s.Details.Clone()
	return s
}

// Value returns the named sub-indicator, or 0 for an unknown name.
func (s Set) Value(n Name) float64 {
	switch n {
	case Access:
		return s.Access
	case Affordability:
		return s.Affordability
	case Language:
		return s.Language
	case Skill:
		return s.Skill
	default:
		return 0
	}
}

// Clamped returns a copy with every sub-indicator clamped to [0,100].
// NaN counts as a missing measurement and becomes 0.
func (s Set) Clamped() Set {
	s.Access = Clamp(s.Access)
	s.Affordability = Clamp(s.Affordability)
	s.Language = Clamp(s.Language)
	s.Skill = Clamp(s.Skill)
	return s
}

// Clamp bounds v to [0,100], mapping NaN to 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
