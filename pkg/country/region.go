package country

// Region is a code from the fixed, closed set of world regions.
type Region string

const (
	NorthAmerica          Region = "NAM"
	LatinAmerica          Region = "LAC"
	Europe                Region = "EUR"
	MiddleEastNorthAfrica Region = "MENA"
	SubSaharanAfrica      Region = "SSA"
	SouthAsia             Region = "SAS"
	EastAsia              Region = "EAS"
	SoutheastAsia         Region = "SEA"
	CentralAsia           Region = "CAS"
	Oceania               Region = "OCE"
)

var regionNames = map[Region]string{
	NorthAmerica:          "North America",
	LatinAmerica:          "Latin America & Caribbean",
	Europe:                "Europe",
	MiddleEastNorthAfrica: "Middle East & North Africa",
	SubSaharanAfrica:      "Sub-Saharan Africa",
	SouthAsia:             "South Asia",
	EastAsia:              "East Asia",
	SoutheastAsia:         "Southeast Asia",
	CentralAsia:           "Central Asia",
	Oceania:               "Oceania",
}

// Regions returns every region code in display order. Rollups are produced
// for exactly this list.
func Regions() []Region {
	return []Region{
		NorthAmerica,
		LatinAmerica,
		Europe,
		MiddleEastNorthAfrica,
		SubSaharanAfrica,
		SouthAsia,
		EastAsia,
		SoutheastAsia,
		CentralAsia,
		Oceania,
	}
}

// Name returns the display name, or the raw code for an unknown region.
func (r Region) Name() string {
	if n, ok := regionNames[r]; ok {
		return n
	}
	return string(r)
}

// Valid reports whether r belongs to the fixed region set.
func (r Region) Valid() bool {
	_, ok := regionNames[r]
	return ok
}
