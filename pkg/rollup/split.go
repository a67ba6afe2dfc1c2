package rollup

import (
	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/scoring"
)

// NorthRegions are regions whose every member belongs to the north group.
var NorthRegions = []country.Region{country.NorthAmerica, country.Europe}

// NorthCodes are individual countries in the north group regardless of region.
var NorthCodes = []string{"AU", "NZ", "JP", "KR", "SG", "IL", "TW", "HK"}

// Group is one side of the north/south comparison.
type Group struct {
	Name          string   `json:"name"`
	CountryCount  int      `json:"country_count"`
	Population    float64  `json:"population"`
	WeightedScore float64  `json:"weighted_score"`
	WeightedProxy float64  `json:"weighted_adoption_proxy"`
	Codes         []string `json:"codes"`
}

// Split compares the north and south groups. Gap is north proxy minus south
// proxy.
type Split struct {
	North Group   `json:"north"`
	South Group   `json:"south"`
	Gap   float64 `json:"gap"`
}

// IsNorth reports whether rec is in the north group: its code is listed in
// NorthCodes or its region is in NorthRegions.
func IsNorth(rec country.Record) bool {
	for _, c := range NorthCodes {
		if rec.Code == c {
			return true
		}
	}
	for _, r := range NorthRegions {
		if rec.Region == r {
			return true
		}
	}
	return false
}

// SplitNorthSouth partitions the dataset into north and its complement.
// Every record lands in exactly one group.
func SplitNorthSouth(ds *country.Dataset) Split {
	var north, south []country.Record
	for _, rec := range ds.Records() {
		if IsNorth(rec) {
			north = append(north, rec)
		} else {
			south = append(south, rec)
		}
	}

	n := group("north", north)
	s := group("south", south)
	return Split{
		North: n,
		South: s,
		Gap:   scoring.Round1(n.WeightedProxy - s.WeightedProxy),
	}
}

func group(name string, recs []country.Record) Group {
	w := weigh(recs)
	codes := make([]string, 0, len(recs))
	for _, rec := range recs {
		codes = append(codes, rec.Code)
	}
	return Group{
		Name:          name,
		CountryCount:  len(recs),
		Population:    scoring.Round1(w.population),
		WeightedScore: scoring.Round1(w.score()),
		WeightedProxy: scoring.Round1(w.proxy()),
		Codes:         codes,
	}
}
