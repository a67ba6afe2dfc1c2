// Package ranking selects best, worst and fastest-improving countries from a
// dataset. Selectors never mutate the dataset; ties keep dataset order.
package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/gaii/gaii/pkg/country"
)

// Order names one of the ranking selectors.
type Order string

const (
	OrderTop       Order = "top"
	OrderBottom    Order = "bottom"
	OrderImproving Order = "improving"
)

// Orders returns every selector name.
func Orders() []Order {
	return []Order{OrderTop, OrderBottom, OrderImproving}
}

// ParseOrder accepts a selector name case-insensitively.
func ParseOrder(s string) (Order, error) {
	o := Order(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Orders() {
		if o == known {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown ranking %q (want top, bottom or improving)", s)
}

// By dispatches to the selector named by o.
func By(ds *country.Dataset, o Order, n int) ([]country.Record, error) {
	switch o {
	case OrderTop:
		return Top(ds, n), nil
	case OrderBottom:
		return Bottom(ds, n), nil
	case OrderImproving:
		return FastestImproving(ds, n), nil
	default:
		return nil, fmt.Errorf("unknown ranking %q", o)
	}
}

// Top returns the n countries with the lowest composite score.
func Top(ds *country.Dataset, n int) []country.Record {
	recs := ds.Records()
	slices.SortStableFunc(recs, func(a, b country.Record) int {
		return cmp.Compare(a.Score, b.Score)
	})
	return head(recs, n)
}

// Bottom returns the n countries with the highest composite score. The
// order is the exact reverse of Top, so tied scores list later countries
// first and Top and Bottom never overlap while 2n <= len.
func Bottom(ds *country.Dataset, n int) []country.Record {
	recs := ds.Records()
	slices.SortStableFunc(recs, func(a, b country.Record) int {
		return cmp.Compare(a.Score, b.Score)
	})
	slices.Reverse(recs)
	return head(recs, n)
}

// FastestImproving returns up to n improving countries by descending trend
// magnitude. A country is improving when its direction is up or its
// magnitude is positive.
func FastestImproving(ds *country.Dataset, n int) []country.Record {
	var recs []country.Record
	for _, rec := range ds.Records() {
		if rec.Trend.Direction == country.DirectionUp || rec.Trend.Magnitude > 0 {
			recs = append(recs, rec)
		}
	}
	slices.SortStableFunc(recs, func(a, b country.Record) int {
		return cmp.Compare(b.Trend.Magnitude, a.Trend.Magnitude)
	})
	return head(recs, n)
}

func head(recs []country.Record, n int) []country.Record {
	if n <= 0 {
		return []country.Record{}
	}
	if n < len(recs) {
		recs = recs[:n]
	}
	if recs == nil {
		return []country.Record{}
	}
	return recs
}
