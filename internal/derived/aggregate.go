// Package derived implements the pure derived-view computations of the price
// tracker: global statistics, the product index, per-store price comparisons
// and the search filter. Every function is deterministic, side-effect-free and
// safe to call concurrently — callers re-invoke them on each fresh snapshot
// from the feed.
package derived

import (
	"github.com/shopspring/decimal"

	"github.com/DaviCMachado/my-price-tracker/internal/model"
)

// Stats are the dashboard aggregates over the full record snapshot.
// Mean/Min/Max are two-decimal strings ready for display; an empty snapshot
// yields "0.00" everywhere, never an error.
type Stats struct {
	Count int    `json:"count"`
	Mean  string `json:"mean"`
	Min   string `json:"min"`
	Max   string `json:"max"`
}

// Aggregate computes count, mean, min and max price over records.
func Aggregate(records []model.PriceRecord) Stats {
	if len(records) == 0 {
		zero := decimal.Zero.StringFixed(2)
		return Stats{Count: 0, Mean: zero, Min: zero, Max: zero}
	}

	sum := decimal.Zero
	min := records[0].Price
	max := records[0].Price
	for _, r := range records {
		sum = sum.Add(r.Price)
		if r.Price.LessThan(min) {
			min = r.Price
		}
		if r.Price.GreaterThan(max) {
			max = r.Price
		}
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(records))))

	return Stats{
		Count: len(records),
		Mean:  mean.StringFixed(2),
		Min:   min.StringFixed(2),
		Max:   max.StringFixed(2),
	}
}
