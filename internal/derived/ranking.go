package derived

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/DaviCMachado/my-price-tracker/internal/model"
)

// productCollator orders product names the way a pt-BR user expects
// (accent-aware, case-insensitive primary ordering).
var productCollator = collate.New(language.BrazilianPortuguese, collate.Loose)

// DistinctProducts returns the unique product names across all records,
// alphabetically sorted with locale-aware collation.
func DistinctProducts(records []model.PriceRecord) []string {
	seen := make(map[string]struct{}, len(records))
	products := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Product]; ok {
			continue
		}
		seen[r.Product] = struct{}{}
		products = append(products, r.Product)
	}
	sort.Slice(products, func(i, j int) bool {
		return productCollator.CompareString(products[i], products[j]) < 0
	})
	return products
}

// LatestPricePerStore selects, for the given product (exact match), the most
// recent record of each store, sorted ascending by price. "Most recent" is the
// greatest RecordedAt; equal timestamps are resolved by the lexicographically
// greater record ID so the result does not depend on iteration order.
// The result contains at most one record per distinct store name.
func LatestPricePerStore(records []model.PriceRecord, product string) []model.PriceRecord {
	latest := make(map[string]model.PriceRecord)
	for _, r := range records {
		if r.Product != product {
			continue
		}
		cur, ok := latest[r.StoreName]
		if !ok || supersedes(r, cur) {
			latest[r.StoreName] = r
		}
	}

	out := make([]model.PriceRecord, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Price.Equal(out[j].Price) {
			return out[i].Price.LessThan(out[j].Price)
		}
		// Equal prices: order by store name so the output is reproducible.
		return strings.Compare(out[i].StoreName, out[j].StoreName) < 0
	})
	return out
}

func supersedes(a, b model.PriceRecord) bool {
	if a.RecordedAt.After(b.RecordedAt) {
		return true
	}
	if a.RecordedAt.Equal(b.RecordedAt) {
		return strings.Compare(a.ID.String(), b.ID.String()) > 0
	}
	return false
}

// Comparison summarizes a LatestPricePerStore result for presentation.
type Comparison struct {
	Cheapest      *model.PriceRecord
	MostExpensive *model.PriceRecord
	Spread        decimal.Decimal
}

// NewComparison derives cheapest/most-expensive/spread from entries, which
// must already be sorted ascending by price (LatestPricePerStore output).
// Recomputed fresh on every call — nothing is cached.
func NewComparison(entries []model.PriceRecord) Comparison {
	if len(entries) == 0 {
		return Comparison{Spread: decimal.Zero}
	}
	cheapest := entries[0]
	mostExpensive := entries[len(entries)-1]
	return Comparison{
		Cheapest:      &cheapest,
		MostExpensive: &mostExpensive,
		Spread:        mostExpensive.Price.Sub(cheapest.Price),
	}
}
