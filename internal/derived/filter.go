package derived

import (
	"strings"

	"github.com/DaviCMachado/my-price-tracker/internal/model"
)

// FilterByProduct returns the records whose product name contains term,
// case-insensitively. An empty term returns the input unchanged. Matching is
// plain substring over lower-cased text — no diacritic folding.
func FilterByProduct(records []model.PriceRecord, term string) []model.PriceRecord {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	out := make([]model.PriceRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Product), needle) {
			out = append(out, r)
		}
	}
	return out
}
