package dto

// ─── Derived-view responses ──────────────────────────────────────────────────

// StatsResponse mirrors derived.Stats for the dashboard endpoint.
type StatsResponse struct {
	Count int    `json:"count"`
	Mean  string `json:"mean"`
	Min   string `json:"min"`
	Max   string `json:"max"`
}

type ProductIndexResponse struct {
	Products []string `json:"products"`
}

// ComparisonEntry is one store's latest price for the compared product,
// annotated with the current store color (default when the store name no
// longer matches any store).
type ComparisonEntry struct {
	Store       string `json:"store"`
	ColorTag    string `json:"color_tag"`
	Price       string `json:"price"`
	PromoFlag   string `json:"promo_flag"`
	DisplayDate string `json:"display_date"`
	RecordedAt  string `json:"recorded_at"`
}

type ComparisonResponse struct {
	Product       string            `json:"product"`
	Entries       []ComparisonEntry `json:"entries"`
	Cheapest      *ComparisonEntry  `json:"cheapest"`
	MostExpensive *ComparisonEntry  `json:"most_expensive"`
	Spread        string            `json:"spread"`
}
