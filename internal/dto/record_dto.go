package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecordDraftRequest is the new/edit price record form as submitted. Price is
// raw text — parsing and range checks happen in the mapping layer.
type RecordDraftRequest struct {
	Product   string `json:"product"    validate:"required"`
	Store     string `json:"store"      validate:"required"`
	PromoFlag string `json:"promo_flag" validate:"omitempty,oneof=with_loyalty without_loyalty"`
	PriceText string `json:"price"      validate:"required"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type RecordFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RecordResponse struct {
	ID          string `json:"id"`
	Product     string `json:"product"`
	Store       string `json:"store"`
	Price       string `json:"price"`
	PromoFlag   string `json:"promo_flag"`
	RecordedAt  string `json:"recorded_at"`
	DisplayDate string `json:"display_date"`
	OwnerID     string `json:"owner_id"`
}

type RecordListResponse struct {
	Data  []RecordResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
