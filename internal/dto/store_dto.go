package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type StoreDraftRequest struct {
	Name     string `json:"name"      validate:"required,min=1,max=120"`
	Address  string `json:"address"`
	ColorTag string `json:"color_tag" validate:"omitempty,oneof=red orange yellow green blue violet pink gray"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StoreResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Address  *string `json:"address"`
	ColorTag string  `json:"color_tag"`
}
