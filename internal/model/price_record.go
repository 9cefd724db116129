package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promo flag values for a price record.
const (
	PromoWithLoyalty    = "with_loyalty"
	PromoWithoutLoyalty = "without_loyalty"
)

// PriceRecord is a single price observation: a product seen at a store for a
// given price on a given day. The store is referenced by name, not by id —
// renaming or deleting a Store does not touch historical records.
type PriceRecord struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Product   string          `gorm:"index;not null"`
	StoreName string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PromoFlag string          `gorm:"type:varchar(20);not null;default:'without_loyalty'"`
	// RecordedAt is stamped by the database on insert and never changed by
	// edits; it is the "most recent" tie-breaking timestamp.
	RecordedAt time.Time `gorm:"not null;default:now();index"`
	// DisplayDate is the dd/mm/yyyy label captured once at submit time.
	// Purely presentational — never recomputed, never touched by edits.
	DisplayDate string    `gorm:"not null"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UpdatedAt   time.Time
}
