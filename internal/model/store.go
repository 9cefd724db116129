package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultColorTag is used for new stores and as the display fallback when a
// price record references a store name that no longer exists.
const DefaultColorTag = "blue"

// ColorPalette is the fixed set of accepted store color tags.
var ColorPalette = []string{"red", "orange", "yellow", "green", "blue", "violet", "pink", "gray"}

// Store is a supermarket the user tracks prices at. Price records reference it
// by Name (denormalized) — deleting a store leaves its records intact.
type Store struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Address   *string
	ColorTag  string    `gorm:"type:varchar(10);not null;default:'blue'"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
