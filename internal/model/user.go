package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated session owner. Anonymous users are created on the
// fly (device-local sessions, like the original app) and have no password.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	DisplayName  string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"` // empty for anonymous users
	Anonymous    bool      `gorm:"not null;default:false"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
