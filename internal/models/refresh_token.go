package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the stored half of a staff session. Only the hash of the
// opaque token string ever reaches the database.
type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	StaffID   uuid.UUID `json:"staff_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
