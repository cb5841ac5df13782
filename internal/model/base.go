package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all stored documents
type Base struct {
	ID        uuid.UUID `json:"_id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
