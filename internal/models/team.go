package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is the billing-owning tenant entity. A user owns at most one team,
// enforced by a unique constraint on owner_id.
type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
