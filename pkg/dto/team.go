package dto

import (
	"time"

	"github.com/google/uuid"
)

type TeamResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TeamUsageResponse struct {
	MaxWorkspaces int  `json:"max_workspaces"`
	MaxUsers      int  `json:"max_users"`
	MaxSocials    int  `json:"max_socials"`
	SocialsInUse  int  `json:"socials_in_use"`
	CanAddSocials bool `json:"can_add_socials"`
}
