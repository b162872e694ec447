package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConsentURLResponse struct {
	URL string `json:"url"`
}

type ExchangeCodeRequest struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
	State    string `json:"state"`
}

type SocialAccountResponse struct {
	ID          uuid.UUID  `json:"id"`
	WorkspaceID *uuid.UUID `json:"workspace_id,omitempty"`
	Platform    string     `json:"platform"`
	Username    string     `json:"username"`
	CreatedAt   time.Time  `json:"created_at"`
}
