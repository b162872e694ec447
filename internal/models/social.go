package models

import (
	"time"

	"github.com/google/uuid"
)

// Supported social platforms.
const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
)

// SocialMediaAccount is a connected social platform account. WorkspaceID is
// nil while the account is not attached to any workspace; unattached accounts
// do not count against the owner's social quota.
type SocialMediaAccount struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	WorkspaceID *uuid.UUID `json:"workspace_id,omitempty"`
	Platform    string     `json:"platform"`
	Username    string     `json:"username"`
	ExternalID  string     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
