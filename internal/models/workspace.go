package models

import (
	"time"

	"github.com/google/uuid"
)

// Workspace roles. SocialMediaManager is the default assignment.
const (
	RoleSocialMediaManager = "SOCIAL_MEDIA_MANAGER"
	RoleContentCreator     = "CONTENT_CREATOR"
	RoleAdsManager         = "ADS_MANAGER"
	RoleAnalyst            = "ANALYST"
)

var workspaceRoles = map[string]bool{
	RoleSocialMediaManager: true,
	RoleContentCreator:     true,
	RoleAdsManager:         true,
	RoleAnalyst:            true,
}

// ValidRole reports whether role is one of the enumerated workspace roles.
func ValidRole(role string) bool {
	return workspaceRoles[role]
}

type Workspace struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TeamID    uuid.UUID `json:"team_id"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkspaceRole binds a user to a workspace with a role. Unique per
// (workspace, user) pair.
type WorkspaceRole struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        *User     `json:"user,omitempty"`
}
