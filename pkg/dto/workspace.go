package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWorkspaceRequest struct {
	Name string `json:"name"`
}

type UpdateWorkspaceRequest struct {
	Name string `json:"name"`
}

type AddUserRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

type RemoveUserRequest struct {
	WorkspaceRoleID uuid.UUID `json:"workspace_role_id"`
}

type UpdateUserRoleRequest struct {
	WorkspaceRoleID uuid.UUID `json:"workspace_role_id"`
	Role            string    `json:"role"`
}

type WorkspaceSocialAccountRequest struct {
	AccountID uuid.UUID `json:"account_id"`
}

type WorkspaceResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Users     []uuid.UUID `json:"users"`
	Team      uuid.UUID   `json:"team"`
	IsDefault bool        `json:"is_default"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}
