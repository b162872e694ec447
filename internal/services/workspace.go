package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mkrstic/socialdeck-api/internal/database"
	"github.com/mkrstic/socialdeck-api/internal/models"
)

// Domain rejections. The exact message strings are part of the API contract:
// handlers return them verbatim in {detail: ...} bodies and clients key off
// them.
var (
	ErrWorkspaceQuotaExceeded = errors.New("User is not allowed to create new workspace.")
	ErrWorkspaceNameEmpty     = errors.New("Workspace name cannot be empty.")
	ErrWorkspaceNotFound      = errors.New("Workspace not found.")
	ErrDefaultWorkspace       = errors.New("Cannot delete the initial workspace.")
	ErrInvalidRole            = errors.New("Invalid role.")
	ErrUserQuotaExceeded      = errors.New("Cannot add more users to workspaces owned by this user.")
	ErrUserNotFound           = errors.New("User not found.")
	ErrWorkspaceRoleNotFound  = errors.New("Workspace role not found.")
	ErrOwnerInOwnWorkspace    = errors.New("The user is the owner of this team and cannot be in another team's workspace.")
	ErrUserInOtherTeam        = errors.New("The user is already in another team's workspace and cannot be added.")
	ErrUserAlreadyInWorkspace = errors.New("User is already a member of this workspace.")
	ErrSocialQuotaExceeded    = errors.New("Cannot add more social media accounts to this owner's workspaces.")
	ErrSocialAccountNotFound  = errors.New("Social media account not found.")
)

// QuotaChecker is the slice of the quota engine the lifecycle service needs.
type QuotaChecker interface {
	CanCreateWorkspace(ctx context.Context, teamID uuid.UUID) (bool, error)
	CanAddUserToOwnedWorkspaces(ctx context.Context, ownerID uuid.UUID) (bool, error)
	CanAddSocialMediaAccounts(ctx context.Context, ownerID uuid.UUID) (bool, int, error)
}

type WorkspaceService struct {
	db    *database.DB
	quota QuotaChecker
}

func NewWorkspaceService(db *database.DB, quota QuotaChecker) *WorkspaceService {
	return &WorkspaceService{db: db, quota: quota}
}

// Create inserts a new workspace under the team. The quota check runs first
// and fails closed, so a nonexistent team surfaces as a quota rejection.
func (s *WorkspaceService) Create(ctx context.Context, teamID uuid.UUID, name string) (*models.Workspace, error) {
	canCreate, err := s.quota.CanCreateWorkspace(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to check workspace quota: %w", err)
	}
	if !canCreate {
		return nil, ErrWorkspaceQuotaExceeded
	}
	if name == "" {
		return nil, ErrWorkspaceNameEmpty
	}

	var workspace models.Workspace
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO workspaces (name, team_id)
		VALUES ($1, $2)
		RETURNING id, name, team_id, is_default, created_at, updated_at
	`, name, teamID).Scan(
		&workspace.ID, &workspace.Name, &workspace.TeamID,
		&workspace.IsDefault, &workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &workspace, nil
}

func (s *WorkspaceService) GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	var workspace models.Workspace
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, team_id, is_default, created_at, updated_at
		FROM workspaces WHERE id = $1
	`, workspaceID).Scan(
		&workspace.ID, &workspace.Name, &workspace.TeamID,
		&workspace.IsDefault, &workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &workspace, nil
}

// UpdateName renames the workspace in place. The owning team can never be
// reassigned; no operation exposes it.
func (s *WorkspaceService) UpdateName(ctx context.Context, workspaceID uuid.UUID, newName string) (*models.Workspace, error) {
	if _, err := s.GetByID(ctx, workspaceID); err != nil {
		return nil, err
	}
	if newName == "" {
		return nil, ErrWorkspaceNameEmpty
	}

	var workspace models.Workspace
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE workspaces SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, team_id, is_default, created_at, updated_at
	`, newName, workspaceID).Scan(
		&workspace.ID, &workspace.Name, &workspace.TeamID,
		&workspace.IsDefault, &workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}
	return &workspace, nil
}

// Delete removes the workspace and, via cascade, its role assignments. The
// default workspace provisioned at registration is not deletable.
func (s *WorkspaceService) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	workspace, err := s.GetByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if workspace.IsDefault {
		return ErrDefaultWorkspace
	}

	_, err = s.db.Pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, workspaceID)
	return err
}

func (s *WorkspaceService) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Workspace, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, team_id, is_default, created_at, updated_at
		FROM workspaces
		WHERE team_id = $1
		ORDER BY created_at
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkspaces(rows)
}

// ListByMember returns the workspaces in which userID holds a role.
func (s *WorkspaceService) ListByMember(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT w.id, w.name, w.team_id, w.is_default, w.created_at, w.updated_at
		FROM workspaces w
		JOIN workspace_roles wr ON w.id = wr.workspace_id
		WHERE wr.user_id = $1
		ORDER BY w.created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkspaces(rows)
}

func scanWorkspaces(rows pgx.Rows) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	for rows.Next() {
		var w models.Workspace
		if err := rows.Scan(&w.ID, &w.Name, &w.TeamID, &w.IsDefault, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, w)
	}
	return workspaces, rows.Err()
}

// GetUsers returns the members of the workspace. A missing workspace yields
// an empty slice, never an error.
func (s *WorkspaceService) GetUsers(ctx context.Context, workspaceID uuid.UUID) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT u.id, u.email, u.name, u.password_hash, u.created_at, u.updated_at
		FROM users u
		JOIN workspace_roles wr ON u.id = wr.user_id
		WHERE wr.workspace_id = $1
		ORDER BY wr.created_at
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListUserIDs returns the member user ids of the workspace, for serialization.
func (s *WorkspaceService) ListUserIDs(ctx context.Context, workspaceID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT user_id FROM workspace_roles WHERE workspace_id = $1 ORDER BY created_at
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddUser assigns a role to a user in the workspace. Check order is part of
// the contract: role validity, workspace existence, owner user quota, target
// user existence, then the membership invariants. The unique
// (workspace, user) constraint backs the whole sequence up at write time.
func (s *WorkspaceService) AddUser(ctx context.Context, workspaceID, userID uuid.UUID, role string) (*models.WorkspaceRole, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	var teamID, ownerID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT w.team_id, t.owner_id
		FROM workspaces w
		JOIN teams t ON w.team_id = t.id
		WHERE w.id = $1
	`, workspaceID).Scan(&teamID, &ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}

	canAdd, err := s.quota.CanAddUserToOwnedWorkspaces(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user quota: %w", err)
	}
	if !canAdd {
		return nil, ErrUserQuotaExceeded
	}

	var userExists bool
	err = s.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&userExists)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, ErrUserNotFound
	}

	// The team owner has implicit full access and is never a member.
	if userID == ownerID {
		return nil, ErrOwnerInOwnWorkspace
	}

	// A user belongs to at most one team's set of workspaces.
	var inOtherTeam bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM workspace_roles wr
			JOIN workspaces w ON wr.workspace_id = w.id
			WHERE wr.user_id = $1 AND w.team_id != $2
		)
	`, userID, teamID).Scan(&inOtherTeam)
	if err != nil {
		return nil, err
	}
	if inOtherTeam {
		return nil, ErrUserInOtherTeam
	}

	var workspaceRole models.WorkspaceRole
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO workspace_roles (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, workspace_id, user_id, role, created_at, updated_at
	`, workspaceID, userID, role).Scan(
		&workspaceRole.ID, &workspaceRole.WorkspaceID, &workspaceRole.UserID,
		&workspaceRole.Role, &workspaceRole.CreatedAt, &workspaceRole.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUserAlreadyInWorkspace
		}
		return nil, fmt.Errorf("failed to add user to workspace: %w", err)
	}
	return &workspaceRole, nil
}

// RemoveUser deletes the role assignment. The workspace predicate keeps a
// role id from another workspace from being deleted through this path.
func (s *WorkspaceService) RemoveUser(ctx context.Context, workspaceID, workspaceRoleID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM workspace_roles WHERE id = $1 AND workspace_id = $2`, workspaceRoleID, workspaceID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrWorkspaceRoleNotFound
	}
	return nil
}

func (s *WorkspaceService) UpdateUserRole(ctx context.Context, workspaceID, workspaceRoleID uuid.UUID, role string) (*models.WorkspaceRole, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	var workspaceRole models.WorkspaceRole
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE workspace_roles SET role = $1, updated_at = NOW()
		WHERE id = $2 AND workspace_id = $3
		RETURNING id, workspace_id, user_id, role, created_at, updated_at
	`, role, workspaceRoleID, workspaceID).Scan(
		&workspaceRole.ID, &workspaceRole.WorkspaceID, &workspaceRole.UserID,
		&workspaceRole.Role, &workspaceRole.CreatedAt, &workspaceRole.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkspaceRoleNotFound
		}
		return nil, err
	}
	return &workspaceRole, nil
}

// GetSocialMediaAccounts returns the accounts linked to the workspace. A
// missing workspace yields an empty slice, never an error.
func (s *WorkspaceService) GetSocialMediaAccounts(ctx context.Context, workspaceID uuid.UUID) ([]models.SocialMediaAccount, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, user_id, workspace_id, platform, username, external_id, created_at, updated_at
		FROM social_media_accounts
		WHERE workspace_id = $1
		ORDER BY created_at
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []models.SocialMediaAccount{}
	for rows.Next() {
		var a models.SocialMediaAccount
		if err := rows.Scan(&a.ID, &a.UserID, &a.WorkspaceID, &a.Platform, &a.Username, &a.ExternalID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// AddSocialMediaAccount links an existing account to the workspace by setting
// its workspace foreign key.
func (s *WorkspaceService) AddSocialMediaAccount(ctx context.Context, workspaceID, accountID uuid.UUID) (*models.SocialMediaAccount, error) {
	var ownerID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT t.owner_id
		FROM workspaces w
		JOIN teams t ON w.team_id = t.id
		WHERE w.id = $1
	`, workspaceID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}

	canAdd, _, err := s.quota.CanAddSocialMediaAccounts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check social account quota: %w", err)
	}
	if !canAdd {
		return nil, ErrSocialQuotaExceeded
	}

	var account models.SocialMediaAccount
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE social_media_accounts SET workspace_id = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, user_id, workspace_id, platform, username, external_id, created_at, updated_at
	`, workspaceID, accountID).Scan(
		&account.ID, &account.UserID, &account.WorkspaceID, &account.Platform,
		&account.Username, &account.ExternalID, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSocialAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// RemoveSocialMediaAccount detaches the account from the workspace. The
// account itself is kept; only the foreign key is cleared.
func (s *WorkspaceService) RemoveSocialMediaAccount(ctx context.Context, workspaceID, accountID uuid.UUID) (*models.SocialMediaAccount, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM workspaces WHERE id = $1)`, workspaceID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrWorkspaceNotFound
	}

	var account models.SocialMediaAccount
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE social_media_accounts SET workspace_id = NULL, updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2
		RETURNING id, user_id, workspace_id, platform, username, external_id, created_at, updated_at
	`, accountID, workspaceID).Scan(
		&account.ID, &account.UserID, &account.WorkspaceID, &account.Platform,
		&account.Username, &account.ExternalID, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSocialAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// IsMember reports whether userID holds a role in the workspace.
func (s *WorkspaceService) IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM workspace_roles WHERE workspace_id = $1 AND user_id = $2)
	`, workspaceID, userID).Scan(&exists)
	return exists, err
}
