package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkrstic/socialdeck-api/internal/database"
	"github.com/mkrstic/socialdeck-api/internal/models"
	"github.com/mkrstic/socialdeck-api/internal/services"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email: fmt.Sprintf("user%d@example.com", f.counter),
		Name:  fmt.Sprintf("Test User %d", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, password_hash, created_at, updated_at
	`, user.Email, user.Name, string(hash)).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// CreateTeam creates a test team for the owner together with its default
// workspace, mirroring what registration provisions.
func (f *Fixtures) CreateTeam(t *testing.T, owner *models.User) *models.Team {
	t.Helper()
	f.counter++

	team := &models.Team{
		Name:    fmt.Sprintf("Test Team %d", f.counter),
		OwnerID: owner.ID,
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, name, owner_id, created_at, updated_at
	`, team.Name, team.OwnerID).Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO workspaces (name, team_id, is_default)
		VALUES ($1, $2, TRUE)
	`, services.DefaultWorkspaceName, team.ID)
	if err != nil {
		t.Fatalf("failed to create default workspace: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return team
}

// DefaultWorkspace returns the default workspace of the team.
func (f *Fixtures) DefaultWorkspace(t *testing.T, team *models.Team) *models.Workspace {
	t.Helper()
	ctx := context.Background()

	var ws models.Workspace
	err := f.db.Pool.QueryRow(ctx, `
		SELECT id, name, team_id, is_default, created_at, updated_at
		FROM workspaces WHERE team_id = $1 AND is_default
	`, team.ID).Scan(&ws.ID, &ws.Name, &ws.TeamID, &ws.IsDefault, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to load default workspace: %v", err)
	}
	return &ws
}

// CreateWorkspace creates an additional test workspace in the team
func (f *Fixtures) CreateWorkspace(t *testing.T, team *models.Team, opts ...WorkspaceOption) *models.Workspace {
	t.Helper()
	f.counter++

	ws := &models.Workspace{
		Name:   fmt.Sprintf("Test Workspace %d", f.counter),
		TeamID: team.ID,
	}

	for _, opt := range opts {
		opt(ws)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO workspaces (name, team_id)
		VALUES ($1, $2)
		RETURNING id, name, team_id, is_default, created_at, updated_at
	`, ws.Name, ws.TeamID).Scan(&ws.ID, &ws.Name, &ws.TeamID, &ws.IsDefault, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	return ws
}

// WorkspaceOption configures a test workspace
type WorkspaceOption func(*models.Workspace)

// WithWorkspaceName sets the workspace name
func WithWorkspaceName(name string) WorkspaceOption {
	return func(w *models.Workspace) {
		w.Name = name
	}
}

// AddWorkspaceRole assigns the user a role in the workspace
func (f *Fixtures) AddWorkspaceRole(t *testing.T, workspace *models.Workspace, user *models.User, role string) *models.WorkspaceRole {
	t.Helper()
	ctx := context.Background()

	wr := &models.WorkspaceRole{}
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO workspace_roles (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, workspace_id, user_id, role, created_at, updated_at
	`, workspace.ID, user.ID, role).Scan(
		&wr.ID, &wr.WorkspaceID, &wr.UserID, &wr.Role, &wr.CreatedAt, &wr.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to add workspace role: %v", err)
	}
	return wr
}

// CreateSocialAccount creates a connected social media account for the user,
// optionally linked to a workspace.
func (f *Fixtures) CreateSocialAccount(t *testing.T, user *models.User, workspaceID *uuid.UUID) *models.SocialMediaAccount {
	t.Helper()
	f.counter++
	ctx := context.Background()

	account := &models.SocialMediaAccount{}
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO social_media_accounts (user_id, workspace_id, platform, username, external_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, workspace_id, platform, username, external_id, created_at, updated_at
	`, user.ID, workspaceID, models.PlatformInstagram,
		fmt.Sprintf("account%d", f.counter), fmt.Sprintf("ext-%d", f.counter)).Scan(
		&account.ID, &account.UserID, &account.WorkspaceID, &account.Platform,
		&account.Username, &account.ExternalID, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create social media account: %v", err)
	}
	return account
}

// CreateSubscriptionWithLimits gives the user an active subscription whose
// product carries the three quota feature ids.
func (f *Fixtures) CreateSubscriptionWithLimits(t *testing.T, user *models.User, maxWorkspaces, maxUsers, maxSocials int) {
	t.Helper()
	f.counter++
	ctx := context.Background()

	var productID uuid.UUID
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO products (product_id, active)
		VALUES ($1, TRUE)
		RETURNING id
	`, fmt.Sprintf("prod_test_%d", f.counter)).Scan(&productID)
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	featureIDs := []string{
		fmt.Sprintf("max_workspaces__%d", maxWorkspaces),
		fmt.Sprintf("max_users__%d", maxUsers),
		fmt.Sprintf("max_socials__%d", maxSocials),
	}
	for _, fid := range featureIDs {
		var featureID uuid.UUID
		err := f.db.Pool.QueryRow(ctx, `
			INSERT INTO features (feature_id)
			VALUES ($1)
			ON CONFLICT (feature_id) DO UPDATE SET feature_id = EXCLUDED.feature_id
			RETURNING id
		`, fid).Scan(&featureID)
		if err != nil {
			t.Fatalf("failed to create feature: %v", err)
		}
		_, err = f.db.Pool.Exec(ctx, `
			INSERT INTO product_features (product_id, feature_id)
			VALUES ($1, $2)
			ON CONFLICT (product_id, feature_id) DO NOTHING
		`, productID, featureID)
		if err != nil {
			t.Fatalf("failed to link feature: %v", err)
		}
	}

	var priceID uuid.UUID
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO prices (price_id, product_id, amount, currency, active)
		VALUES ($1, $2, 999, 'usd', TRUE)
		RETURNING id
	`, fmt.Sprintf("price_test_%d", f.counter), productID).Scan(&priceID)
	if err != nil {
		t.Fatalf("failed to create price: %v", err)
	}

	var subscriptionID uuid.UUID
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO subscriptions (user_id, subscription_id, status, cancel_at_period_end)
		VALUES ($1, $2, 'active', FALSE)
		RETURNING id
	`, user.ID, fmt.Sprintf("sub_test_%d", f.counter)).Scan(&subscriptionID)
	if err != nil {
		t.Fatalf("failed to create subscription: %v", err)
	}

	_, err = f.db.Pool.Exec(ctx, `
		INSERT INTO subscription_items (subscription_id, price_id, quantity)
		VALUES ($1, $2, 1)
	`, subscriptionID, priceID)
	if err != nil {
		t.Fatalf("failed to create subscription item: %v", err)
	}
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}
