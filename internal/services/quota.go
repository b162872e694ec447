package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mkrstic/socialdeck-api/internal/database"
	"github.com/mkrstic/socialdeck-api/internal/models"
)

// EntitlementsProvider yields the subscription-derived caps for a team owner.
type EntitlementsProvider interface {
	Entitlements(ctx context.Context, userID uuid.UUID) (*models.Entitlements, error)
}

// QuotaService decides whether a team owner may create another workspace, add
// another member, or link another social account. Every method is a pure read
// and fails closed: a missing team, owner or subscription means "not allowed",
// never an error.
type QuotaService struct {
	db      *database.DB
	billing EntitlementsProvider
}

func NewQuotaService(db *database.DB, billing EntitlementsProvider) *QuotaService {
	return &QuotaService{db: db, billing: billing}
}

// CanCreateWorkspace reports whether the team may hold one more workspace.
func (s *QuotaService) CanCreateWorkspace(ctx context.Context, teamID uuid.UUID) (bool, error) {
	var ownerID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT owner_id FROM teams WHERE id = $1`, teamID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	ent, err := s.billing.Entitlements(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNoSubscription) {
			return false, nil
		}
		return false, err
	}

	var count int
	err = s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM workspaces WHERE team_id = $1`, teamID).Scan(&count)
	if err != nil {
		return false, err
	}

	return count < ent.MaxWorkspaces, nil
}

// CanAddUserToOwnedWorkspaces reports whether one more user may be added to
// any workspace of the team owned by ownerID. The count is the cardinality of
// the distinct member set across all of the owner's workspaces: a user present
// in two workspaces counts once.
func (s *QuotaService) CanAddUserToOwnedWorkspaces(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, ownerID).Scan(&exists)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	ent, err := s.billing.Entitlements(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNoSubscription) {
			return false, nil
		}
		return false, err
	}

	var total int
	err = s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT wr.user_id)
		FROM workspace_roles wr
		JOIN workspaces w ON wr.workspace_id = w.id
		JOIN teams t ON w.team_id = t.id
		WHERE t.owner_id = $1
	`, ownerID).Scan(&total)
	if err != nil {
		return false, err
	}

	return total < ent.MaxUsers, nil
}

// CanAddSocialMediaAccounts reports whether one more social account may be
// linked to any workspace of the team owned by ownerID, along with the current
// total of linked accounts (callers use the total for display).
func (s *QuotaService) CanAddSocialMediaAccounts(ctx context.Context, ownerID uuid.UUID) (bool, int, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, ownerID).Scan(&exists)
	if err != nil {
		return false, 0, err
	}
	if !exists {
		return false, 0, nil
	}

	ent, err := s.billing.Entitlements(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNoSubscription) {
			return false, 0, nil
		}
		return false, 0, err
	}

	var total int
	err = s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM social_media_accounts sma
		JOIN workspaces w ON sma.workspace_id = w.id
		JOIN teams t ON w.team_id = t.id
		WHERE t.owner_id = $1
	`, ownerID).Scan(&total)
	if err != nil {
		return false, 0, err
	}

	return total < ent.MaxSocials, total, nil
}
