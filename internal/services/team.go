package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mkrstic/socialdeck-api/internal/database"
	"github.com/mkrstic/socialdeck-api/internal/models"
)

var ErrAlreadyOwnsTeam = errors.New("user already owns a team")

// DefaultWorkspaceName is the name of the workspace provisioned with a new
// team. That workspace carries is_default and cannot be deleted.
const DefaultWorkspaceName = "Default Workspace"

type TeamService struct {
	db *database.DB
}

func NewTeamService(db *database.DB) *TeamService {
	return &TeamService{db: db}
}

// Provision creates a team for ownerID together with its default workspace,
// in a single transaction. Every team starts with exactly one workspace.
func (s *TeamService) Provision(ctx context.Context, name string, ownerID uuid.UUID) (*models.Team, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var team models.Team
	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, name, owner_id, created_at, updated_at
	`, name, ownerID).Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyOwnsTeam
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO workspaces (name, team_id, is_default)
		VALUES ($1, $2, TRUE)
	`, DefaultWorkspaceName, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create default workspace: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &team, nil
}

func (s *TeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, owner_id, created_at, updated_at
		FROM teams WHERE id = $1
	`, teamID).Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetByOwner returns the team owned by userID, or pgx.ErrNoRows if the user
// does not own one.
func (s *TeamService) GetByOwner(ctx context.Context, userID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, owner_id, created_at, updated_at
		FROM teams WHERE owner_id = $1
	`, userID).Scan(&team.ID, &team.Name, &team.OwnerID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) IsOwner(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var ownerID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT owner_id FROM teams WHERE id = $1`, teamID).Scan(&ownerID)
	if err != nil {
		return false, err
	}
	return ownerID == userID, nil
}
