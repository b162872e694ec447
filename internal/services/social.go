package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkrstic/socialdeck-api/internal/database"
	"github.com/mkrstic/socialdeck-api/internal/models"
	"github.com/mkrstic/socialdeck-api/internal/oauth"
)

type SocialAccountService struct {
	db *database.DB
}

func NewSocialAccountService(db *database.DB) *SocialAccountService {
	return &SocialAccountService{db: db}
}

// Connect stores a freshly authorized platform account for userID. The
// account starts unlinked; attaching it to a workspace is a separate,
// quota-checked operation. Reconnecting an already known account re-keys it
// to the connecting user.
func (s *SocialAccountService) Connect(ctx context.Context, userID uuid.UUID, info *oauth.AccountInfo) (*models.SocialMediaAccount, error) {
	var account models.SocialMediaAccount
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO social_media_accounts (user_id, platform, username, external_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (platform, external_id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			username = EXCLUDED.username,
			updated_at = NOW()
		RETURNING id, user_id, workspace_id, platform, username, external_id, created_at, updated_at
	`, userID, info.Platform, info.Username, info.ID).Scan(
		&account.ID, &account.UserID, &account.WorkspaceID, &account.Platform,
		&account.Username, &account.ExternalID, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect social media account: %w", err)
	}
	return &account, nil
}

func (s *SocialAccountService) GetByID(ctx context.Context, accountID uuid.UUID) (*models.SocialMediaAccount, error) {
	var account models.SocialMediaAccount
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, workspace_id, platform, username, external_id, created_at, updated_at
		FROM social_media_accounts WHERE id = $1
	`, accountID).Scan(
		&account.ID, &account.UserID, &account.WorkspaceID, &account.Platform,
		&account.Username, &account.ExternalID, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *SocialAccountService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SocialMediaAccount, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, user_id, workspace_id, platform, username, external_id, created_at, updated_at
		FROM social_media_accounts
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
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

// Disconnect removes the account entirely. Only the connecting user may do
// this; the caller enforces that by passing their own id.
func (s *SocialAccountService) Disconnect(ctx context.Context, accountID, userID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM social_media_accounts WHERE id = $1 AND user_id = $2
	`, accountID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSocialAccountNotFound
	}
	return nil
}
