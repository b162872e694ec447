package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkrstic/socialdeck-api/internal/models"
	"github.com/mkrstic/socialdeck-api/internal/oauth"
	"github.com/mkrstic/socialdeck-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, email, name, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
}

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	Provision(ctx context.Context, name string, ownerID uuid.UUID) (*models.Team, error)
	GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error)
	GetByOwner(ctx context.Context, userID uuid.UUID) (*models.Team, error)
	IsOwner(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
}

// WorkspaceServiceInterface defines the methods used by handlers from WorkspaceService
type WorkspaceServiceInterface interface {
	Create(ctx context.Context, teamID uuid.UUID, name string) (*models.Workspace, error)
	GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error)
	UpdateName(ctx context.Context, workspaceID uuid.UUID, newName string) (*models.Workspace, error)
	Delete(ctx context.Context, workspaceID uuid.UUID) error
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Workspace, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error)
	GetUsers(ctx context.Context, workspaceID uuid.UUID) ([]models.User, error)
	ListUserIDs(ctx context.Context, workspaceID uuid.UUID) ([]uuid.UUID, error)
	AddUser(ctx context.Context, workspaceID, userID uuid.UUID, role string) (*models.WorkspaceRole, error)
	RemoveUser(ctx context.Context, workspaceID, workspaceRoleID uuid.UUID) error
	UpdateUserRole(ctx context.Context, workspaceID, workspaceRoleID uuid.UUID, role string) (*models.WorkspaceRole, error)
	GetSocialMediaAccounts(ctx context.Context, workspaceID uuid.UUID) ([]models.SocialMediaAccount, error)
	AddSocialMediaAccount(ctx context.Context, workspaceID, accountID uuid.UUID) (*models.SocialMediaAccount, error)
	RemoveSocialMediaAccount(ctx context.Context, workspaceID, accountID uuid.UUID) (*models.SocialMediaAccount, error)
	IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
}

// QuotaServiceInterface defines the methods used by handlers from QuotaService
type QuotaServiceInterface interface {
	CanCreateWorkspace(ctx context.Context, teamID uuid.UUID) (bool, error)
	CanAddUserToOwnedWorkspaces(ctx context.Context, ownerID uuid.UUID) (bool, error)
	CanAddSocialMediaAccounts(ctx context.Context, ownerID uuid.UUID) (bool, int, error)
}

// BillingServiceInterface defines the methods used by handlers from BillingService
type BillingServiceInterface interface {
	Entitlements(ctx context.Context, userID uuid.UUID) (*models.Entitlements, error)
	UpsertProduct(ctx context.Context, productID string, active bool) (*models.Product, error)
	UpsertFeature(ctx context.Context, productID uuid.UUID, featureID string) (*models.Feature, error)
	UpsertPrice(ctx context.Context, priceID string, productID uuid.UUID, amount int64, currency string, active bool) (*models.Price, error)
	UpsertSubscription(ctx context.Context, userID uuid.UUID, subscriptionID, status string, cancelAtPeriodEnd bool) (*models.Subscription, error)
	UpsertSubscriptionItem(ctx context.Context, subscriptionID, priceID uuid.UUID, quantity int) (*models.SubscriptionItem, error)
}

// SocialAccountServiceInterface defines the methods used by handlers from SocialAccountService
type SocialAccountServiceInterface interface {
	Connect(ctx context.Context, userID uuid.UUID, info *oauth.AccountInfo) (*models.SocialMediaAccount, error)
	GetByID(ctx context.Context, accountID uuid.UUID) (*models.SocialMediaAccount, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SocialMediaAccount, error)
	Disconnect(ctx context.Context, accountID, userID uuid.UUID) error
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	SendWelcome(to, name, teamName string) error
}
