package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkrstic/socialdeck-api/internal/models"
	"github.com/mkrstic/socialdeck-api/internal/oauth"
	"github.com/mkrstic/socialdeck-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	args := m.Called(ctx, email, name, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTeamService mocks the TeamService
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Provision(ctx context.Context, name string, ownerID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, name, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) GetByOwner(ctx context.Context, userID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) IsOwner(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

// MockWorkspaceService mocks the WorkspaceService
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Create(ctx context.Context, teamID uuid.UUID, name string) (*models.Workspace, error) {
	args := m.Called(ctx, teamID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) UpdateName(ctx context.Context, workspaceID uuid.UUID, newName string) (*models.Workspace, error) {
	args := m.Called(ctx, workspaceID, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

func (m *MockWorkspaceService) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Workspace, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) ListByMember(ctx context.Context, userID uuid.UUID) ([]models.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) GetUsers(ctx context.Context, workspaceID uuid.UUID) ([]models.User, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockWorkspaceService) ListUserIDs(ctx context.Context, workspaceID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockWorkspaceService) AddUser(ctx context.Context, workspaceID, userID uuid.UUID, role string) (*models.WorkspaceRole, error) {
	args := m.Called(ctx, workspaceID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkspaceRole), args.Error(1)
}

func (m *MockWorkspaceService) RemoveUser(ctx context.Context, workspaceID, workspaceRoleID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, workspaceRoleID)
	return args.Error(0)
}

func (m *MockWorkspaceService) UpdateUserRole(ctx context.Context, workspaceID, workspaceRoleID uuid.UUID, role string) (*models.WorkspaceRole, error) {
	args := m.Called(ctx, workspaceID, workspaceRoleID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkspaceRole), args.Error(1)
}

func (m *MockWorkspaceService) GetSocialMediaAccounts(ctx context.Context, workspaceID uuid.UUID) ([]models.SocialMediaAccount, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SocialMediaAccount), args.Error(1)
}

func (m *MockWorkspaceService) AddSocialMediaAccount(ctx context.Context, workspaceID, accountID uuid.UUID) (*models.SocialMediaAccount, error) {
	args := m.Called(ctx, workspaceID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SocialMediaAccount), args.Error(1)
}

func (m *MockWorkspaceService) RemoveSocialMediaAccount(ctx context.Context, workspaceID, accountID uuid.UUID) (*models.SocialMediaAccount, error) {
	args := m.Called(ctx, workspaceID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SocialMediaAccount), args.Error(1)
}

func (m *MockWorkspaceService) IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, workspaceID, userID)
	return args.Bool(0), args.Error(1)
}

// MockQuotaService mocks the QuotaService
type MockQuotaService struct {
	mock.Mock
}

func (m *MockQuotaService) CanCreateWorkspace(ctx context.Context, teamID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teamID)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuotaService) CanAddUserToOwnedWorkspaces(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuotaService) CanAddSocialMediaAccounts(ctx context.Context, ownerID uuid.UUID) (bool, int, error) {
	args := m.Called(ctx, ownerID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

// MockBillingService mocks the BillingService
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) Entitlements(ctx context.Context, userID uuid.UUID) (*models.Entitlements, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entitlements), args.Error(1)
}

func (m *MockBillingService) UpsertProduct(ctx context.Context, productID string, active bool) (*models.Product, error) {
	args := m.Called(ctx, productID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockBillingService) UpsertFeature(ctx context.Context, productID uuid.UUID, featureID string) (*models.Feature, error) {
	args := m.Called(ctx, productID, featureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feature), args.Error(1)
}

func (m *MockBillingService) UpsertPrice(ctx context.Context, priceID string, productID uuid.UUID, amount int64, currency string, active bool) (*models.Price, error) {
	args := m.Called(ctx, priceID, productID, amount, currency, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Price), args.Error(1)
}

func (m *MockBillingService) UpsertSubscription(ctx context.Context, userID uuid.UUID, subscriptionID, status string, cancelAtPeriodEnd bool) (*models.Subscription, error) {
	args := m.Called(ctx, userID, subscriptionID, status, cancelAtPeriodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockBillingService) UpsertSubscriptionItem(ctx context.Context, subscriptionID, priceID uuid.UUID, quantity int) (*models.SubscriptionItem, error) {
	args := m.Called(ctx, subscriptionID, priceID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionItem), args.Error(1)
}

// MockSocialAccountService mocks the SocialAccountService
type MockSocialAccountService struct {
	mock.Mock
}

func (m *MockSocialAccountService) Connect(ctx context.Context, userID uuid.UUID, info *oauth.AccountInfo) (*models.SocialMediaAccount, error) {
	args := m.Called(ctx, userID, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SocialMediaAccount), args.Error(1)
}

func (m *MockSocialAccountService) GetByID(ctx context.Context, accountID uuid.UUID) (*models.SocialMediaAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SocialMediaAccount), args.Error(1)
}

func (m *MockSocialAccountService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SocialMediaAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SocialMediaAccount), args.Error(1)
}

func (m *MockSocialAccountService) Disconnect(ctx context.Context, accountID, userID uuid.UUID) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockJWTService mocks the JWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error) {
	args := m.Called(userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcome(to, name, teamName string) error {
	args := m.Called(to, name, teamName)
	return args.Error(0)
}
