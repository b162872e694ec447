package integration

import (
	"context"
	"testing"

	"github.com/mkrstic/socialdeck-api/internal/models"
	"github.com/mkrstic/socialdeck-api/internal/services"
	"github.com/mkrstic/socialdeck-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspaceService(tdb *testutil.TestDB) *services.WorkspaceService {
	billing := services.NewBillingService(tdb.DB)
	quota := services.NewQuotaService(tdb.DB, billing)
	return services.NewWorkspaceService(tdb.DB, quota)
}

func TestWorkspaceService_Integration_CreateWithinQuota(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newWorkspaceService(tdb)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	fixtures.CreateSubscriptionWithLimits(t, owner, 3, 5, 5)

	ws, err := svc.Create(ctx, team.ID, "Marketing")
	require.NoError(t, err)
	assert.NotEmpty(t, ws.ID)
	assert.Equal(t, "Marketing", ws.Name)
	assert.Equal(t, team.ID, ws.TeamID)
	assert.False(t, ws.IsDefault)
}

func TestWorkspaceService_Integration_CreateAtQuotaLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newWorkspaceService(tdb)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	// The default workspace already counts against the limit of 2.
	fixtures.CreateSubscriptionWithLimits(t, owner, 2, 5, 5)

	_, err := svc.Create(ctx, team.ID, "Second")
	require.NoError(t, err)

	_, err = svc.Create(ctx, team.ID, "Third")
	assert.ErrorIs(t, err, services.ErrWorkspaceQuotaExceeded)
}

func TestWorkspaceService_Integration_CreateWithoutSubscription(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newWorkspaceService(tdb)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)

	// No subscription means no entitlements, so creation is denied.
	_, err := svc.Create(ctx, team.ID, "Marketing")
	assert.ErrorIs(t, err, services.ErrWorkspaceQuotaExceeded)
}

func TestWorkspaceService_Integration_DeleteDefaultWorkspace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newWorkspaceService(tdb)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	defaultWs := fixtures.DefaultWorkspace(t, team)

	err := svc.Delete(ctx, defaultWs.ID)
	assert.ErrorIs(t, err, services.ErrDefaultWorkspace)

	// Non-default workspaces delete fine.
	extra := fixtures.CreateWorkspace(t, team)
	require.NoError(t, svc.Delete(ctx, extra.ID))
	_, err = svc.GetByID(ctx, extra.ID)
	assert.ErrorIs(t, err, services.ErrWorkspaceNotFound)
}

func TestWorkspaceService_Integration_AddUserLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newWorkspaceService(tdb)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	fixtures.CreateSubscriptionWithLimits(t, owner, 5, 5, 5)
	ws := fixtures.CreateWorkspace(t, team)
	member := fixtures.CreateUser(t)

	role, err := svc.AddUser(ctx, ws.ID, member.ID, models.RoleContentCreator)
	require.NoError(t, err)
	assert.Equal(t, models.RoleContentCreator, role.Role)
	assert.Equal(t, ws.ID, role.WorkspaceID)

	isMember, err := svc.IsMember(ctx, ws.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	// Same user twice in the same workspace is rejected.
	_, err = svc.AddUser(ctx, ws.ID, member.ID, models.RoleAnalyst)
	assert.ErrorIs(t, err, services.ErrUserAlreadyInWorkspace)

	updated, err := svc.UpdateUserRole(ctx, ws.ID, role.ID, models.RoleAdsManager)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdsManager, updated.Role)

	// The role can only be removed through the workspace it belongs to.
	other := fixtures.CreateWorkspace(t, team)
	err = svc.RemoveUser(ctx, other.ID, role.ID)
	assert.ErrorIs(t, err, services.ErrWorkspaceRoleNotFound)
	isMember, err = svc.IsMember(ctx, ws.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	require.NoError(t, svc.RemoveUser(ctx, ws.ID, role.ID))
	isMember, err = svc.IsMember(ctx, ws.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestWorkspaceService_Integration_AddUser_OwnerRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newWorkspaceService(tdb)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	fixtures.CreateSubscriptionWithLimits(t, owner, 5, 5, 5)
	ws := fixtures.CreateWorkspace(t, team)

	_, err := svc.AddUser(ctx, ws.ID, owner.ID, models.RoleSocialMediaManager)
	assert.ErrorIs(t, err, services.ErrOwnerInOwnWorkspace)
}

func TestWorkspaceService_Integration_AddUser_CrossTeamRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newWorkspaceService(tdb)
	ctx := context.Background()

	ownerA := fixtures.CreateUser(t)
	teamA := fixtures.CreateTeam(t, ownerA)
	fixtures.CreateSubscriptionWithLimits(t, ownerA, 5, 5, 5)
	wsA := fixtures.CreateWorkspace(t, teamA)

	ownerB := fixtures.CreateUser(t)
	teamB := fixtures.CreateTeam(t, ownerB)
	fixtures.CreateSubscriptionWithLimits(t, ownerB, 5, 5, 5)
	wsB := fixtures.CreateWorkspace(t, teamB)

	member := fixtures.CreateUser(t)
	_, err := svc.AddUser(ctx, wsA.ID, member.ID, models.RoleSocialMediaManager)
	require.NoError(t, err)

	_, err = svc.AddUser(ctx, wsB.ID, member.ID, models.RoleSocialMediaManager)
	assert.ErrorIs(t, err, services.ErrUserInOtherTeam)
}

func TestWorkspaceService_Integration_UserQuotaCountsDistinctUsers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newWorkspaceService(tdb)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	fixtures.CreateSubscriptionWithLimits(t, owner, 5, 2, 5)
	ws1 := fixtures.CreateWorkspace(t, team)
	ws2 := fixtures.CreateWorkspace(t, team)

	member := fixtures.CreateUser(t)
	_, err := svc.AddUser(ctx, ws1.ID, member.ID, models.RoleSocialMediaManager)
	require.NoError(t, err)

	// The same user in a second workspace does not consume another seat: the
	// distinct count stays at 1, so this passes against a limit of 2.
	_, err = svc.AddUser(ctx, ws2.ID, member.ID, models.RoleSocialMediaManager)
	require.NoError(t, err)

	// A second distinct user takes the last seat.
	other := fixtures.CreateUser(t)
	_, err = svc.AddUser(ctx, ws1.ID, other.ID, models.RoleSocialMediaManager)
	require.NoError(t, err)

	// A third distinct user exceeds the limit.
	third := fixtures.CreateUser(t)
	_, err = svc.AddUser(ctx, ws2.ID, third.ID, models.RoleSocialMediaManager)
	assert.ErrorIs(t, err, services.ErrUserQuotaExceeded)
}

func TestWorkspaceService_Integration_SocialAccountLinking(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newWorkspaceService(tdb)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	fixtures.CreateSubscriptionWithLimits(t, owner, 5, 5, 1)
	ws := fixtures.CreateWorkspace(t, team)

	first := fixtures.CreateSocialAccount(t, owner, nil)
	second := fixtures.CreateSocialAccount(t, owner, nil)

	linked, err := svc.AddSocialMediaAccount(ctx, ws.ID, first.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.WorkspaceID)
	assert.Equal(t, ws.ID, *linked.WorkspaceID)

	// Linked accounts count against the quota; unlinked ones do not.
	_, err = svc.AddSocialMediaAccount(ctx, ws.ID, second.ID)
	assert.ErrorIs(t, err, services.ErrSocialQuotaExceeded)

	// Unlinking frees the slot.
	detached, err := svc.RemoveSocialMediaAccount(ctx, ws.ID, first.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.WorkspaceID)

	_, err = svc.AddSocialMediaAccount(ctx, ws.ID, second.ID)
	require.NoError(t, err)

	accounts, err := svc.GetSocialMediaAccounts(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, second.ID, accounts[0].ID)
}

func TestWorkspaceService_Integration_ListByMember(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newWorkspaceService(tdb)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	fixtures.CreateSubscriptionWithLimits(t, owner, 5, 5, 5)
	ws1 := fixtures.CreateWorkspace(t, team)
	ws2 := fixtures.CreateWorkspace(t, team)

	member := fixtures.CreateUser(t)
	_, err := svc.AddUser(ctx, ws1.ID, member.ID, models.RoleSocialMediaManager)
	require.NoError(t, err)
	_, err = svc.AddUser(ctx, ws2.ID, member.ID, models.RoleAnalyst)
	require.NoError(t, err)

	workspaces, err := svc.ListByMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Len(t, workspaces, 2)

	// Owners see the whole team, members only their assignments.
	teamWorkspaces, err := svc.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, teamWorkspaces, 3) // default + two created
}
