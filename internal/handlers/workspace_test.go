package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/mkrstic/socialdeck-api/internal/middleware"
	"github.com/mkrstic/socialdeck-api/internal/models"
	"github.com/mkrstic/socialdeck-api/internal/services"
	"github.com/mkrstic/socialdeck-api/pkg/dto"
	"github.com/mkrstic/socialdeck-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupWorkspaceTest(t *testing.T) (*testutil.MockWorkspaceService, *testutil.MockTeamService, http.Handler, *services.JWTService) {
	t.Helper()
	mockWorkspaceService := new(testutil.MockWorkspaceService)
	mockTeamService := new(testutil.MockTeamService)
	handler := NewWorkspaceHandler(mockWorkspaceService, mockTeamService)
	jwtSvc := newTestJWTService()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/workspaces", handler.List)
	app.Post("/workspaces", handler.Create)
	app.Get("/workspaces/:workspaceId", handler.Get)
	app.Patch("/workspaces/:workspaceId", handler.Update)
	app.Delete("/workspaces/:workspaceId", handler.Delete)
	app.Get("/workspaces/:workspaceId/users", handler.GetUsers)
	app.Post("/workspaces/:workspaceId/add-user", handler.AddUser)
	app.Post("/workspaces/:workspaceId/remove-user", handler.RemoveUser)
	app.Post("/workspaces/:workspaceId/update-user-role", handler.UpdateUserRole)
	app.Post("/workspaces/:workspaceId/add-social-media-account", handler.AddSocialAccount)
	app.Post("/workspaces/:workspaceId/remove-social-media-account", handler.RemoveSocialAccount)

	return mockWorkspaceService, mockTeamService, app, jwtSvc
}

func jsonRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestWorkspaceHandler_List_AsOwner(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws1 := models.Workspace{ID: uuid.New(), Name: "Default Workspace", TeamID: teamID, IsDefault: true}
	ws2 := models.Workspace{ID: uuid.New(), Name: "Marketing", TeamID: teamID}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("ListByTeam", mock.Anything, teamID).Return([]models.Workspace{ws1, ws2}, nil)
	mockWorkspaceService.On("ListUserIDs", mock.Anything, ws1.ID).Return([]uuid.UUID{}, nil)
	mockWorkspaceService.On("ListUserIDs", mock.Anything, ws2.ID).Return([]uuid.UUID{uuid.New()}, nil)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, jsonRequest(t, http.MethodGet, "/workspaces", nil, token))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.WorkspaceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response, 2)
	assert.True(t, response[0].IsDefault)
	assert.Len(t, response[1].Users, 1)

	mockWorkspaceService.AssertExpectations(t)
	mockTeamService.AssertExpectations(t)
}

func TestWorkspaceHandler_List_AsMember(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	ws := models.Workspace{ID: uuid.New(), Name: "Marketing", TeamID: uuid.New()}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(nil, pgx.ErrNoRows)
	mockWorkspaceService.On("ListByMember", mock.Anything, userID).Return([]models.Workspace{ws}, nil)
	mockWorkspaceService.On("ListUserIDs", mock.Anything, ws.ID).Return([]uuid.UUID{userID}, nil)

	token := generateTestToken(t, jwtSvc, userID, "member@example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, jsonRequest(t, http.MethodGet, "/workspaces", nil, token))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.WorkspaceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response, 1)

	mockWorkspaceService.AssertExpectations(t)
	mockTeamService.AssertExpectations(t)
}

func TestWorkspaceHandler_Get_OutOfScope(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	foreign := &models.Workspace{ID: workspaceID, Name: "Foreign", TeamID: uuid.New()}

	// A workspace from another tenant is indistinguishable from a missing one.
	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(foreign, nil)
	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(nil, pgx.ErrNoRows)
	mockWorkspaceService.On("IsMember", mock.Anything, workspaceID, userID).Return(false, nil)

	token := generateTestToken(t, jwtSvc, userID, "stranger@example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, jsonRequest(t, http.MethodGet, "/workspaces/"+workspaceID.String(), nil, token))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Workspace not found.")

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_Get_AsMember(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	ws := &models.Workspace{ID: workspaceID, Name: "Marketing", TeamID: uuid.New()}

	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(ws, nil)
	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(nil, pgx.ErrNoRows)
	mockWorkspaceService.On("IsMember", mock.Anything, workspaceID, userID).Return(true, nil)
	mockWorkspaceService.On("ListUserIDs", mock.Anything, workspaceID).Return([]uuid.UUID{userID}, nil)

	token := generateTestToken(t, jwtSvc, userID, "member@example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, jsonRequest(t, http.MethodGet, "/workspaces/"+workspaceID.String(), nil, token))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.WorkspaceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, workspaceID, response.ID)

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_Create_Success(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws := &models.Workspace{ID: uuid.New(), Name: "Marketing", TeamID: teamID}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("Create", mock.Anything, teamID, "Marketing").Return(ws, nil)
	mockWorkspaceService.On("ListUserIDs", mock.Anything, ws.ID).Return([]uuid.UUID{}, nil)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/workspaces", dto.CreateWorkspaceRequest{Name: "Marketing"}, token))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.WorkspaceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, ws.ID, response.ID)
	assert.Equal(t, "Marketing", response.Name)
	assert.Empty(t, response.Users)

	mockWorkspaceService.AssertExpectations(t)
	mockTeamService.AssertExpectations(t)
}

func TestWorkspaceHandler_Create_QuotaExceeded(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("Create", mock.Anything, teamID, "One Too Many").
		Return(nil, services.ErrWorkspaceQuotaExceeded)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/workspaces", dto.CreateWorkspaceRequest{Name: "One Too Many"}, token))

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var response dto.DetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "User is not allowed to create new workspace.", response.Detail)

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_Create_NotOwner(t *testing.T) {
	_, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(nil, pgx.ErrNoRows)

	token := generateTestToken(t, jwtSvc, userID, "member@example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/workspaces", dto.CreateWorkspaceRequest{Name: "Marketing"}, token))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "only team owners can manage workspaces")

	mockTeamService.AssertExpectations(t)
}

func TestWorkspaceHandler_Update_Success(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	workspaceID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws := &models.Workspace{ID: workspaceID, Name: "Old", TeamID: teamID}
	renamed := &models.Workspace{ID: workspaceID, Name: "Renamed", TeamID: teamID}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(ws, nil)
	mockWorkspaceService.On("UpdateName", mock.Anything, workspaceID, "Renamed").Return(renamed, nil)
	mockWorkspaceService.On("ListUserIDs", mock.Anything, workspaceID).Return([]uuid.UUID{}, nil)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, jsonRequest(t, http.MethodPatch, "/workspaces/"+workspaceID.String(), dto.UpdateWorkspaceRequest{Name: "Renamed"}, token))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.WorkspaceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Renamed", response.Name)

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_Update_ForeignWorkspace(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	workspaceID := uuid.New()
	team := &models.Team{ID: uuid.New(), OwnerID: userID}
	foreign := &models.Workspace{ID: workspaceID, Name: "Foreign", TeamID: uuid.New()}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(foreign, nil)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, jsonRequest(t, http.MethodPatch, "/workspaces/"+workspaceID.String(), dto.UpdateWorkspaceRequest{Name: "Hijack"}, token))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Workspace not found.")

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_Delete_Success(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	workspaceID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws := &models.Workspace{ID: workspaceID, Name: "Extra", TeamID: teamID}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(ws, nil)
	mockWorkspaceService.On("Delete", mock.Anything, workspaceID).Return(nil)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, jsonRequest(t, http.MethodDelete, "/workspaces/"+workspaceID.String(), nil, token))

	assert.Equal(t, http.StatusNoContent, rec.Code)

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_Delete_DefaultWorkspace(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	workspaceID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws := &models.Workspace{ID: workspaceID, Name: "Default Workspace", TeamID: teamID, IsDefault: true}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(ws, nil)
	mockWorkspaceService.On("Delete", mock.Anything, workspaceID).Return(services.ErrDefaultWorkspace)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, jsonRequest(t, http.MethodDelete, "/workspaces/"+workspaceID.String(), nil, token))

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var response dto.DetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Cannot delete the initial workspace.", response.Detail)

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_AddUser_Success(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	workspaceID := uuid.New()
	targetID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws := &models.Workspace{ID: workspaceID, Name: "Marketing", TeamID: teamID}
	role := &models.WorkspaceRole{ID: uuid.New(), WorkspaceID: workspaceID, UserID: targetID, Role: models.RoleAnalyst}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(ws, nil)
	mockWorkspaceService.On("AddUser", mock.Anything, workspaceID, targetID, models.RoleAnalyst).Return(role, nil)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	body := dto.AddUserRequest{UserID: targetID, Role: models.RoleAnalyst}
	app.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/workspaces/"+workspaceID.String()+"/add-user", body, token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User added to workspace successfully.")

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_AddUser_CrossTeam(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	workspaceID := uuid.New()
	targetID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws := &models.Workspace{ID: workspaceID, Name: "Marketing", TeamID: teamID}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(ws, nil)
	mockWorkspaceService.On("AddUser", mock.Anything, workspaceID, targetID, models.RoleAnalyst).
		Return(nil, services.ErrUserInOtherTeam)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	body := dto.AddUserRequest{UserID: targetID, Role: models.RoleAnalyst}
	app.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/workspaces/"+workspaceID.String()+"/add-user", body, token))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response dto.DetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "The user is already in another team's workspace and cannot be added.", response.Detail)

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_AddUser_QuotaExceeded(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	workspaceID := uuid.New()
	targetID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws := &models.Workspace{ID: workspaceID, Name: "Marketing", TeamID: teamID}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(ws, nil)
	mockWorkspaceService.On("AddUser", mock.Anything, workspaceID, targetID, models.RoleContentCreator).
		Return(nil, services.ErrUserQuotaExceeded)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	body := dto.AddUserRequest{UserID: targetID, Role: models.RoleContentCreator}
	app.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/workspaces/"+workspaceID.String()+"/add-user", body, token))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot add more users to workspaces owned by this user.")

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_RemoveUser_Success(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	workspaceID := uuid.New()
	roleID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws := &models.Workspace{ID: workspaceID, Name: "Marketing", TeamID: teamID}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(ws, nil)
	mockWorkspaceService.On("RemoveUser", mock.Anything, workspaceID, roleID).Return(nil)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	body := dto.RemoveUserRequest{WorkspaceRoleID: roleID}
	app.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/workspaces/"+workspaceID.String()+"/remove-user", body, token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User removed from workspace successfully.")

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_UpdateUserRole_InvalidRole(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	workspaceID := uuid.New()
	roleID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws := &models.Workspace{ID: workspaceID, Name: "Marketing", TeamID: teamID}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(ws, nil)
	mockWorkspaceService.On("UpdateUserRole", mock.Anything, workspaceID, roleID, "SUPERVISOR").
		Return(nil, services.ErrInvalidRole)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	body := dto.UpdateUserRoleRequest{WorkspaceRoleID: roleID, Role: "SUPERVISOR"}
	app.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/workspaces/"+workspaceID.String()+"/update-user-role", body, token))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid role.")

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_AddSocialAccount_QuotaExceeded(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	workspaceID := uuid.New()
	accountID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws := &models.Workspace{ID: workspaceID, Name: "Marketing", TeamID: teamID}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(ws, nil)
	mockWorkspaceService.On("AddSocialMediaAccount", mock.Anything, workspaceID, accountID).
		Return(nil, services.ErrSocialQuotaExceeded)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	body := dto.WorkspaceSocialAccountRequest{AccountID: accountID}
	app.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/workspaces/"+workspaceID.String()+"/add-social-media-account", body, token))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot add more social media accounts to this owner's workspaces.")

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_RemoveSocialAccount_Success(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	workspaceID := uuid.New()
	accountID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws := &models.Workspace{ID: workspaceID, Name: "Marketing", TeamID: teamID}
	detached := &models.SocialMediaAccount{ID: accountID, UserID: userID, Platform: models.PlatformInstagram}

	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(ws, nil)
	mockWorkspaceService.On("RemoveSocialMediaAccount", mock.Anything, workspaceID, accountID).Return(detached, nil)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	body := dto.WorkspaceSocialAccountRequest{AccountID: accountID}
	app.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/workspaces/"+workspaceID.String()+"/remove-social-media-account", body, token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Social media account removed from workspace successfully.")

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_GetUsers_Success(t *testing.T) {
	mockWorkspaceService, mockTeamService, app, jwtSvc := setupWorkspaceTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	workspaceID := uuid.New()
	team := &models.Team{ID: teamID, OwnerID: userID}
	ws := &models.Workspace{ID: workspaceID, Name: "Marketing", TeamID: teamID}
	users := []models.User{
		{ID: uuid.New(), Email: "a@example.com", Name: "A"},
		{ID: uuid.New(), Email: "b@example.com", Name: "B"},
	}

	mockWorkspaceService.On("GetByID", mock.Anything, workspaceID).Return(ws, nil)
	mockTeamService.On("GetByOwner", mock.Anything, userID).Return(team, nil)
	mockWorkspaceService.On("GetUsers", mock.Anything, workspaceID).Return(users, nil)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, jsonRequest(t, http.MethodGet, "/workspaces/"+workspaceID.String()+"/users", nil, token))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response, 2)

	mockWorkspaceService.AssertExpectations(t)
}

func TestWorkspaceHandler_NotAuthenticated(t *testing.T) {
	_, _, app, _ := setupWorkspaceTest(t)

	req := httptest.NewRequest(http.MethodGet, "/workspaces", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
