package handlers

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/mkrstic/socialdeck-api/internal/middleware"
	"github.com/mkrstic/socialdeck-api/internal/models"
	"github.com/mkrstic/socialdeck-api/internal/services"
	"github.com/mkrstic/socialdeck-api/pkg/dto"
)

type WorkspaceHandler struct {
	workspaceService WorkspaceServiceInterface
	teamService      TeamServiceInterface
}

func NewWorkspaceHandler(workspaceService WorkspaceServiceInterface, teamService TeamServiceInterface) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		teamService:      teamService,
	}
}

// visibleWorkspace resolves a workspace id within the caller's scope: team
// owners see every workspace of their team, members see the workspaces they
// hold a role in. Anything else is reported as not found, identically to a
// nonexistent id, so other tenants' workspace ids are not probeable.
func (h *WorkspaceHandler) visibleWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) (*models.Workspace, error) {
	workspace, err := h.workspaceService.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, services.ErrWorkspaceNotFound
	}

	team, err := h.teamService.GetByOwner(ctx, userID)
	if err == nil && team.ID == workspace.TeamID {
		return workspace, nil
	}

	isMember, err := h.workspaceService.IsMember(ctx, workspaceID, userID)
	if err == nil && isMember {
		return workspace, nil
	}

	return nil, services.ErrWorkspaceNotFound
}

// ownedWorkspace resolves a workspace id for a mutating operation. The caller
// must own a team (403 otherwise) and the workspace must belong to it (404
// otherwise, per the scope rule).
func (h *WorkspaceHandler) ownedWorkspace(c *drift.Context, ctx context.Context, userID uuid.UUID) (*models.Workspace, bool) {
	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return nil, false
	}

	team, err := h.teamService.GetByOwner(ctx, userID)
	if err != nil {
		c.Forbidden("only team owners can manage workspaces")
		return nil, false
	}

	workspace, err := h.workspaceService.GetByID(ctx, workspaceID)
	if err != nil || workspace.TeamID != team.ID {
		_ = c.JSON(404, dto.DetailResponse{Detail: services.ErrWorkspaceNotFound.Error()})
		return nil, false
	}

	return workspace, true
}

func (h *WorkspaceHandler) workspaceResponse(ctx context.Context, workspace *models.Workspace) (*dto.WorkspaceResponse, error) {
	users, err := h.workspaceService.ListUserIDs(ctx, workspace.ID)
	if err != nil {
		return nil, err
	}
	return &dto.WorkspaceResponse{
		ID:        workspace.ID,
		Name:      workspace.Name,
		Users:     users,
		Team:      workspace.TeamID,
		IsDefault: workspace.IsDefault,
		CreatedAt: workspace.CreatedAt,
		UpdatedAt: workspace.UpdatedAt,
	}, nil
}

func (h *WorkspaceHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	var workspaces []models.Workspace
	team, err := h.teamService.GetByOwner(ctx, userID)
	if err == nil {
		workspaces, err = h.workspaceService.ListByTeam(ctx, team.ID)
	} else {
		workspaces, err = h.workspaceService.ListByMember(ctx, userID)
	}
	if err != nil {
		c.InternalServerError("failed to list workspaces")
		return
	}

	response := make([]dto.WorkspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		resp, err := h.workspaceResponse(ctx, &workspaces[i])
		if err != nil {
			c.InternalServerError("failed to list workspaces")
			return
		}
		response = append(response, *resp)
	}

	_ = c.JSON(200, response)
}

func (h *WorkspaceHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	ctx := context.Background()

	workspace, err := h.visibleWorkspace(ctx, workspaceID, userID)
	if err != nil {
		_ = c.JSON(404, dto.DetailResponse{Detail: err.Error()})
		return
	}

	resp, err := h.workspaceResponse(ctx, workspace)
	if err != nil {
		c.InternalServerError("failed to get workspace")
		return
	}

	_ = c.JSON(200, resp)
}

func (h *WorkspaceHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := context.Background()

	team, err := h.teamService.GetByOwner(ctx, userID)
	if err != nil {
		c.Forbidden("only team owners can manage workspaces")
		return
	}

	workspace, err := h.workspaceService.Create(ctx, team.ID, req.Name)
	if err != nil {
		respondWorkspaceError(c, err, 403)
		return
	}

	resp, err := h.workspaceResponse(ctx, workspace)
	if err != nil {
		c.InternalServerError("failed to create workspace")
		return
	}

	_ = c.JSON(201, resp)
}

func (h *WorkspaceHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	workspace, ok := h.ownedWorkspace(c, ctx, userID)
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	updated, err := h.workspaceService.UpdateName(ctx, workspace.ID, req.Name)
	if err != nil {
		respondWorkspaceError(c, err, 403)
		return
	}

	resp, err := h.workspaceResponse(ctx, updated)
	if err != nil {
		c.InternalServerError("failed to update workspace")
		return
	}

	_ = c.JSON(200, resp)
}

func (h *WorkspaceHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	workspace, ok := h.ownedWorkspace(c, ctx, userID)
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(ctx, workspace.ID); err != nil {
		respondWorkspaceError(c, err, 403)
		return
	}

	_ = c.JSON(204, dto.DetailResponse{Detail: "Workspace deleted successfully."})
}

func (h *WorkspaceHandler) GetUsers(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	ctx := context.Background()

	if _, err := h.visibleWorkspace(ctx, workspaceID, userID); err != nil {
		_ = c.JSON(404, dto.DetailResponse{Detail: err.Error()})
		return
	}

	users, err := h.workspaceService.GetUsers(ctx, workspaceID)
	if err != nil {
		c.InternalServerError("failed to get workspace users")
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i, u := range users {
		response[i] = dto.UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
	}

	_ = c.JSON(200, response)
}

func (h *WorkspaceHandler) AddUser(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	workspace, ok := h.ownedWorkspace(c, ctx, userID)
	if !ok {
		return
	}

	var req dto.AddUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if _, err := h.workspaceService.AddUser(ctx, workspace.ID, req.UserID, req.Role); err != nil {
		respondWorkspaceError(c, err, 400)
		return
	}

	_ = c.JSON(200, dto.DetailResponse{Detail: "User added to workspace successfully."})
}

func (h *WorkspaceHandler) RemoveUser(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	workspace, ok := h.ownedWorkspace(c, ctx, userID)
	if !ok {
		return
	}

	var req dto.RemoveUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := h.workspaceService.RemoveUser(ctx, workspace.ID, req.WorkspaceRoleID); err != nil {
		respondWorkspaceError(c, err, 400)
		return
	}

	_ = c.JSON(200, dto.DetailResponse{Detail: "User removed from workspace successfully."})
}

func (h *WorkspaceHandler) UpdateUserRole(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	workspace, ok := h.ownedWorkspace(c, ctx, userID)
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if _, err := h.workspaceService.UpdateUserRole(ctx, workspace.ID, req.WorkspaceRoleID, req.Role); err != nil {
		respondWorkspaceError(c, err, 400)
		return
	}

	_ = c.JSON(200, dto.DetailResponse{Detail: "User role updated successfully."})
}

func (h *WorkspaceHandler) GetSocialAccounts(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.BadRequest("invalid workspace id")
		return
	}

	ctx := context.Background()

	if _, err := h.visibleWorkspace(ctx, workspaceID, userID); err != nil {
		_ = c.JSON(404, dto.DetailResponse{Detail: err.Error()})
		return
	}

	accounts, err := h.workspaceService.GetSocialMediaAccounts(ctx, workspaceID)
	if err != nil {
		c.InternalServerError("failed to get social media accounts")
		return
	}

	response := make([]dto.SocialAccountResponse, len(accounts))
	for i, a := range accounts {
		response[i] = dto.SocialAccountResponse{
			ID:          a.ID,
			WorkspaceID: a.WorkspaceID,
			Platform:    a.Platform,
			Username:    a.Username,
			CreatedAt:   a.CreatedAt,
		}
	}

	_ = c.JSON(200, response)
}

func (h *WorkspaceHandler) AddSocialAccount(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	workspace, ok := h.ownedWorkspace(c, ctx, userID)
	if !ok {
		return
	}

	var req dto.WorkspaceSocialAccountRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if _, err := h.workspaceService.AddSocialMediaAccount(ctx, workspace.ID, req.AccountID); err != nil {
		respondWorkspaceError(c, err, 400)
		return
	}

	_ = c.JSON(200, dto.DetailResponse{Detail: "Social media account added to workspace successfully."})
}

func (h *WorkspaceHandler) RemoveSocialAccount(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	workspace, ok := h.ownedWorkspace(c, ctx, userID)
	if !ok {
		return
	}

	var req dto.WorkspaceSocialAccountRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if _, err := h.workspaceService.RemoveSocialMediaAccount(ctx, workspace.ID, req.AccountID); err != nil {
		respondWorkspaceError(c, err, 400)
		return
	}

	_ = c.JSON(200, dto.DetailResponse{Detail: "Social media account removed from workspace successfully."})
}

// respondWorkspaceError writes a domain rejection as {detail: message} with
// rejectStatus, or a 500 for unexpected faults. The rejection messages are
// contract; see the sentinel errors in the services package.
func respondWorkspaceError(c *drift.Context, err error, rejectStatus int) {
	for _, domainErr := range []error{
		services.ErrWorkspaceQuotaExceeded,
		services.ErrWorkspaceNameEmpty,
		services.ErrWorkspaceNotFound,
		services.ErrDefaultWorkspace,
		services.ErrInvalidRole,
		services.ErrUserQuotaExceeded,
		services.ErrUserNotFound,
		services.ErrWorkspaceRoleNotFound,
		services.ErrOwnerInOwnWorkspace,
		services.ErrUserInOtherTeam,
		services.ErrUserAlreadyInWorkspace,
		services.ErrSocialQuotaExceeded,
		services.ErrSocialAccountNotFound,
	} {
		if errors.Is(err, domainErr) {
			_ = c.JSON(rejectStatus, dto.DetailResponse{Detail: domainErr.Error()})
			return
		}
	}
	c.InternalServerError("internal server error")
}
