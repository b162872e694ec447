package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/mkrstic/socialdeck-api/internal/middleware"
	"github.com/mkrstic/socialdeck-api/internal/services"
	"github.com/mkrstic/socialdeck-api/pkg/dto"
)

type TeamHandler struct {
	teamService    TeamServiceInterface
	quotaService   QuotaServiceInterface
	billingService BillingServiceInterface
}

func NewTeamHandler(teamService TeamServiceInterface, quotaService QuotaServiceInterface, billingService BillingServiceInterface) *TeamHandler {
	return &TeamHandler{
		teamService:    teamService,
		quotaService:   quotaService,
		billingService: billingService,
	}
}

func (h *TeamHandler) GetMyTeam(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	team, err := h.teamService.GetByOwner(context.Background(), userID)
	if err != nil {
		c.NotFound("team not found")
		return
	}

	_ = c.JSON(200, dto.TeamResponse{
		ID:        team.ID,
		Name:      team.Name,
		OwnerID:   team.OwnerID,
		CreatedAt: team.CreatedAt,
	})
}

// GetUsage reports the owner's subscription limits alongside current social
// account usage, for plan pages and upgrade prompts.
func (h *TeamHandler) GetUsage(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	if _, err := h.teamService.GetByOwner(ctx, userID); err != nil {
		c.NotFound("team not found")
		return
	}

	ent, err := h.billingService.Entitlements(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrNoSubscription) {
			_ = c.JSON(200, dto.TeamUsageResponse{CanAddSocials: false})
			return
		}
		c.InternalServerError("failed to resolve entitlements")
		return
	}

	canAdd, inUse, err := h.quotaService.CanAddSocialMediaAccounts(ctx, userID)
	if err != nil {
		c.InternalServerError("failed to count social media accounts")
		return
	}

	_ = c.JSON(200, dto.TeamUsageResponse{
		MaxWorkspaces: ent.MaxWorkspaces,
		MaxUsers:      ent.MaxUsers,
		MaxSocials:    ent.MaxSocials,
		SocialsInUse:  inUse,
		CanAddSocials: canAdd,
	})
}
