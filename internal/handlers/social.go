package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/mkrstic/socialdeck-api/internal/config"
	"github.com/mkrstic/socialdeck-api/internal/middleware"
	"github.com/mkrstic/socialdeck-api/internal/models"
	"github.com/mkrstic/socialdeck-api/internal/oauth"
	"github.com/mkrstic/socialdeck-api/internal/services"
	"github.com/mkrstic/socialdeck-api/pkg/dto"
)

// SocialHandler drives the OAuth dance that connects a social media account
// to the authenticated user. The frontend opens the consent URL, the platform
// redirects back to it with a code, and the frontend posts the code here.
type SocialHandler struct {
	providers     map[string]oauth.Provider
	socialService SocialAccountServiceInterface
	states        sync.Map
}

type connectState struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func NewSocialHandler(cfg *config.Config, socialService SocialAccountServiceInterface) *SocialHandler {
	h := &SocialHandler{
		providers:     make(map[string]oauth.Provider),
		socialService: socialService,
	}

	if cfg.Instagram.ClientID != "" {
		h.providers["instagram"] = oauth.NewInstagramProvider(cfg.Instagram)
	}
	if cfg.Facebook.ClientID != "" {
		h.providers["facebook"] = oauth.NewFacebookProvider(cfg.Facebook)
	}

	go h.cleanupStates()

	return h
}

func (h *SocialHandler) cleanupStates() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		now := time.Now()
		h.states.Range(func(key, value interface{}) bool {
			if cs, ok := value.(connectState); ok && now.After(cs.expiresAt) {
				h.states.Delete(key)
			}
			return true
		})
	}
}

func (h *SocialHandler) GetConsentURL(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	provider := c.Param("provider")

	p, ok := h.providers[provider]
	if !ok {
		c.BadRequest("unsupported provider: " + provider)
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		c.InternalServerError("failed to generate state")
		return
	}

	h.states.Store(state, connectState{
		userID:    userID,
		expiresAt: time.Now().Add(10 * time.Minute),
	})

	_ = c.JSON(200, dto.ConsentURLResponse{
		URL: p.GetConsentURL(state),
	})
}

func (h *SocialHandler) ExchangeCode(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.ExchangeCodeRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	p, ok := h.providers[req.Provider]
	if !ok {
		c.BadRequest("unsupported provider: " + req.Provider)
		return
	}

	if req.Code == "" || req.State == "" {
		c.BadRequest("code and state are required")
		return
	}

	sd, ok := h.states.LoadAndDelete(req.State)
	if !ok {
		c.Unauthorized("invalid or expired state")
		return
	}

	cs, ok := sd.(connectState)
	if !ok || time.Now().After(cs.expiresAt) || cs.userID != userID {
		c.Unauthorized("state expired")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	info, err := p.ExchangeCode(ctx, req.Code)
	if err != nil {
		c.BadRequest("failed to exchange code: " + err.Error())
		return
	}

	account, err := h.socialService.Connect(ctx, userID, info)
	if err != nil {
		c.InternalServerError("failed to connect account")
		return
	}

	_ = c.JSON(201, socialAccountResponse(account))
}

func (h *SocialHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	accounts, err := h.socialService.ListByUser(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to list accounts")
		return
	}

	response := make([]dto.SocialAccountResponse, len(accounts))
	for i := range accounts {
		response[i] = *socialAccountResponse(&accounts[i])
	}

	_ = c.JSON(200, response)
}

func (h *SocialHandler) Disconnect(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		c.BadRequest("invalid account id")
		return
	}

	if err := h.socialService.Disconnect(context.Background(), accountID, userID); err != nil {
		if errors.Is(err, services.ErrSocialAccountNotFound) {
			_ = c.JSON(404, dto.DetailResponse{Detail: err.Error()})
			return
		}
		c.InternalServerError("failed to disconnect account")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "account disconnected"})
}

func socialAccountResponse(a *models.SocialMediaAccount) *dto.SocialAccountResponse {
	return &dto.SocialAccountResponse{
		ID:          a.ID,
		WorkspaceID: a.WorkspaceID,
		Platform:    a.Platform,
		Username:    a.Username,
		CreatedAt:   a.CreatedAt,
	}
}
