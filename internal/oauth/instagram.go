package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mkrstic/socialdeck-api/internal/config"
	"golang.org/x/oauth2"
)

var instagramEndpoint = oauth2.Endpoint{
	AuthURL:  "https://api.instagram.com/oauth/authorize",
	TokenURL: "https://api.instagram.com/oauth/access_token",
}

type InstagramProvider struct {
	config *oauth2.Config
}

func NewInstagramProvider(cfg config.OAuthConfig) *InstagramProvider {
	return &InstagramProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"user_profile"},
			Endpoint:     instagramEndpoint,
		},
	}
}

func (p *InstagramProvider) Name() string {
	return "instagram"
}

func (p *InstagramProvider) GetConsentURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *InstagramProvider) ExchangeCode(ctx context.Context, code string) (*AccountInfo, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := p.config.Client(ctx, token)

	resp, err := client.Get("https://graph.instagram.com/me?fields=id,username")
	if err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("instagram api returned status %d", resp.StatusCode)
	}

	var igAccount struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&igAccount); err != nil {
		return nil, fmt.Errorf("failed to decode account info: %w", err)
	}

	return &AccountInfo{
		ID:       igAccount.ID,
		Username: igAccount.Username,
		Platform: "instagram",
	}, nil
}
