package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mkrstic/socialdeck-api/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

type FacebookProvider struct {
	config *oauth2.Config
}

func NewFacebookProvider(cfg config.OAuthConfig) *FacebookProvider {
	return &FacebookProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"pages_show_list"},
			Endpoint:     facebook.Endpoint,
		},
	}
}

func (p *FacebookProvider) Name() string {
	return "facebook"
}

func (p *FacebookProvider) GetConsentURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *FacebookProvider) ExchangeCode(ctx context.Context, code string) (*AccountInfo, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := p.config.Client(ctx, token)

	resp, err := client.Get("https://graph.facebook.com/me?fields=id,name")
	if err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facebook api returned status %d", resp.StatusCode)
	}

	var fbAccount struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&fbAccount); err != nil {
		return nil, fmt.Errorf("failed to decode account info: %w", err)
	}

	return &AccountInfo{
		ID:       fbAccount.ID,
		Username: fbAccount.Name,
		Platform: "facebook",
	}, nil
}
