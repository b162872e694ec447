package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
)

// AccountInfo describes a social platform account as reported by the
// platform after the connect flow.
type AccountInfo struct {
	ID       string
	Username string
	Platform string
}

type Provider interface {
	GetConsentURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*AccountInfo, error)
	Name() string
}

func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
