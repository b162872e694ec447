package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const SubscriptionStatusActive = "active"

// Feature id keys. Feature identifiers on the billing provider encode a
// numeric limit as "<key>__<n>", e.g. "max_workspaces__10".
const (
	FeatureMaxWorkspaces = "max_workspaces"
	FeatureMaxUsers      = "max_users"
	FeatureMaxSocials    = "max_socials"
)

type Product struct {
	ID        uuid.UUID `json:"id"`
	ProductID string    `json:"product_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Feature struct {
	ID        uuid.UUID `json:"id"`
	FeatureID string    `json:"feature_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Price struct {
	ID        uuid.UUID `json:"id"`
	PriceID   string    `json:"price_id"`
	ProductID uuid.UUID `json:"product_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Subscription struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	SubscriptionID    string    `json:"subscription_id"`
	Status            string    `json:"status"`
	CancelAtPeriodEnd bool      `json:"cancel_at_period_end"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type SubscriptionItem struct {
	ID             uuid.UUID `json:"id"`
	SubscriptionID uuid.UUID `json:"subscription_id"`
	PriceID        uuid.UUID `json:"price_id"`
	Quantity       int       `json:"quantity"`
	CreatedAt      time.Time `json:"created_at"`
}

// Entitlements are the numeric caps derived from the owner's active
// subscription features. They are resolved fresh on every quota check so a
// plan change takes effect immediately.
type Entitlements struct {
	MaxWorkspaces int `json:"max_workspaces"`
	MaxUsers      int `json:"max_users"`
	MaxSocials    int `json:"max_socials"`
}

// ParseFeatureID splits a "<key>__<n>" feature identifier into its key and
// limit. Returns ok=false for identifiers that do not follow the convention.
func ParseFeatureID(featureID string) (key string, limit int, ok bool) {
	idx := strings.LastIndex(featureID, "__")
	if idx <= 0 {
		return "", 0, false
	}
	limit, err := strconv.Atoi(featureID[idx+2:])
	if err != nil {
		return "", 0, false
	}
	return featureID[:idx], limit, true
}

// Apply folds a feature identifier into the entitlement record. Unknown keys
// are ignored.
func (e *Entitlements) Apply(featureID string) {
	key, limit, ok := ParseFeatureID(featureID)
	if !ok {
		return
	}
	switch key {
	case FeatureMaxWorkspaces:
		e.MaxWorkspaces = limit
	case FeatureMaxUsers:
		e.MaxUsers = limit
	case FeatureMaxSocials:
		e.MaxSocials = limit
	}
}
