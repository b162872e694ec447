package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mkrstic/socialdeck-api/internal/database"
	"github.com/mkrstic/socialdeck-api/internal/models"
)

// ErrNoSubscription means the user has no active subscription; every quota
// check treats it as "no entitlements" and fails closed.
var ErrNoSubscription = errors.New("no active subscription")

type BillingService struct {
	db *database.DB
}

func NewBillingService(db *database.DB) *BillingService {
	return &BillingService{db: db}
}

// Entitlements resolves the numeric caps for userID from the feature ids
// attached to the products of their active subscription. Limits are derived
// on every call, never cached: a downgrade takes effect immediately.
func (s *BillingService) Entitlements(ctx context.Context, userID uuid.UUID) (*models.Entitlements, error) {
	var subscriptionID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id FROM subscriptions
		WHERE user_id = $1 AND status = $2
	`, userID, models.SubscriptionStatusActive).Scan(&subscriptionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSubscription
		}
		return nil, fmt.Errorf("failed to look up subscription: %w", err)
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT f.feature_id
		FROM subscription_items si
		JOIN prices p ON si.price_id = p.id
		JOIN product_features pf ON p.product_id = pf.product_id
		JOIN features f ON pf.feature_id = f.id
		WHERE si.subscription_id = $1
	`, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription features: %w", err)
	}
	defer rows.Close()

	var ent models.Entitlements
	for rows.Next() {
		var featureID string
		if err := rows.Scan(&featureID); err != nil {
			return nil, err
		}
		ent.Apply(featureID)
	}
	return &ent, rows.Err()
}

// The Upsert methods below mirror billing provider webhook payloads into the
// local tables the quota engine reads.

func (s *BillingService) UpsertProduct(ctx context.Context, productID string, active bool) (*models.Product, error) {
	var product models.Product
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO products (product_id, active)
		VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE SET active = EXCLUDED.active, updated_at = NOW()
		RETURNING id, product_id, active, created_at, updated_at
	`, productID, active).Scan(&product.ID, &product.ProductID, &product.Active, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert product: %w", err)
	}
	return &product, nil
}

func (s *BillingService) UpsertFeature(ctx context.Context, productID uuid.UUID, featureID string) (*models.Feature, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var feature models.Feature
	err = tx.QueryRow(ctx, `
		INSERT INTO features (feature_id)
		VALUES ($1)
		ON CONFLICT (feature_id) DO UPDATE SET feature_id = EXCLUDED.feature_id
		RETURNING id, feature_id, created_at
	`, featureID).Scan(&feature.ID, &feature.FeatureID, &feature.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert feature: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO product_features (product_id, feature_id)
		VALUES ($1, $2)
		ON CONFLICT (product_id, feature_id) DO NOTHING
	`, productID, feature.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to link feature to product: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &feature, nil
}

func (s *BillingService) UpsertPrice(ctx context.Context, priceID string, productID uuid.UUID, amount int64, currency string, active bool) (*models.Price, error) {
	var price models.Price
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO prices (price_id, product_id, amount, currency, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (price_id) DO UPDATE SET
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			active = EXCLUDED.active,
			updated_at = NOW()
		RETURNING id, price_id, product_id, amount, currency, active, created_at, updated_at
	`, priceID, productID, amount, currency, active).Scan(
		&price.ID, &price.PriceID, &price.ProductID, &price.Amount,
		&price.Currency, &price.Active, &price.CreatedAt, &price.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert price: %w", err)
	}
	return &price, nil
}

func (s *BillingService) UpsertSubscription(ctx context.Context, userID uuid.UUID, subscriptionID, status string, cancelAtPeriodEnd bool) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO subscriptions (user_id, subscription_id, status, cancel_at_period_end)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (subscription_id) DO UPDATE SET
			status = EXCLUDED.status,
			cancel_at_period_end = EXCLUDED.cancel_at_period_end,
			updated_at = NOW()
		RETURNING id, user_id, subscription_id, status, cancel_at_period_end, created_at, updated_at
	`, userID, subscriptionID, status, cancelAtPeriodEnd).Scan(
		&sub.ID, &sub.UserID, &sub.SubscriptionID, &sub.Status,
		&sub.CancelAtPeriodEnd, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return &sub, nil
}

func (s *BillingService) UpsertSubscriptionItem(ctx context.Context, subscriptionID, priceID uuid.UUID, quantity int) (*models.SubscriptionItem, error) {
	var item models.SubscriptionItem
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO subscription_items (subscription_id, price_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (subscription_id, price_id) DO UPDATE SET quantity = EXCLUDED.quantity
		RETURNING id, subscription_id, price_id, quantity, created_at
	`, subscriptionID, priceID, quantity).Scan(
		&item.ID, &item.SubscriptionID, &item.PriceID, &item.Quantity, &item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert subscription item: %w", err)
	}
	return &item, nil
}

func (s *BillingService) GetSubscriptionByExternalID(ctx context.Context, subscriptionID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, subscription_id, status, cancel_at_period_end, created_at, updated_at
		FROM subscriptions WHERE subscription_id = $1
	`, subscriptionID).Scan(
		&sub.ID, &sub.UserID, &sub.SubscriptionID, &sub.Status,
		&sub.CancelAtPeriodEnd, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *BillingService) GetPriceByExternalID(ctx context.Context, priceID string) (*models.Price, error) {
	var price models.Price
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, price_id, product_id, amount, currency, active, created_at, updated_at
		FROM prices WHERE price_id = $1
	`, priceID).Scan(
		&price.ID, &price.PriceID, &price.ProductID, &price.Amount,
		&price.Currency, &price.Active, &price.CreatedAt, &price.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &price, nil
}
