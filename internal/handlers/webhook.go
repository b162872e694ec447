package handlers

import (
	"context"
	"crypto/subtle"
	"log"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/mkrstic/socialdeck-api/internal/config"
	"github.com/mkrstic/socialdeck-api/pkg/dto"
)

// WebhookHandler ingests subscription lifecycle events from the billing
// provider and mirrors them into the local billing tables. Entitlement checks
// read only from those tables, never from the provider.
type WebhookHandler struct {
	cfg            *config.Config
	userService    UserServiceInterface
	billingService BillingServiceInterface
}

func NewWebhookHandler(cfg *config.Config, userService UserServiceInterface, billingService BillingServiceInterface) *WebhookHandler {
	return &WebhookHandler{
		cfg:            cfg,
		userService:    userService,
		billingService: billingService,
	}
}

func (h *WebhookHandler) HandleBillingEvent(c *drift.Context) {
	// An unset secret must not authenticate anything: with an empty configured
	// value the constant-time compare would accept a request with no header.
	if h.cfg.BillingWebhookSecret == "" {
		c.Unauthorized("invalid webhook secret")
		return
	}

	secret := c.GetHeader("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.cfg.BillingWebhookSecret)) != 1 {
		c.Unauthorized("invalid webhook secret")
		return
	}

	var event dto.BillingEvent
	if err := c.BindJSON(&event); err != nil {
		c.BadRequest("invalid event payload")
		return
	}

	if event.Subscription.SubscriptionID == "" || event.Subscription.CustomerEmail == "" {
		c.BadRequest("subscription_id and customer_email are required")
		return
	}

	ctx := context.Background()

	// Unknown customers are acknowledged so the provider stops retrying;
	// the event is logged for manual reconciliation.
	user, err := h.userService.GetByEmail(ctx, event.Subscription.CustomerEmail)
	if err != nil {
		log.Printf("billing event %s for unknown customer %s, skipping", event.Type, event.Subscription.CustomerEmail)
		_ = c.JSON(200, map[string]string{"message": "no matching user"})
		return
	}

	sub, err := h.billingService.UpsertSubscription(
		ctx,
		user.ID,
		event.Subscription.SubscriptionID,
		event.Subscription.Status,
		event.Subscription.CancelAtPeriodEnd,
	)
	if err != nil {
		c.InternalServerError("failed to store subscription")
		return
	}

	for _, item := range event.Subscription.Items {
		product, err := h.billingService.UpsertProduct(ctx, item.Product.ProductID, item.Product.Active)
		if err != nil {
			c.InternalServerError("failed to store product")
			return
		}

		for _, featureID := range item.Product.Features {
			if _, err := h.billingService.UpsertFeature(ctx, product.ID, featureID); err != nil {
				c.InternalServerError("failed to store feature")
				return
			}
		}

		price, err := h.billingService.UpsertPrice(ctx, item.PriceID, product.ID, item.Amount, item.Currency, item.Product.Active)
		if err != nil {
			c.InternalServerError("failed to store price")
			return
		}

		if _, err := h.billingService.UpsertSubscriptionItem(ctx, sub.ID, price.ID, item.Quantity); err != nil {
			c.InternalServerError("failed to store subscription item")
			return
		}
	}

	_ = c.JSON(200, map[string]string{"message": "processed"})
}
