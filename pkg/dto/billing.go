package dto

// BillingEvent is the payload the billing provider posts to the webhook
// endpoint. A single event carries the full product/price/feature context of
// the subscription it describes, so the mirror tables can be upserted in one
// pass.
type BillingEvent struct {
	Type         string              `json:"type"`
	Subscription BillingSubscription `json:"subscription"`
}

type BillingSubscription struct {
	SubscriptionID    string        `json:"subscription_id"`
	CustomerEmail     string        `json:"customer_email"`
	Status            string        `json:"status"`
	CancelAtPeriodEnd bool          `json:"cancel_at_period_end"`
	Items             []BillingItem `json:"items"`
}

type BillingItem struct {
	PriceID  string         `json:"price_id"`
	Quantity int            `json:"quantity"`
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency"`
	Product  BillingProduct `json:"product"`
}

type BillingProduct struct {
	ProductID string   `json:"product_id"`
	Active    bool     `json:"active"`
	Features  []string `json:"features"`
}
