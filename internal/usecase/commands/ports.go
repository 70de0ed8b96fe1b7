package commands

import (
	"context"
	"time"

	"artisan-quotes/internal/domain/quote"

	"github.com/google/uuid"
)

// ProductGateway resolves catalog products. The catalog is an external
// service; quotes only ever hold a snapshot of what it returned.
type ProductGateway interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*quote.ProductSpec, error)
}

const (
	EventQuoteCreated   = "quote.created"
	EventQuoteResponded = "quote.responded"
	EventQuoteAccepted  = "quote.accepted"
	EventQuoteExpired   = "quote.expired"
)

// QuoteEvent is the notification payload emitted after a committed
// transition. Delivery is fire-and-forget; the transaction never waits on
// the broker.
type QuoteEvent struct {
	Type            string    `json:"type"`
	QuoteID         uuid.UUID `json:"quote_id"`
	ProductID       uuid.UUID `json:"product_id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	ArtisanID       uuid.UUID `json:"artisan_id"`
	FinalPriceCents *int64    `json:"final_price_cents,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type NotificationPublisher interface {
	Publish(ctx context.Context, event QuoteEvent) error
}
