//go:build unit || e2e

package dbtest

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ResetDB truncates all quote state between subtests. Schema and types
// survive; only data goes.
func ResetDB(db DBLike) error {
	ctx := context.Background()
	_, err := db.Exec(ctx, "TRUNCATE quotes CASCADE")
	return err
}

// ForceExpiry backdates a quote's deadline so the next touch or sweep sees
// it as overdue.
func ForceExpiry(db DBLike, quoteID uuid.UUID) error {
	ctx := context.Background()
	_, err := db.Exec(ctx, "UPDATE quotes SET expires_at = $1 WHERE id = $2",
		time.Now().Add(-time.Hour), quoteID)
	return err
}

// QuoteStatus reads the persisted status directly, bypassing the API.
func QuoteStatus(db DBLike, quoteID uuid.UUID) (string, error) {
	ctx := context.Background()
	var status string
	err := db.QueryRow(ctx, "SELECT status FROM quotes WHERE id = $1", quoteID).Scan(&status)
	return status, err
}

// CounterOfferCents reads the persisted counter offer, nil when cleared.
func CounterOfferCents(db DBLike, quoteID uuid.UUID) (*int64, error) {
	ctx := context.Background()
	var cents *int64
	err := db.QueryRow(ctx, "SELECT counter_offer_cents FROM quotes WHERE id = $1", quoteID).Scan(&cents)
	return cents, err
}

// CountEntries counts the negotiation history rows of a quote.
func CountEntries(db DBLike, quoteID uuid.UUID) (int, error) {
	ctx := context.Background()
	var n int
	err := db.QueryRow(ctx, "SELECT count(*) FROM negotiation_entries WHERE quote_id = $1", quoteID).Scan(&n)
	return n, err
}
