package repository

import (
	"context"
	"encoding/json"

	"artisan-quotes/internal/domain/quote"
	"artisan-quotes/internal/infra"
	"artisan-quotes/internal/infra/db"
)

type NegotiationRepository struct{}

func NewNegotiationRepository() *NegotiationRepository {
	return &NegotiationRepository{}
}

const appendEntrySQL = `
INSERT INTO negotiation_entries (
	id, quote_id, action, actor,
	previous_price_cents, new_price_cents, message, metadata, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Append never validates quote state; history is a passive observer of
// whatever the engine decided.
func (r *NegotiationRepository) Append(ctx context.Context, tx db.DBTX, entry *quote.NegotiationEntry) error {
	var metadata []byte
	if md := entry.Metadata(); md != nil {
		b, err := json.Marshal(md)
		if err != nil {
			return infra.WrapRepoErr("failed to encode entry metadata", err)
		}
		metadata = b
	}

	_, err := tx.Exec(ctx, appendEntrySQL,
		entry.ID(), entry.QuoteID(), entry.Action().String(), entry.Actor().String(),
		centsPtr(entry.PreviousPrice()), centsPtr(entry.NewPrice()),
		messageStrPtr(entry.Message()), metadata, entry.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append negotiation entry", err)
	}
	return nil
}
