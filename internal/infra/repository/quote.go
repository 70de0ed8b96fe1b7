package repository

import (
	"context"
	"errors"
	"time"

	"artisan-quotes/internal/domain/quote"
	"artisan-quotes/internal/infra"
	"artisan-quotes/internal/infra/db"
	"artisan-quotes/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type QuoteRepository struct{}

func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{}
}

const createQuoteSQL = `
INSERT INTO quotes (
	id, product_id, customer_id, artisan_id,
	requested_price_cents, specifications, customer_message,
	status, expires_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

func (r *QuoteRepository) Create(ctx context.Context, tx db.DBTX, q *quote.QuoteRequest) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createQuoteSQL,
		q.ID(), q.ProductID(), q.CustomerID(), q.ArtisanID(),
		centsPtr(q.RequestedPrice()), q.Specifications().String(), messageStrPtr(q.CustomerMessage()),
		q.Status().String(), q.ExpiresAt(), q.CreatedAt(), q.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("active quote already exists for product and customer", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create quote", err)
	}
	return id, nil
}

const updateQuoteSQL = `
UPDATE quotes SET
	status = $2,
	counter_offer_cents = $3,
	final_price_cents = $4,
	customer_message = $5,
	artisan_message = $6,
	updated_at = $7
WHERE id = $1`

func (r *QuoteRepository) Update(ctx context.Context, tx db.DBTX, q *quote.QuoteRequest) error {
	tag, err := tx.Exec(ctx, updateQuoteSQL,
		q.ID(),
		q.Status().String(),
		centsPtr(q.CounterOffer()),
		centsPtr(q.FinalPrice()),
		messageStrPtr(q.CustomerMessage()),
		messageStrPtr(q.ArtisanMessage()),
		q.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update quote", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("quote not found", nil, infra.KindNotFound)
	}
	return nil
}

const expireOverdueSQL = `
UPDATE quotes SET
	status = 'expired',
	counter_offer_cents = NULL,
	updated_at = $1
WHERE status IN ('pending', 'counter_offered') AND expires_at < $1
RETURNING id, customer_id, artisan_id`

// ExpireOverdue is one atomic statement; concurrent sweeps each claim a
// disjoint set of rows, so a double run is a no-op the second time.
func (r *QuoteRepository) ExpireOverdue(ctx context.Context, tx db.DBTX, now time.Time) ([]shared.ExpiredQuote, error) {
	rows, err := tx.Query(ctx, expireOverdueSQL, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire overdue quotes", err)
	}
	defer rows.Close()

	var expired []shared.ExpiredQuote
	for rows.Next() {
		var e shared.ExpiredQuote
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.ArtisanID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired quote", err)
		}
		expired = append(expired, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired quotes", err)
	}
	return expired, nil
}

func centsPtr(m *quote.Money) *int64 {
	if m == nil {
		return nil
	}
	cents := m.Cents()
	return &cents
}

func messageStrPtr(m *quote.Message) *string {
	if m == nil {
		return nil
	}
	s := m.String()
	return &s
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
