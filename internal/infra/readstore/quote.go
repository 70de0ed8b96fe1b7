package readstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"artisan-quotes/internal/infra"
	"artisan-quotes/internal/infra/db"
	"artisan-quotes/internal/pkg/pgconv"
	"artisan-quotes/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type QuoteReadStore struct {
	db db.DBTX
}

func NewQuoteReadStore(dbtx db.DBTX) *QuoteReadStore {
	return &QuoteReadStore{db: dbtx}
}

const findQuoteByIDSQL = `
SELECT id, product_id, customer_id, artisan_id,
       requested_price_cents, counter_offer_cents, final_price_cents,
       specifications, customer_message, artisan_message,
       status, expires_at, created_at, updated_at
FROM quotes
WHERE id = $1`

func (s *QuoteReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.QuoteView, error) {
	var (
		view      queries.QuoteView
		requested pgtype.Int8
		counter   pgtype.Int8
		final     pgtype.Int8
		custMsg   pgtype.Text
		artMsg    pgtype.Text
	)
	err := s.db.QueryRow(ctx, findQuoteByIDSQL, id).Scan(
		&view.ID, &view.ProductID, &view.CustomerID, &view.ArtisanID,
		&requested, &counter, &final,
		&view.Specifications, &custMsg, &artMsg,
		&view.Status, &view.ExpiresAt, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("quote not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find quote by ID", err)
	}

	view.RequestedPriceCents = pgconv.Int64PtrFromPgtype(requested)
	view.CounterOfferCents = pgconv.Int64PtrFromPgtype(counter)
	view.FinalPriceCents = pgconv.Int64PtrFromPgtype(final)
	view.CustomerMessage = pgconv.StringPtrFromPgtype(custMsg)
	view.ArtisanMessage = pgconv.StringPtrFromPgtype(artMsg)
	return &view, nil
}

const listQuotesBaseSQL = `
SELECT id, product_id, customer_id, artisan_id,
       requested_price_cents, final_price_cents,
       status, expires_at, created_at
FROM quotes`

// List applies the filter as a dynamic WHERE clause with keyset paging on
// (created_at, id) descending.
func (s *QuoteReadStore) List(ctx context.Context, filter queries.ListFilter) ([]*queries.QuoteListItem, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CustomerID != nil {
		conds = append(conds, "customer_id = "+arg(*filter.CustomerID))
	}
	if filter.ArtisanID != nil {
		conds = append(conds, "artisan_id = "+arg(*filter.ArtisanID))
	}
	if filter.ProductID != nil {
		conds = append(conds, "product_id = "+arg(*filter.ProductID))
	}
	if filter.Status != nil {
		conds = append(conds, "status = "+arg(*filter.Status))
	}
	if filter.From != nil {
		conds = append(conds, "created_at >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "created_at <= "+arg(*filter.To))
	}
	if filter.AfterCreatedAt != nil && filter.AfterID != nil {
		conds = append(conds, "(created_at, id) < ("+arg(*filter.AfterCreatedAt)+", "+arg(*filter.AfterID)+")")
	}

	sql := listQuotesBaseSQL
	if len(conds) > 0 {
		sql += "\nWHERE " + strings.Join(conds, " AND ")
	}
	sql += "\nORDER BY created_at DESC, id DESC"
	sql += "\nLIMIT " + arg(filter.Limit)

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list quotes", err)
	}
	defer rows.Close()

	var items []*queries.QuoteListItem
	for rows.Next() {
		var (
			item      queries.QuoteListItem
			requested pgtype.Int8
			final     pgtype.Int8
		)
		if err := rows.Scan(
			&item.ID, &item.ProductID, &item.CustomerID, &item.ArtisanID,
			&requested, &final,
			&item.Status, &item.ExpiresAt, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan quote row", err)
		}
		item.RequestedPriceCents = pgconv.Int64PtrFromPgtype(requested)
		item.FinalPriceCents = pgconv.Int64PtrFromPgtype(final)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read quote rows", err)
	}
	return items, nil
}

const listEntriesSQL = `
SELECT id, quote_id, action, actor,
       previous_price_cents, new_price_cents, message, metadata, created_at
FROM negotiation_entries
WHERE quote_id = $1
ORDER BY id ASC`

func (s *QuoteReadStore) ListEntries(ctx context.Context, quoteID uuid.UUID) ([]*queries.NegotiationEntryView, error) {
	rows, err := s.db.Query(ctx, listEntriesSQL, quoteID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list negotiation entries", err)
	}
	defer rows.Close()

	var entries []*queries.NegotiationEntryView
	for rows.Next() {
		var (
			entry    queries.NegotiationEntryView
			prev     pgtype.Int8
			next     pgtype.Int8
			message  pgtype.Text
			metadata []byte
		)
		if err := rows.Scan(
			&entry.ID, &entry.QuoteID, &entry.Action, &entry.Actor,
			&prev, &next, &message, &metadata, &entry.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan negotiation entry", err)
		}
		entry.PreviousPriceCents = pgconv.Int64PtrFromPgtype(prev)
		entry.NewPriceCents = pgconv.Int64PtrFromPgtype(next)
		entry.Message = pgconv.StringPtrFromPgtype(message)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, infra.WrapRepoErr("failed to decode entry metadata", err)
			}
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read negotiation entries", err)
	}
	return entries, nil
}
