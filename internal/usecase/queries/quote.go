package queries

import (
	"context"
	"time"

	"artisan-quotes/internal/domain/user"
	"artisan-quotes/internal/infra"
	"artisan-quotes/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrQuoteNotFound = errs.New("quote not found")
	ErrNotQuoteParty = errs.New("user is not a party to the quote")
)

// Read models (DTO for read side)
type QuoteView struct {
	ID                  uuid.UUID  `json:"id"`
	ProductID           uuid.UUID  `json:"product_id"`
	CustomerID          uuid.UUID  `json:"customer_id"`
	ArtisanID           uuid.UUID  `json:"artisan_id"`
	RequestedPriceCents *int64     `json:"requested_price_cents,omitempty"`
	CounterOfferCents   *int64     `json:"counter_offer_cents,omitempty"`
	FinalPriceCents     *int64     `json:"final_price_cents,omitempty"`
	Specifications      string     `json:"specifications"`
	CustomerMessage     *string    `json:"customer_message,omitempty"`
	ArtisanMessage      *string    `json:"artisan_message,omitempty"`
	Status              string     `json:"status"`
	ExpiresAt           time.Time  `json:"expires_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type QuoteListItem struct {
	ID                  uuid.UUID `json:"id"`
	ProductID           uuid.UUID `json:"product_id"`
	CustomerID          uuid.UUID `json:"customer_id"`
	ArtisanID           uuid.UUID `json:"artisan_id"`
	RequestedPriceCents *int64    `json:"requested_price_cents,omitempty"`
	FinalPriceCents     *int64    `json:"final_price_cents,omitempty"`
	Status              string    `json:"status"`
	ExpiresAt           time.Time `json:"expires_at"`
	CreatedAt           time.Time `json:"created_at"`
}

type NegotiationEntryView struct {
	ID                 string            `json:"id"`
	QuoteID            uuid.UUID         `json:"quote_id"`
	Action             string            `json:"action"`
	Actor              string            `json:"actor"`
	PreviousPriceCents *int64            `json:"previous_price_cents,omitempty"`
	NewPriceCents      *int64            `json:"new_price_cents,omitempty"`
	Message            *string           `json:"message,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

// ListFilter narrows a quote listing. Party pinning happens in the
// usecase, not here.
type ListFilter struct {
	CustomerID *uuid.UUID
	ArtisanID  *uuid.UUID
	ProductID  *uuid.UUID
	Status     *string
	From       *time.Time
	To         *time.Time

	AfterCreatedAt *time.Time
	AfterID        *uuid.UUID
	Limit          int32
}

type QuoteReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*QuoteView, error)
	List(ctx context.Context, filter ListFilter) ([]*QuoteListItem, error)
	ListEntries(ctx context.Context, quoteID uuid.UUID) ([]*NegotiationEntryView, error)
}

type QuoteQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*QuoteView, error)
	History(ctx context.Context, actorID uuid.UUID, actorRole user.Role, quoteID uuid.UUID) ([]*NegotiationEntryView, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID, filter ListFilter, after *Cursor, limit int) ([]*QuoteListItem, *Cursor, error)
	ListForArtisan(ctx context.Context, artisanID uuid.UUID, filter ListFilter, after *Cursor, limit int) ([]*QuoteListItem, *Cursor, error)
	ListAll(ctx context.Context, filter ListFilter, after *Cursor, limit int) ([]*QuoteListItem, *Cursor, error)
}

type quoteQueriesImpl struct {
	store QuoteReadStore
}

func NewQuoteQueries(store QuoteReadStore) QuoteQueries {
	return &quoteQueriesImpl{store: store}
}

func (q *quoteQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*QuoteView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrQuoteNotFound)
		}
		return nil, err
	}
	if err := authorizeView(view, actorID, actorRole); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *quoteQueriesImpl) History(ctx context.Context, actorID uuid.UUID, actorRole user.Role, quoteID uuid.UUID) ([]*NegotiationEntryView, error) {
	// Reuses GetByID for existence + access checks.
	if _, err := q.GetByID(ctx, actorID, actorRole, quoteID); err != nil {
		return nil, err
	}
	return q.store.ListEntries(ctx, quoteID)
}

func (q *quoteQueriesImpl) ListForCustomer(ctx context.Context, customerID uuid.UUID, filter ListFilter, after *Cursor, limit int) ([]*QuoteListItem, *Cursor, error) {
	filter.CustomerID = &customerID
	filter.ArtisanID = nil
	return q.list(ctx, filter, after, limit)
}

func (q *quoteQueriesImpl) ListForArtisan(ctx context.Context, artisanID uuid.UUID, filter ListFilter, after *Cursor, limit int) ([]*QuoteListItem, *Cursor, error) {
	filter.ArtisanID = &artisanID
	filter.CustomerID = nil
	return q.list(ctx, filter, after, limit)
}

func (q *quoteQueriesImpl) ListAll(ctx context.Context, filter ListFilter, after *Cursor, limit int) ([]*QuoteListItem, *Cursor, error) {
	return q.list(ctx, filter, after, limit)
}

func (q *quoteQueriesImpl) list(ctx context.Context, filter ListFilter, after *Cursor, limit int) ([]*QuoteListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	filter.Limit = int32(limit)

	if after != nil && after.After != "" {
		createdAt, id, err := DecodeAfterCursor(after.After)
		if err != nil {
			return nil, nil, err
		}
		filter.AfterCreatedAt = &createdAt
		filter.AfterID = &id
	}

	items, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(items) == limit {
		last := items[len(items)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return items, next, nil
}

func authorizeView(view *QuoteView, actorID uuid.UUID, actorRole user.Role) error {
	if actorRole == user.RoleAdmin {
		return nil
	}
	if view.CustomerID != actorID && view.ArtisanID != actorID {
		return ErrNotQuoteParty
	}
	return nil
}
