package shared

import (
	"context"
	"time"

	"artisan-quotes/internal/domain/quote"
	"artisan-quotes/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Quotes() QuoteRepository
	Negotiations() NegotiationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	// QuoteForUpdate locks the row for the rest of the transaction. All
	// mutating operations on an existing quote go through this, which is
	// what serializes concurrent writers on the same quote.
	QuoteForUpdate(ctx context.Context, id uuid.UUID) (*QuoteSnapshot, error)
}

type QuoteRepository interface {
	Create(ctx context.Context, tx db.DBTX, q *quote.QuoteRequest) (uuid.UUID, error)
	// Update persists the aggregate's mutable fields after a transition.
	Update(ctx context.Context, tx db.DBTX, q *quote.QuoteRequest) error
	// ExpireOverdue bulk-flips active overdue quotes to expired in one
	// statement and reports the rows it moved.
	ExpireOverdue(ctx context.Context, tx db.DBTX, now time.Time) ([]ExpiredQuote, error)
}

type NegotiationRepository interface {
	Append(ctx context.Context, tx db.DBTX, entry *quote.NegotiationEntry) error
}
