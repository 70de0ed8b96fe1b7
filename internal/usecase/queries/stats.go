package queries

import (
	"context"
	"math"

	"artisan-quotes/internal/domain/user"

	"github.com/google/uuid"
)

// QuoteStatsView aggregates a scope's negotiation outcomes. Pending counts
// both pending and counter_offered (everything still in flight).
type QuoteStatsView struct {
	TotalQuotes                 int64   `json:"total_quotes"`
	PendingQuotes               int64   `json:"pending_quotes"`
	AcceptedQuotes              int64   `json:"accepted_quotes"`
	RejectedQuotes              int64   `json:"rejected_quotes"`
	ExpiredQuotes               int64   `json:"expired_quotes"`
	AverageNegotiationTimeHours float64 `json:"average_negotiation_time_hours"`
	ConversionRatePercent       float64 `json:"conversion_rate_percent"`
}

// StatsFilter scopes the aggregate to one side of the marketplace, or to
// everything when both ids are nil (admin).
type StatsFilter struct {
	CustomerID *uuid.UUID
	ArtisanID  *uuid.UUID
}

// StatsRow is the raw aggregate from the read store. Accepted quotes also
// count completed ones; a completed quote was accepted first.
type StatsRow struct {
	Total    int64
	Pending  int64
	Accepted int64
	Rejected int64
	Expired  int64
	AvgHours *float64
}

type StatsReadStore interface {
	Aggregate(ctx context.Context, filter StatsFilter) (*StatsRow, error)
}

type StatsQueries interface {
	Stats(ctx context.Context, scopeUserID *uuid.UUID, scopeRole user.Role) (*QuoteStatsView, error)
}

type statsQueriesImpl struct {
	store StatsReadStore
}

func NewStatsQueries(store StatsReadStore) StatsQueries {
	return &statsQueriesImpl{store: store}
}

// Stats computes unsampled aggregates. The average is taken over accepted
// quotes only; a zero-quote scope yields all-zero stats.
func (s *statsQueriesImpl) Stats(ctx context.Context, scopeUserID *uuid.UUID, scopeRole user.Role) (*QuoteStatsView, error) {
	var filter StatsFilter
	switch scopeRole {
	case user.RoleCustomer:
		filter.CustomerID = scopeUserID
	case user.RoleArtisan:
		filter.ArtisanID = scopeUserID
	case user.RoleAdmin:
		// unscoped
	}

	row, err := s.store.Aggregate(ctx, filter)
	if err != nil {
		return nil, err
	}

	view := &QuoteStatsView{
		TotalQuotes:    row.Total,
		PendingQuotes:  row.Pending,
		AcceptedQuotes: row.Accepted,
		RejectedQuotes: row.Rejected,
		ExpiredQuotes:  row.Expired,
	}
	if row.AvgHours != nil {
		view.AverageNegotiationTimeHours = round2(*row.AvgHours)
	}
	if row.Total > 0 {
		view.ConversionRatePercent = round2(float64(row.Accepted) / float64(row.Total) * 100)
	}
	return view, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
