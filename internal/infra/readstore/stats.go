package readstore

import (
	"context"
	"fmt"
	"strings"

	"artisan-quotes/internal/infra"
	"artisan-quotes/internal/infra/db"
	"artisan-quotes/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type StatsReadStore struct {
	db db.DBTX
}

func NewStatsReadStore(dbtx db.DBTX) *StatsReadStore {
	return &StatsReadStore{db: dbtx}
}

const aggregateStatsBaseSQL = `
SELECT count(*) AS total,
       count(*) FILTER (WHERE status IN ('pending', 'counter_offered')) AS pending,
       count(*) FILTER (WHERE status IN ('accepted', 'completed')) AS accepted,
       count(*) FILTER (WHERE status = 'rejected') AS rejected,
       count(*) FILTER (WHERE status = 'expired') AS expired,
       avg(EXTRACT(EPOCH FROM (updated_at - created_at)) / 3600.0)
           FILTER (WHERE status IN ('accepted', 'completed')) AS avg_hours
FROM quotes`

func (s *StatsReadStore) Aggregate(ctx context.Context, filter queries.StatsFilter) (*queries.StatsRow, error) {
	var (
		conds []string
		args  []any
	)
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if filter.ArtisanID != nil {
		args = append(args, *filter.ArtisanID)
		conds = append(conds, fmt.Sprintf("artisan_id = $%d", len(args)))
	}

	sql := aggregateStatsBaseSQL
	if len(conds) > 0 {
		sql += "\nWHERE " + strings.Join(conds, " AND ")
	}

	var (
		row      queries.StatsRow
		avgHours pgtype.Float8
	)
	err := s.db.QueryRow(ctx, sql, args...).Scan(
		&row.Total, &row.Pending, &row.Accepted, &row.Rejected, &row.Expired, &avgHours,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate quote stats", err)
	}
	if avgHours.Valid {
		v := avgHours.Float64
		row.AvgHours = &v
	}
	return &row, nil
}
