package components

import (
	"artisan-quotes/internal/infra/db"
	"artisan-quotes/internal/infra/readstore"
	"artisan-quotes/internal/infra/uow"
	"artisan-quotes/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewQuoteReadStore,
			fx.As(new(queries.QuoteReadStore)),
		),
		fx.Annotate(
			readstore.NewStatsReadStore,
			fx.As(new(queries.StatsReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
