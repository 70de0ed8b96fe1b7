package components

import (
	"artisan-quotes/internal/pkg/clock"
	"artisan-quotes/internal/usecase"
	"artisan-quotes/internal/usecase/commands"
	"artisan-quotes/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		commands.NewQuoteUseCase,
		queries.NewQuoteQueries,
		queries.NewStatsQueries,
		usecase.NewTokenValidator,
	),
)
