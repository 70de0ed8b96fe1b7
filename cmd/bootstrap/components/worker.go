package components

import (
	"context"

	"artisan-quotes/internal/pkg/config"
	"artisan-quotes/internal/usecase/commands"
	"artisan-quotes/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewSweeper,
	),
	fx.Invoke(StartSweeper),
)

func NewSweeper(quotes commands.QuoteCommands, cfg config.Config) *worker.Sweeper {
	return worker.NewSweeper(quotes, cfg.Sweeper)
}

func StartSweeper(lc fx.Lifecycle, sweeper *worker.Sweeper, cfg config.Config) {
	if !cfg.Sweeper.Enabled {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
