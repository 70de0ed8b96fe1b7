package components

import (
	"context"

	"artisan-quotes/internal/infra/gateway"
	"artisan-quotes/internal/pkg/config"
	"artisan-quotes/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewProductGateway,
		NewNotificationPublisher,
	),
)

func NewProductGateway(cfg config.Config) commands.ProductGateway {
	return gateway.NewCatalogGateway(cfg.Catalog)
}

func NewNotificationPublisher(lc fx.Lifecycle, cfg config.Config) (commands.NotificationPublisher, error) {
	pub, cleanup, err := gateway.NewPublisher(cfg.Notify)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return pub, nil
}
