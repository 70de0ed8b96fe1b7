package components

import (
	"artisan-quotes/internal/handler"
	"artisan-quotes/internal/handler/api"
	"artisan-quotes/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewQuoteHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
