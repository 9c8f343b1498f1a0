package components

import (
	"lastbite/internal/handler"
	"lastbite/internal/handler/api"
	"lastbite/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewListingHandler,
		api.NewHealthHandler,
		api.NewAuthHandler,
		middleware.NewAuthMiddleware,
		func(l *api.ListingHandler, h *api.HealthHandler, a *api.AuthHandler) handler.Handlers {
			return handler.Handlers{Listing: l, Health: h, Auth: a}
		},
	),
	fx.Invoke(handler.NewRouter),
)
