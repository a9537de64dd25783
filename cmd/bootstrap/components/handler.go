package components

import (
	"facility-booking/internal/handler"
	"facility-booking/internal/handler/api"
	"facility-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewDraftHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
		middleware.NewRateLimiter,
		func(d *api.DraftHandler, b *api.BookingHandler) handler.Handlers {
			return handler.Handlers{Draft: d, Booking: b}
		},
	),
	fx.Invoke(handler.NewRouter),
)
