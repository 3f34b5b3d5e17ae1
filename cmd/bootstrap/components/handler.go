package components

import (
	"gocart/internal/handler"
	"gocart/internal/handler/api"
	"gocart/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
		api.NewOrderHandler,
		api.NewCartHandler,
		api.NewCouponHandler,
		api.NewPaymentWebhookHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
