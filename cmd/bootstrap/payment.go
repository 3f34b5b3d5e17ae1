package bootstrap

import (
	"gocart/internal/infra/payment"
	"gocart/internal/usecase/shared"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		fx.Annotate(
			payment.NewStripeGateway,
			fx.As(new(shared.PaymentGateway)),
		),
		fx.Annotate(
			payment.NewStripeWebhookVerifier,
			fx.As(new(shared.WebhookVerifier)),
		),
	),
)
