package payment

import (
	"context"
	"net/http"
	"time"

	"gocart/internal/pkg/config"
	"gocart/internal/pkg/errs"
	"gocart/internal/usecase/shared"

	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

const defaultLineItemName = "Order"

// StripeGateway creates hosted checkout sessions. Every call is bounded by the
// HTTP client timeout and the SDK's network retries, and runs behind a breaker.
type StripeGateway struct {
	client     session.Client
	breaker    *gobreaker.CircuitBreaker[*stripe.CheckoutSession]
	successURL string
	cancelURL  string
	now        func() time.Time
}

func NewStripeGateway(cfg config.Config) *StripeGateway {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Payment.Timeout},
		MaxNetworkRetries: stripe.Int64(cfg.Payment.MaxRetries),
	})

	return &StripeGateway{
		client: session.Client{B: backend, Key: cfg.Payment.SecretKey},
		breaker: newBreaker[*stripe.CheckoutSession](BreakerSettings{
			Name:        "stripe-checkout",
			Failures:    cfg.Payment.BreakerFailures,
			OpenTimeout: cfg.Payment.BreakerOpenTimeout,
		}),
		successURL: cfg.Payment.SuccessURL,
		cancelURL:  cfg.Payment.CancelURL,
		now:        time.Now,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, in shared.CreateSessionInput) (*shared.CreatedSession, error) {
	params := g.buildParams(in)
	params.Context = ctx

	cs, err := g.breaker.Execute(func() (*stripe.CheckoutSession, error) {
		return g.client.New(params)
	})
	if err != nil {
		return nil, errs.Mark(errs.Mark(errs.Wrap(err, "stripe: create checkout session"), shared.ErrGatewayUnavailable), errs.ErrExternalService)
	}

	return &shared.CreatedSession{ExternalID: cs.ID, URL: cs.URL}, nil
}

func (g *StripeGateway) buildParams(in shared.CreateSessionInput) *stripe.CheckoutSessionParams {
	name := in.Description
	if name == "" {
		name = defaultLineItemName
	}
	meta := in.Metadata.ToMap()

	// the session row was stamped before the transaction and this call; keep Stripe's floor at request time
	expiresAt := in.ExpiresAt
	if floor := g.now().Add(config.MinSessionTTL + config.SessionExpiryLeeway); expiresAt.Before(floor) {
		expiresAt = floor
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(in.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
					UnitAmount: stripe.Int64(in.Amount.MinorUnits()),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
		ExpiresAt:         stripe.Int64(expiresAt.Unix()),
		ClientReferenceID: stripe.String(in.Metadata.PaymentSessionID.String()),
		// payment_intent.* events carry the intent's metadata, not the session's
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: meta,
		},
	}
	for k, v := range meta {
		params.AddMetadata(k, v)
	}
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}
	return params
}
