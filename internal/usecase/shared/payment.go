package shared

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/shared/payment.go -package=sharedmock

import (
	"context"
	"time"

	"gocart/internal/domain/order"
	"gocart/internal/domain/payment"
	"gocart/internal/pkg/errs"
)

// ErrGatewayUnavailable covers processor timeouts, network failures and an open breaker.
var ErrGatewayUnavailable = errs.Sentinel("payment processor unavailable", errs.ErrExternalService)

// ErrSignatureInvalid is returned for webhook payloads that cannot be authenticated.
var ErrSignatureInvalid = errs.Sentinel("webhook signature verification failed", errs.ErrReconciliation)

type CreateSessionInput struct {
	// IdempotencyKey lets the processor collapse retried creates of the same session
	IdempotencyKey string
	Amount         order.Money
	Currency       string
	Description    string
	Metadata       payment.Metadata
	ExpiresAt      time.Time
}

type CreatedSession struct {
	ExternalID string
	URL        string
}

type PaymentGateway interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (*CreatedSession, error)
}

// WebhookVerifier authenticates a processor callback and maps it to a payment event.
// ok is false for authentic events that carry no payment outcome.
type WebhookVerifier interface {
	Verify(payload []byte, signatureHeader string) (ev payment.Event, ok bool, err error)
}
