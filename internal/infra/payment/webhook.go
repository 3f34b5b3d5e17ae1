package payment

import (
	"encoding/json"
	"log/slog"
	"time"

	dompayment "gocart/internal/domain/payment"
	"gocart/internal/pkg/config"
	"gocart/internal/pkg/errs"
	"gocart/internal/usecase/shared"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const paymentStatusPaid = "paid"

type StripeWebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

func NewStripeWebhookVerifier(cfg config.Config) *StripeWebhookVerifier {
	tolerance := cfg.Payment.SignatureTolerance
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &StripeWebhookVerifier{secret: cfg.Payment.WebhookSecret, tolerance: tolerance}
}

func (v *StripeWebhookVerifier) Verify(payload []byte, signatureHeader string) (dompayment.Event, bool, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return dompayment.Event{}, false, errs.Mark(errs.Mark(errs.Wrap(err, "stripe webhook"), shared.ErrSignatureInvalid), errs.ErrReconciliation)
	}

	outcome, raw, ok := classify(event)
	if !ok {
		slog.Debug("stripe event ignored", "event_id", event.ID, "event_type", string(event.Type))
		return dompayment.Event{}, false, nil
	}

	meta, err := dompayment.ParseMetadata(raw)
	if err != nil {
		// 壊れたメタデータでも app_tag は返す。判定はユースケース側
		slog.Warn("stripe event metadata malformed",
			"event_id", event.ID,
			"event_type", string(event.Type),
			"error", err.Error())
	}

	return dompayment.Event{
		ID:       event.ID,
		Type:     string(event.Type),
		Outcome:  outcome,
		Metadata: meta,
		Source:   dompayment.SourceWebhook,
	}, true, nil
}

// classify maps a stripe event to an outcome and returns the metadata of its object.
func classify(event stripe.Event) (dompayment.Outcome, map[string]string, bool) {
	if event.Data == nil {
		return "", nil, false
	}

	switch string(event.Type) {
	case "checkout.session.completed":
		cs, ok := decodeSession(event)
		if !ok || string(cs.PaymentStatus) != paymentStatusPaid {
			// async methods settle later through async_payment_succeeded
			return "", nil, false
		}
		return dompayment.OutcomeSucceeded, cs.Metadata, true
	case "checkout.session.async_payment_succeeded":
		cs, ok := decodeSession(event)
		if !ok {
			return "", nil, false
		}
		return dompayment.OutcomeSucceeded, cs.Metadata, true
	case "checkout.session.expired", "checkout.session.async_payment_failed":
		cs, ok := decodeSession(event)
		if !ok {
			return "", nil, false
		}
		return dompayment.OutcomeFailedOrCancelled, cs.Metadata, true
	case "payment_intent.succeeded":
		pi, ok := decodeIntent(event)
		if !ok {
			return "", nil, false
		}
		return dompayment.OutcomeSucceeded, pi.Metadata, true
	// payment_intent.payment_failed is a declined attempt; the buyer can retry on the same session
	case "payment_intent.canceled":
		pi, ok := decodeIntent(event)
		if !ok {
			return "", nil, false
		}
		return dompayment.OutcomeFailedOrCancelled, pi.Metadata, true
	default:
		return "", nil, false
	}
}

func decodeSession(event stripe.Event) (*stripe.CheckoutSession, bool) {
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		slog.Warn("failed to decode checkout session", "event_id", event.ID, "error", err.Error())
		return nil, false
	}
	return &cs, true
}

func decodeIntent(event stripe.Event) (*stripe.PaymentIntent, bool) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		slog.Warn("failed to decode payment intent", "event_id", event.ID, "error", err.Error())
		return nil, false
	}
	return &pi, true
}
