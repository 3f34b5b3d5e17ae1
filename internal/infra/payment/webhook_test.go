//go:build unit

package payment

import (
	"encoding/json"
	"testing"
	"time"

	dompayment "gocart/internal/domain/payment"
	"gocart/internal/pkg/config"
	"gocart/internal/pkg/errs"
	"gocart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

func stripeEvent(t *testing.T, eventType string, object map[string]any) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"id":          "evt_" + uuid.NewString(),
		"object":      "event",
		"api_version": "2020-08-27",
		"type":        eventType,
		"data":        map[string]any{"object": object},
	})
	require.NoError(t, err)
	return b
}

func sign(t *testing.T, payload []byte, secret string, at time.Time) string {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	})
	return signed.Header
}

func TestStripeWebhookVerifier_Verify(t *testing.T) {
	cfg := config.NewTestConfig()
	v := NewStripeWebhookVerifier(cfg)

	meta := dompayment.Metadata{
		PaymentSessionID: uuid.New(),
		OrderIDs:         []uuid.UUID{uuid.New(), uuid.New()},
		UserID:           uuid.New(),
		AppTag:           "gocart",
	}
	session := func(paymentStatus string) map[string]any {
		return map[string]any{
			"id":             "cs_test_1",
			"object":         "checkout.session",
			"payment_status": paymentStatus,
			"metadata":       meta.ToMap(),
		}
	}
	intent := map[string]any{
		"id":       "pi_test_1",
		"object":   "payment_intent",
		"metadata": meta.ToMap(),
	}

	tests := []struct {
		name        string
		eventType   string
		object      map[string]any
		wantOK      bool
		wantOutcome dompayment.Outcome
	}{
		{name: "paid checkout completes", eventType: "checkout.session.completed", object: session("paid"), wantOK: true, wantOutcome: dompayment.OutcomeSucceeded},
		{name: "unpaid completion waits for async result", eventType: "checkout.session.completed", object: session("unpaid"), wantOK: false},
		{name: "async success", eventType: "checkout.session.async_payment_succeeded", object: session("paid"), wantOK: true, wantOutcome: dompayment.OutcomeSucceeded},
		{name: "async failure", eventType: "checkout.session.async_payment_failed", object: session("unpaid"), wantOK: true, wantOutcome: dompayment.OutcomeFailedOrCancelled},
		{name: "session expired", eventType: "checkout.session.expired", object: session("unpaid"), wantOK: true, wantOutcome: dompayment.OutcomeFailedOrCancelled},
		{name: "intent succeeded", eventType: "payment_intent.succeeded", object: intent, wantOK: true, wantOutcome: dompayment.OutcomeSucceeded},
		{name: "intent canceled", eventType: "payment_intent.canceled", object: intent, wantOK: true, wantOutcome: dompayment.OutcomeFailedOrCancelled},
		{name: "declined attempt is not terminal", eventType: "payment_intent.payment_failed", object: intent, wantOK: false},
		{name: "unrelated event is ignored", eventType: "customer.created", object: map[string]any{"id": "cus_1", "object": "customer"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := stripeEvent(t, tt.eventType, tt.object)
			header := sign(t, payload, cfg.Payment.WebhookSecret, time.Now())

			ev, ok, err := v.Verify(payload, header)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.eventType, ev.Type)
			assert.Equal(t, tt.wantOutcome, ev.Outcome)
			assert.Equal(t, dompayment.SourceWebhook, ev.Source)
			assert.Equal(t, meta.PaymentSessionID, ev.Metadata.PaymentSessionID)
			assert.Equal(t, meta.OrderIDs, ev.Metadata.OrderIDs)
			assert.Equal(t, "gocart", ev.Metadata.AppTag)
		})
	}

	t.Run("カード拒否の後に再試行で成功", func(t *testing.T) {
		declined := stripeEvent(t, "payment_intent.payment_failed", intent)
		_, ok, err := v.Verify(declined, sign(t, declined, cfg.Payment.WebhookSecret, time.Now()))
		require.NoError(t, err)
		assert.False(t, ok)

		paid := stripeEvent(t, "checkout.session.completed", session("paid"))
		ev, ok, err := v.Verify(paid, sign(t, paid, cfg.Payment.WebhookSecret, time.Now()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, dompayment.OutcomeSucceeded, ev.Outcome)
	})

	t.Run("壊れたメタデータでも app_tag は返る", func(t *testing.T) {
		payload := stripeEvent(t, "checkout.session.completed", map[string]any{
			"id":             "cs_test_2",
			"object":         "checkout.session",
			"payment_status": "paid",
			"metadata":       map[string]string{"app_tag": "other-deploy", "payment_session_id": "nope"},
		})
		header := sign(t, payload, cfg.Payment.WebhookSecret, time.Now())

		ev, ok, err := v.Verify(payload, header)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "other-deploy", ev.Metadata.AppTag)
		assert.Equal(t, uuid.Nil, ev.Metadata.PaymentSessionID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		payload := stripeEvent(t, "checkout.session.completed", session("paid"))
		header := sign(t, payload, "whsec_someone_else", time.Now())

		_, ok, err := v.Verify(payload, header)
		require.Error(t, err)
		assert.False(t, ok)
		assert.True(t, errs.Is(err, shared.ErrSignatureInvalid))
		assert.True(t, errs.Is(err, errs.ErrReconciliation))
	})

	t.Run("tampered payload", func(t *testing.T) {
		payload := stripeEvent(t, "checkout.session.completed", session("paid"))
		header := sign(t, payload, cfg.Payment.WebhookSecret, time.Now())
		payload[len(payload)-2] = ' '

		_, _, err := v.Verify(payload, header)
		assert.True(t, errs.Is(err, shared.ErrSignatureInvalid))
	})

	t.Run("timestamp outside tolerance", func(t *testing.T) {
		payload := stripeEvent(t, "checkout.session.completed", session("paid"))
		header := sign(t, payload, cfg.Payment.WebhookSecret, time.Now().Add(-time.Hour))

		_, _, err := v.Verify(payload, header)
		assert.True(t, errs.Is(err, shared.ErrSignatureInvalid))
	})

	t.Run("missing header", func(t *testing.T) {
		payload := stripeEvent(t, "checkout.session.completed", session("paid"))

		_, _, err := v.Verify(payload, "")
		assert.True(t, errs.Is(err, shared.ErrSignatureInvalid))
	})
}
