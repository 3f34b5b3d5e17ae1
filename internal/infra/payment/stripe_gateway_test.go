//go:build unit

package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gocart/internal/domain/order"
	dompayment "gocart/internal/domain/payment"
	"gocart/internal/pkg/config"
	"gocart/internal/pkg/errs"
	"gocart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// newTestGateway points the SDK at srv and opens the breaker after failures consecutive errors.
func newTestGateway(t *testing.T, srv *httptest.Server, failures uint32) *StripeGateway {
	t.Helper()
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return &StripeGateway{
		client: session.Client{B: backend, Key: "sk_test_dummy"},
		breaker: newBreaker[*stripe.CheckoutSession](BreakerSettings{
			Name:        "stripe-test",
			Failures:    failures,
			OpenTimeout: time.Minute,
		}),
		successURL: "http://localhost:3000/ok",
		cancelURL:  "http://localhost:3000/cart",
		now:        time.Now,
	}
}

func sessionInput(t *testing.T) shared.CreateSessionInput {
	t.Helper()
	amount, err := order.MoneyFromString("36.50")
	require.NoError(t, err)
	return shared.CreateSessionInput{
		IdempotencyKey: uuid.NewString(),
		Amount:         amount,
		Currency:       "usd",
		Description:    "gocart order (2 stores)",
		Metadata: dompayment.Metadata{
			PaymentSessionID: uuid.New(),
			OrderIDs:         []uuid.UUID{uuid.New(), uuid.New()},
			UserID:           uuid.New(),
			AppTag:           "gocart",
		},
		ExpiresAt: time.Now().Add(40 * time.Minute).Truncate(time.Second),
	}
}

func TestStripeGateway_CreateSession(t *testing.T) {
	t.Run("success: 金額は最小単位、メタデータはセッションと intent の両方に載る", func(t *testing.T) {
		in := sessionInput(t)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
			assert.Equal(t, in.IdempotencyKey, r.Header.Get("Idempotency-Key"))
			require.NoError(t, r.ParseForm())

			assert.Equal(t, "payment", r.PostForm.Get("mode"))
			assert.Equal(t, "3650", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
			assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
			assert.Equal(t, "gocart order (2 stores)", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
			assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))
			assert.Equal(t, in.Metadata.PaymentSessionID.String(), r.PostForm.Get("client_reference_id"))
			assert.Equal(t, "gocart", r.PostForm.Get("metadata[app_tag]"))
			assert.Equal(t, in.Metadata.PaymentSessionID.String(), r.PostForm.Get("metadata[payment_session_id]"))
			assert.Equal(t, "gocart", r.PostForm.Get("payment_intent_data[metadata][app_tag]"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"cs_test_123","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_123"}`))
		}))
		defer srv.Close()

		g := newTestGateway(t, srv, 5)
		created, err := g.CreateSession(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "cs_test_123", created.ExternalID)
		assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", created.URL)
	})

	t.Run("processor error is marked unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"type":"api_error","message":"boom"}}`))
		}))
		defer srv.Close()

		g := newTestGateway(t, srv, 5)
		_, err := g.CreateSession(context.Background(), sessionInput(t))
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrGatewayUnavailable))
		assert.True(t, errs.Is(err, errs.ErrExternalService))
	})

	t.Run("breaker opens after consecutive failures and stops calling out", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"type":"api_error","message":"unavailable"}}`))
		}))
		defer srv.Close()

		g := newTestGateway(t, srv, 2)
		for range 2 {
			_, err := g.CreateSession(context.Background(), sessionInput(t))
			require.Error(t, err)
		}
		assert.Equal(t, gobreaker.StateOpen, g.breaker.State())

		_, err := g.CreateSession(context.Background(), sessionInput(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, gobreaker.ErrOpenState)
		assert.True(t, errs.Is(err, shared.ErrGatewayUnavailable))
		assert.Equal(t, int32(2), hits.Load())
	})
}

func TestBuildParams_DefaultName(t *testing.T) {
	g := &StripeGateway{successURL: "s", cancelURL: "c", now: time.Now}
	in := sessionInput(t)
	in.Description = ""
	in.IdempotencyKey = ""

	p := g.buildParams(in)
	require.Len(t, p.LineItems, 1)
	assert.Equal(t, defaultLineItemName, *p.LineItems[0].PriceData.ProductData.Name)
	assert.Nil(t, p.IdempotencyKey)
	assert.Equal(t, in.ExpiresAt.Unix(), *p.ExpiresAt)
}

func TestBuildParams_ExpiresAtFloor(t *testing.T) {
	stamped := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := config.NewTestConfig()

	t.Run("TTL ちょうど 30 分でも遅延後に下限を割らない", func(t *testing.T) {
		requestAt := stamped.Add(50 * time.Millisecond)
		g := &StripeGateway{successURL: "s", cancelURL: "c", now: func() time.Time { return requestAt }}
		in := sessionInput(t)
		in.ExpiresAt = stamped.Add(30 * time.Minute)

		p := g.buildParams(in)
		lead := time.Unix(*p.ExpiresAt, 0).Sub(requestAt)
		assert.GreaterOrEqual(t, lead, config.MinSessionTTL)
	})

	t.Run("default TTL is kept when it clears the floor", func(t *testing.T) {
		g := &StripeGateway{successURL: "s", cancelURL: "c", now: func() time.Time { return stamped }}
		in := sessionInput(t)
		in.ExpiresAt = stamped.Add(cfg.Payment.SessionTTL)

		p := g.buildParams(in)
		assert.Equal(t, in.ExpiresAt.Unix(), *p.ExpiresAt)
		assert.GreaterOrEqual(t, time.Unix(*p.ExpiresAt, 0).Sub(stamped), config.MinSessionTTL)
	})
}

func TestNewBreaker_DefaultFailures(t *testing.T) {
	cb := newBreaker[int](BreakerSettings{Name: "default", OpenTimeout: time.Minute})
	boom := errs.New("boom")

	for range 4 {
		_, _ = cb.Execute(func() (int, error) { return 0, boom })
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())

	_, _ = cb.Execute(func() (int, error) { return 0, boom })
	assert.Equal(t, gobreaker.StateOpen, cb.State())
}
