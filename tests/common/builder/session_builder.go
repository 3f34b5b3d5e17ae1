//go:build unit || e2e

package builder

import (
	"time"

	"gocart/internal/domain/order"
	"gocart/internal/domain/payment"

	"github.com/google/uuid"
)

type SessionBuilder struct {
	UserID   uuid.UUID
	OrderIDs []uuid.UUID
	AppTag   string
	Amount   string
	Currency string
	Now      time.Time
	TTL      time.Duration
	Grace    time.Duration
}

func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		UserID:   uuid.New(),
		OrderIDs: []uuid.UUID{uuid.New()},
		AppTag:   "gocart",
		Amount:   "40.00",
		Currency: "usd",
		Now:      time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		TTL:      31 * time.Minute,
		Grace:    10 * time.Minute,
	}
}

func (b *SessionBuilder) With(mutate func(*SessionBuilder)) *SessionBuilder {
	mutate(b)
	return b
}

func (b *SessionBuilder) ForOrders(userID uuid.UUID, orderIDs ...uuid.UUID) *SessionBuilder {
	b.UserID = userID
	b.OrderIDs = orderIDs
	return b
}

func (b *SessionBuilder) BuildDomain() (*payment.Session, error) {
	amount, err := order.MoneyFromString(b.Amount)
	if err != nil {
		return nil, err
	}
	return payment.NewSession(b.UserID, b.OrderIDs, b.AppTag, amount, b.Currency, b.Now, b.TTL, b.Grace)
}

// Event builds a verified outcome event echoing the session's metadata.
func SessionEvent(s *payment.Session, outcome payment.Outcome) payment.Event {
	return payment.Event{
		ID:       "evt_" + uuid.NewString(),
		Type:     "checkout.session.completed",
		Outcome:  outcome,
		Metadata: s.Metadata(),
		Source:   payment.SourceWebhook,
	}
}
