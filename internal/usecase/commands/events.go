package commands

import (
	"encoding/json"
	"time"

	"gocart/internal/pkg/errs"
	"gocart/internal/usecase/shared"

	"github.com/google/uuid"
)

type ordersEventPayload struct {
	UserID           uuid.UUID   `json:"userId"`
	OrderIDs         []uuid.UUID `json:"orderIds"`
	Total            string      `json:"total,omitempty"`
	PaymentMethod    string      `json:"paymentMethod,omitempty"`
	PaymentSessionID *uuid.UUID  `json:"paymentSessionId,omitempty"`
	Source           string      `json:"source,omitempty"`
	OccurredAt       time.Time   `json:"occurredAt"`
}

// newOrdersEvent keys the message by user so one buyer's events keep their order downstream.
func newOrdersEvent(eventType string, p ordersEventPayload, now time.Time) (shared.OutboxMessage, error) {
	p.OccurredAt = now
	body, err := json.Marshal(p)
	if err != nil {
		return shared.OutboxMessage{}, errs.Wrapf(err, "marshal %s payload", eventType)
	}
	return shared.OutboxMessage{
		ID:          uuid.New(),
		EventType:   eventType,
		AggregateID: p.UserID.String(),
		Payload:     body,
		CreatedAt:   now,
	}, nil
}
