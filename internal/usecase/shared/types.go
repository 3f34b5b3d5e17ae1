package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Endpoint    string
	Status      string
	RequestHash string
	// JSON of the completed response, replayed verbatim
	Result    []byte
	ExpiresAt time.Time
}

// Outbox event types
const (
	EventOrdersPlaced    = "orders.placed"
	EventOrdersPaid      = "orders.paid"
	EventOrdersCancelled = "orders.cancelled"
)

type OutboxMessage struct {
	ID          uuid.UUID
	EventType   string
	AggregateID string
	Payload     []byte
	CreatedAt   time.Time
	Attempts    int32
}
