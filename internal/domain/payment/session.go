package payment

import (
	"time"

	"gocart/internal/domain/order"
	"gocart/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNoOrders         = errs.Validation("payment session requires at least one order")
	ErrInvalidAppTag    = errs.Validation("app tag is required")
	ErrExternalAttached = errs.Conflict("payment session already has an external reference")
)

type Status string

const (
	StatusAwaiting Status = "AWAITING"
	StatusConsumed Status = "CONSUMED"
)

// Resolution records how a consumed session ended.
type Resolution string

const (
	ResolutionPaid             Resolution = "PAID"
	ResolutionCancelled        Resolution = "CANCELLED"
	ResolutionIntegrityAnomaly Resolution = "INTEGRITY_ANOMALY"
)

type Session struct {
	id         uuid.UUID
	externalID string
	userID     uuid.UUID
	orderIDs   []uuid.UUID
	appTag     string
	amount     order.Money
	currency   string
	status     Status
	resolution Resolution
	createdAt  time.Time
	// processorExpiresAt is what the processor is told; expiresAt adds a grace window for late events.
	processorExpiresAt time.Time
	expiresAt          time.Time
	consumedAt         *time.Time
}

func NewSession(
	userID uuid.UUID,
	orderIDs []uuid.UUID,
	appTag string,
	amount order.Money,
	currency string,
	now time.Time,
	ttl, grace time.Duration,
) (*Session, error) {
	if len(orderIDs) == 0 {
		return nil, ErrNoOrders
	}
	if appTag == "" {
		return nil, ErrInvalidAppTag
	}
	ids := make([]uuid.UUID, len(orderIDs))
	copy(ids, orderIDs)

	return &Session{
		id:                 uuid.New(),
		userID:             userID,
		orderIDs:           ids,
		appTag:             appTag,
		amount:             amount,
		currency:           currency,
		status:             StatusAwaiting,
		createdAt:          now,
		processorExpiresAt: now.Add(ttl),
		expiresAt:          now.Add(ttl + grace),
	}, nil
}

func ReconstructSession(
	id uuid.UUID,
	externalID string,
	userID uuid.UUID,
	orderIDs []uuid.UUID,
	appTag string,
	amount order.Money,
	currency string,
	status Status,
	resolution Resolution,
	createdAt, expiresAt time.Time,
	consumedAt *time.Time,
) *Session {
	return &Session{
		id:         id,
		externalID: externalID,
		userID:     userID,
		orderIDs:   orderIDs,
		appTag:     appTag,
		amount:     amount,
		currency:   currency,
		status:     status,
		resolution: resolution,
		createdAt:  createdAt,
		expiresAt:  expiresAt,
		consumedAt: consumedAt,
	}
}

// AttachExternal stores the processor's session id. It can be set once.
func (s *Session) AttachExternal(externalID string) error {
	if s.externalID != "" {
		return ErrExternalAttached
	}
	s.externalID = externalID
	return nil
}

// Metadata is what the processor must echo back on every outcome event.
func (s *Session) Metadata() Metadata {
	return Metadata{
		PaymentSessionID: s.id,
		OrderIDs:         s.orderIDs,
		UserID:           s.userID,
		AppTag:           s.appTag,
	}
}

func (s *Session) ID() uuid.UUID                 { return s.id }
func (s *Session) ExternalID() string            { return s.externalID }
func (s *Session) UserID() uuid.UUID             { return s.userID }
func (s *Session) OrderIDs() []uuid.UUID         { return s.orderIDs }
func (s *Session) AppTag() string                { return s.appTag }
func (s *Session) Amount() order.Money           { return s.amount }
func (s *Session) Currency() string              { return s.currency }
func (s *Session) Status() Status                { return s.status }
func (s *Session) Resolution() Resolution        { return s.resolution }
func (s *Session) CreatedAt() time.Time          { return s.createdAt }
func (s *Session) ProcessorExpiresAt() time.Time { return s.processorExpiresAt }
func (s *Session) ExpiresAt() time.Time          { return s.expiresAt }
func (s *Session) ConsumedAt() *time.Time        { return s.consumedAt }
