package shared

import (
	"context"
	"time"

	"gocart/internal/domain/cart"
	"gocart/internal/domain/coupon"
	"gocart/internal/domain/order"
	"gocart/internal/domain/payment"
	sqlc "gocart/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	PaymentSessions() PaymentSessionRepository
	Users() UserRepository
	Idempotency() IdempotencyRepository
	Outbox() OutboxRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

// CommandReads are the reads a command needs to make its decision.
// Inside a Tx they see the transaction's snapshot and locks.
type CommandReads interface {
	// ProductsByIDs returns catalog snapshots keyed by id. Unknown ids are absent from the map.
	ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]order.Product, error)
	// CouponByCode returns nil without error when no coupon has the code.
	CouponByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error)
	CountPriorOrders(ctx context.Context, userID uuid.UUID) (int, error)
	// AddressOwner returns ok=false when the address does not exist.
	AddressOwner(ctx context.Context, addressID uuid.UUID) (owner uuid.UUID, ok bool, err error)
	UserCart(ctx context.Context, userID uuid.UUID) (cart.Cart, error)
	// IdempotencyByKey returns nil without error when the key is unknown.
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	// PaymentSessionByID returns nil without error when the session is unknown.
	PaymentSessionByID(ctx context.Context, id uuid.UUID) (*payment.Session, error)
	// ExpiredSessionIDs lists AWAITING sessions of appTag whose expires_at has passed.
	ExpiredSessionIDs(ctx context.Context, appTag string, now time.Time, limit int32) ([]uuid.UUID, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, o *order.Order) error
	// LockByIDs loads and row-locks the orders in id order. Missing ids are simply absent.
	LockByIDs(ctx context.Context, tx sqlc.DBTX, ids []uuid.UUID) ([]*order.Order, error)
	// UpdateStatus persists a transition out of PENDING.
	UpdateStatus(ctx context.Context, tx sqlc.DBTX, o *order.Order) error
}

type PaymentSessionRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, s *payment.Session) error
	AttachExternal(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, externalID string) error
	// Consume moves an AWAITING session to CONSUMED in one conditional update.
	// It returns nil without error when the session is not awaiting (or absent).
	Consume(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, res payment.Resolution, now time.Time) (*payment.Session, error)
}

type UserRepository interface {
	// LockForCheckout creates the user mirror row if needed and locks it for the transaction.
	LockForCheckout(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID) error
	SetCart(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID, c cart.Cart) error
	ClearCart(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert claims the key. inserted is false when another live request owns it.
	TryInsert(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (inserted bool, err error)
	Complete(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, result []byte) error
	// Release drops a key still in processing so the client can retry.
	Release(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, tx sqlc.DBTX) (int64, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, tx sqlc.DBTX, msg OutboxMessage) error
	// ClaimBatch locks unpublished rows; concurrent relays skip each other's rows.
	ClaimBatch(ctx context.Context, tx sqlc.DBTX, limit int32) ([]OutboxMessage, error)
	MarkPublished(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, reason string) error
}
