package queries

//go:generate mockgen -source=order.go -destination=../../../tests/mock/queries/order.go -package=queriesmock

import (
	"context"
	"time"

	"gocart/internal/domain/user"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultOrderLimit = 50
	maxOrderLimit     = 100
)

type OrderItemView struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int32
	UnitPrice   decimal.Decimal
}

type OrderCouponView struct {
	Code            string
	DiscountPercent decimal.Decimal
	Description     string
}

// OrderView is a finalized order as the buyer sees it
type OrderView struct {
	ID            uuid.UUID
	StoreID       uuid.UUID
	AddressID     uuid.UUID
	PaymentMethod string
	Status        string
	Subtotal      decimal.Decimal
	ShippingFee   decimal.Decimal
	Total         decimal.Decimal
	Coupon        *OrderCouponView
	Items         []OrderItemView
	CreatedAt     time.Time
}

type OrderReadStore interface {
	// ListFinalizedByUser returns PAID orders newest first. PENDING and CANCELLED orders never appear.
	ListFinalizedByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID, limit int32) ([]*OrderView, error)
}

type OrderQueries interface {
	ListMine(ctx context.Context, caller user.Caller, limit int) ([]*OrderView, error)
}

type orderQueriesImpl struct {
	uow   shared.UnitOfWork
	store OrderReadStore
}

func NewOrderQueries(uow shared.UnitOfWork, store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{uow: uow, store: store}
}

// ListMine reads orders and their items from one snapshot.
func (q *orderQueriesImpl) ListMine(ctx context.Context, caller user.Caller, limit int) ([]*OrderView, error) {
	var views []*OrderView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, db sqlc.DBTX) error {
		var err error
		views, err = q.store.ListFinalizedByUser(ctx, db, caller.UserID, clampLimit(limit))
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func clampLimit(limit int) int32 {
	switch {
	case limit <= 0:
		return defaultOrderLimit
	case limit > maxOrderLimit:
		return maxOrderLimit
	default:
		return int32(limit) // #nosec G115 -- bounded above
	}
}
