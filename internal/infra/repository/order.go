package repository

//go:generate mockgen -source=order.go -destination=../../../tests/mock/repository/order.go -package=repositorymock

import (
	"context"

	"gocart/internal/domain/order"
	"gocart/internal/infra"
	"gocart/internal/infra/repository/converter"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/pkg/errs"
	"gocart/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OrderWriteQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) error
	CreateOrderItem(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderItemParams) error
	LockOrdersByIDs(ctx context.Context, db sqlc.DBTX, ids []uuid.UUID) ([]sqlc.Orders, error)
	UpdatePendingOrderStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdatePendingOrderStatusParams) (int64, error)
}

type OrderRepository struct {
	queries OrderWriteQueries
	db      sqlc.DBTX
}

func NewOrderRepository(queries OrderWriteQueries, db sqlc.DBTX) *OrderRepository {
	return &OrderRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OrderRepository) Create(ctx context.Context, tx sqlc.DBTX, o *order.Order) error {
	params, err := converter.OrderToInfra(o)
	if err != nil {
		return infra.WrapRepoErr("failed to encode order", err)
	}
	items, err := converter.OrderItemsToInfra(o)
	if err != nil {
		return infra.WrapRepoErr("failed to encode order items", err)
	}

	if err := r.queries.CreateOrder(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}

	for _, item := range items {
		if err := r.queries.CreateOrderItem(ctx, tx, item); err != nil {
			return infra.WrapRepoErr("failed to create order item", err)
		}
	}

	return nil
}

func (r *OrderRepository) LockByIDs(ctx context.Context, tx sqlc.DBTX, ids []uuid.UUID) ([]*order.Order, error) {
	rows, err := r.queries.LockOrdersByIDs(ctx, tx, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock orders", err)
	}

	orders := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, cerr := converter.OrderFromInfra(row, nil)
		if cerr != nil {
			return nil, infra.WrapRepoErr("failed to decode order", cerr)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx sqlc.DBTX, o *order.Order) error {
	params := sqlc.UpdatePendingOrderStatusParams{
		ID:        o.ID(),
		Status:    o.Status().String(),
		UpdatedAt: pgconv.TimeToPgtype(o.UpdatedAt()),
	}

	n, err := r.queries.UpdatePendingOrderStatus(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if n == 0 {
		// 行ロック済みなのでここに来るのは PENDING 以外のときだけ
		return errs.Wrapf(order.ErrInvalidTransition, "order %s", o.ID())
	}
	return nil
}
