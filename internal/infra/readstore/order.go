package readstore

//go:generate mockgen -source=order.go -destination=../../../tests/mock/readstore/order.go -package=readstoremock

import (
	"context"

	"gocart/internal/infra"
	"gocart/internal/infra/repository/converter"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/pkg/pgconv"
	"gocart/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderReadQueries interface {
	CountPriorOrders(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (int64, error)
	ListFinalizedOrdersByUser(ctx context.Context, db sqlc.DBTX, arg sqlc.ListFinalizedOrdersByUserParams) ([]sqlc.Orders, error)
	GetOrderItemsByOrderIDs(ctx context.Context, db sqlc.DBTX, orderIds []uuid.UUID) ([]sqlc.GetOrderItemsByOrderIDsRow, error)
}

type OrderReadStore struct {
	queries OrderReadQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderReadQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OrderReadStore) CountPriorOrders(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := r.queries.CountPriorOrders(ctx, r.db, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count prior orders", err)
	}
	return int(n), nil
}

// ListFinalizedByUser runs both of its queries on db, normally a read-only transaction.
func (r *OrderReadStore) ListFinalizedByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID, limit int32) ([]*queries.OrderView, error) {
	params := sqlc.ListFinalizedOrdersByUserParams{UserID: userID, Limit: limit}
	rows, err := r.queries.ListFinalizedOrdersByUser(ctx, db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	if len(rows) == 0 {
		return []*queries.OrderView{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	itemRows, err := r.queries.GetOrderItemsByOrderIDs(ctx, db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get order items", err)
	}

	items := make(map[uuid.UUID][]queries.OrderItemView, len(rows))
	for _, it := range itemRows {
		price, cerr := pgconv.DecimalFromNumeric(it.UnitPrice)
		if cerr != nil {
			return nil, infra.WrapRepoErr("invalid unit price", cerr)
		}
		items[it.OrderID] = append(items[it.OrderID], queries.OrderItemView{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   price,
		})
	}

	views := make([]*queries.OrderView, 0, len(rows))
	for _, row := range rows {
		v, cerr := toOrderView(row, items[row.ID])
		if cerr != nil {
			return nil, cerr
		}
		views = append(views, v)
	}
	return views, nil
}

func toOrderView(row sqlc.Orders, items []queries.OrderItemView) (*queries.OrderView, error) {
	subtotal, err := pgconv.DecimalFromNumeric(row.Subtotal)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid order subtotal", err)
	}
	shipping, err := pgconv.DecimalFromNumeric(row.ShippingFee)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid order shipping fee", err)
	}
	total, err := pgconv.DecimalFromNumeric(row.Total)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid order total", err)
	}
	snap, err := converter.CouponSnapshotFromJSON(row.Coupon)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid coupon snapshot", err)
	}

	v := &queries.OrderView{
		ID:            row.ID,
		StoreID:       row.StoreID,
		AddressID:     row.AddressID,
		PaymentMethod: row.PaymentMethod,
		Status:        row.Status,
		Subtotal:      subtotal,
		ShippingFee:   shipping,
		Total:         total,
		Items:         items,
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
	}
	if v.Items == nil {
		v.Items = []queries.OrderItemView{}
	}
	if snap != nil {
		v.Coupon = &queries.OrderCouponView{
			Code:            snap.Code,
			DiscountPercent: snap.DiscountPercent,
			Description:     snap.Description,
		}
	}
	return v, nil
}
