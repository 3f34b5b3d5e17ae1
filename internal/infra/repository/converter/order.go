package converter

import (
	"encoding/json"
	"math"

	"gocart/internal/domain/order"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/pkg/errs"
	"gocart/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func OrderToInfra(o *order.Order) (sqlc.CreateOrderParams, error) {
	coupon, err := CouponSnapshotToJSON(o.Coupon())
	if err != nil {
		return sqlc.CreateOrderParams{}, err
	}

	return sqlc.CreateOrderParams{
		ID:            o.ID(),
		UserID:        o.UserID(),
		StoreID:       o.StoreID(),
		AddressID:     o.AddressID(),
		PaymentMethod: o.PaymentMethod().String(),
		Status:        o.Status().String(),
		Subtotal:      pgconv.DecimalToNumeric(o.Subtotal().Decimal()),
		ShippingFee:   pgconv.DecimalToNumeric(o.ShippingFee().Decimal()),
		Total:         pgconv.DecimalToNumeric(o.Total().Decimal()),
		Coupon:        coupon,
		CreatedAt:     pgconv.TimeToPgtype(o.CreatedAt()),
	}, nil
}

func OrderItemsToInfra(o *order.Order) ([]sqlc.CreateOrderItemParams, error) {
	items := o.Items()
	params := make([]sqlc.CreateOrderItemParams, len(items))
	for i, li := range items {
		qty := li.Quantity
		if qty <= 0 || qty > math.MaxInt32 {
			return nil, errs.Newf("quantity out of int32 range: %d", qty)
		}
		params[i] = sqlc.CreateOrderItemParams{
			OrderID:   o.ID(),
			Position:  int32(i), // #nosec G115 -- bounded by cart size
			ProductID: li.ProductID,
			Quantity:  int32(qty), // #nosec G115 -- range checked above
			UnitPrice: pgconv.DecimalToNumeric(li.UnitPrice.Decimal()),
		}
	}
	return params, nil
}

// OrderFromInfra rebuilds an order row. Items are loaded separately when needed.
func OrderFromInfra(row sqlc.Orders, items []order.LineItem) (*order.Order, error) {
	method, err := order.NewPaymentMethod(row.PaymentMethod)
	if err != nil {
		return nil, err
	}
	status, err := order.NewStatus(row.Status)
	if err != nil {
		return nil, err
	}
	subtotal, err := MoneyFromNumeric(row.Subtotal)
	if err != nil {
		return nil, err
	}
	shipping, err := MoneyFromNumeric(row.ShippingFee)
	if err != nil {
		return nil, err
	}
	total, err := MoneyFromNumeric(row.Total)
	if err != nil {
		return nil, err
	}
	coupon, err := CouponSnapshotFromJSON(row.Coupon)
	if err != nil {
		return nil, err
	}

	return order.Reconstruct(
		row.ID, row.UserID, row.StoreID, row.AddressID,
		method, status,
		subtotal, shipping, total,
		coupon, items,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func MoneyFromNumeric(n pgtype.Numeric) (order.Money, error) {
	d, err := pgconv.DecimalFromNumeric(n)
	if err != nil {
		return order.Money{}, err
	}
	return order.NewMoney(d)
}

func CouponSnapshotToJSON(s *order.CouponSnapshot) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func CouponSnapshotFromJSON(b []byte) (*order.CouponSnapshot, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	var s order.CouponSnapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
