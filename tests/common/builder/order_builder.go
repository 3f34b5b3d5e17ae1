//go:build unit || e2e

package builder

import (
	"time"

	"gocart/internal/domain/order"

	"github.com/google/uuid"
)

// OrderBuilder reconstructs stored orders, for tests that start after checkout.
type OrderBuilder struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	StoreID       uuid.UUID
	AddressID     uuid.UUID
	PaymentMethod order.PaymentMethod
	Status        order.Status
	Subtotal      string
	ShippingFee   string
	Total         string
	Coupon        *order.CouponSnapshot
	Items         []order.LineItem
	CreatedAt     time.Time
}

func NewOrderBuilder() *OrderBuilder {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return &OrderBuilder{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		StoreID:       uuid.New(),
		AddressID:     uuid.New(),
		PaymentMethod: order.PaymentProcessor,
		Status:        order.StatusPending,
		Subtotal:      "35.00",
		ShippingFee:   "5.00",
		Total:         "40.00",
		Items: []order.LineItem{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: Money("10.00")},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: Money("15.00")},
		},
		CreatedAt: now,
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) ForUser(userID uuid.UUID) *OrderBuilder {
	b.UserID = userID
	return b
}

func (b *OrderBuilder) WithStatus(s order.Status) *OrderBuilder {
	b.Status = s
	return b
}

func (b *OrderBuilder) BuildDomain() *order.Order {
	return order.Reconstruct(
		b.ID, b.UserID, b.StoreID, b.AddressID,
		b.PaymentMethod,
		b.Status,
		Money(b.Subtotal), Money(b.ShippingFee), Money(b.Total),
		b.Coupon,
		b.Items,
		b.CreatedAt, b.CreatedAt,
	)
}
