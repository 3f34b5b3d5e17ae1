//go:build unit || e2e

package builder

import (
	"gocart/internal/domain/cart"
	"gocart/internal/domain/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductBuilder builds catalog snapshots. Products default to an active store and in-stock.
type ProductBuilder struct {
	ID        uuid.UUID
	StoreID   uuid.UUID
	Name      string
	Price     string
	Available bool
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:        uuid.New(),
		StoreID:   uuid.New(),
		Name:      "Test product",
		Price:     "10.00",
		Available: true,
	}
}

func (b *ProductBuilder) InStore(storeID uuid.UUID) *ProductBuilder {
	b.StoreID = storeID
	return b
}

func (b *ProductBuilder) WithPrice(price string) *ProductBuilder {
	b.Price = price
	return b
}

func (b *ProductBuilder) Unavailable() *ProductBuilder {
	b.Available = false
	return b
}

func (b *ProductBuilder) BuildDomain() order.Product {
	price, err := order.NewMoney(decimal.RequireFromString(b.Price))
	if err != nil {
		panic(err)
	}
	return order.Product{
		ID:        b.ID,
		StoreID:   b.StoreID,
		Name:      b.Name,
		Price:     price,
		Available: b.Available,
	}
}

// Line returns a cart line for the product.
func (b *ProductBuilder) Line(qty int) cart.Line {
	return cart.Line{ProductID: b.ID, Quantity: qty}
}

// Money is a test shorthand for a valid amount.
func Money(s string) order.Money {
	m, err := order.MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}
