package cart

import (
	"math"

	"gocart/internal/pkg/errs"

	"github.com/google/uuid"
)

// MaxQuantity matches the int32 order_items.quantity column.
const MaxQuantity = math.MaxInt32

var (
	ErrEmptyCart       = errs.Validation("cart is empty")
	ErrInvalidQuantity = errs.Validation("quantity must be between 1 and 2147483647")
	ErrInvalidProduct  = errs.Validation("product id is required")
)

type Line struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// Cart keeps lines in the order the buyer added them.
type Cart []Line

func (c Cart) IsEmpty() bool { return len(c) == 0 }

// Validate checks every line; an empty cart is valid here and rejected by checkout.
func (c Cart) Validate() error {
	for _, l := range c {
		if l.ProductID == uuid.Nil {
			return ErrInvalidProduct
		}
		if l.Quantity <= 0 || l.Quantity > MaxQuantity {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// ForCheckout validates c and rejects an empty cart.
func (c Cart) ForCheckout() error {
	if c.IsEmpty() {
		return ErrEmptyCart
	}
	return c.Validate()
}

// ProductIDs returns distinct product ids in first-appearance order.
func (c Cart) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(c))
	ids := make([]uuid.UUID, 0, len(c))
	for _, l := range c {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}
