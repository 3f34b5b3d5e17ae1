package request

import (
	"gocart/internal/domain/cart"
	"gocart/internal/usecase/commands"

	"github.com/google/uuid"
)

type CartLineRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// quantity and emptiness are checked by the domain so the client gets the specific reason
type CheckoutRequest struct {
	AddressID     uuid.UUID         `json:"addressId"`
	CartLines     []CartLineRequest `json:"cartLines"`
	CouponCode    *string           `json:"couponCode,omitempty"`
	PaymentMethod string            `json:"paymentMethod" binding:"required"`
}

func (r *CheckoutRequest) ToInput() commands.CheckoutInput {
	in := commands.CheckoutInput{
		AddressID:     r.AddressID,
		Lines:         toCart(r.CartLines),
		PaymentMethod: r.PaymentMethod,
	}
	if r.CouponCode != nil {
		in.CouponCode = *r.CouponCode
	}
	return in
}

func toCart(lines []CartLineRequest) cart.Cart {
	c := make(cart.Cart, len(lines))
	for i, l := range lines {
		c[i] = cart.Line{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	return c
}
