package response

import (
	"gocart/internal/domain/cart"

	"github.com/google/uuid"
)

type CartLineResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type CartResponse struct {
	Cart []CartLineResponse `json:"cart"`
}

func FromCart(c cart.Cart) *CartResponse {
	lines := make([]CartLineResponse, len(c))
	for i, l := range c {
		lines[i] = CartLineResponse{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	return &CartResponse{Cart: lines}
}
