package request

import "gocart/internal/domain/cart"

type ReplaceCartRequest struct {
	Cart []CartLineRequest `json:"cart"`
}

func (r *ReplaceCartRequest) ToDomain() cart.Cart {
	return toCart(r.Cart)
}
