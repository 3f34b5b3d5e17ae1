package converter

import (
	"encoding/json"

	"gocart/internal/domain/cart"
)

// carts are stored as a JSON array on the user row; NULL means empty
func CartToJSON(c cart.Cart) ([]byte, error) {
	if c == nil {
		c = cart.Cart{}
	}
	return json.Marshal(c)
}

func CartFromJSON(b []byte) (cart.Cart, error) {
	if len(b) == 0 || string(b) == "null" {
		return cart.Cart{}, nil
	}
	var c cart.Cart
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return c, nil
}
