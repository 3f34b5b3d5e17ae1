//go:build unit

package cart_test

import (
	"testing"

	"gocart/internal/domain/cart"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCart(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	t.Run("validate", func(t *testing.T) {
		assert.NoError(t, cart.Cart{}.Validate())
		assert.NoError(t, cart.Cart{{ProductID: a, Quantity: 1}}.Validate())
		assert.ErrorIs(t, cart.Cart{{ProductID: a, Quantity: 0}}.Validate(), cart.ErrInvalidQuantity)
		assert.ErrorIs(t, cart.Cart{{ProductID: uuid.Nil, Quantity: 2}}.Validate(), cart.ErrInvalidProduct)
		assert.NoError(t, cart.Cart{{ProductID: a, Quantity: cart.MaxQuantity}}.Validate())
	})

	t.Run("int32 を超える数量は拒否", func(t *testing.T) {
		assert.ErrorIs(t, cart.Cart{{ProductID: a, Quantity: 1 << 33}}.Validate(), cart.ErrInvalidQuantity)
		assert.ErrorIs(t, cart.Cart{{ProductID: a, Quantity: cart.MaxQuantity + 1}}.ForCheckout(), cart.ErrInvalidQuantity)
	})

	t.Run("空カートはチェックアウト不可", func(t *testing.T) {
		assert.ErrorIs(t, cart.Cart(nil).ForCheckout(), cart.ErrEmptyCart)
		assert.ErrorIs(t, cart.Cart{{ProductID: a, Quantity: -1}}.ForCheckout(), cart.ErrInvalidQuantity)
	})

	t.Run("product ids keep first appearance order", func(t *testing.T) {
		c := cart.Cart{
			{ProductID: b, Quantity: 1},
			{ProductID: a, Quantity: 2},
			{ProductID: b, Quantity: 3},
		}
		assert.Equal(t, []uuid.UUID{b, a}, c.ProductIDs())
	})
}
