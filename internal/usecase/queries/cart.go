package queries

//go:generate mockgen -source=cart.go -destination=../../../tests/mock/queries/cart.go -package=queriesmock

import (
	"context"

	"gocart/internal/domain/cart"
	"gocart/internal/domain/user"

	"github.com/google/uuid"
)

type CartReadStore interface {
	// GetCart returns an empty cart for users that never stored one.
	GetCart(ctx context.Context, userID uuid.UUID) (cart.Cart, error)
}

type CartQueries interface {
	Get(ctx context.Context, caller user.Caller) (cart.Cart, error)
}

type cartQueriesImpl struct {
	store CartReadStore
}

func NewCartQueries(store CartReadStore) CartQueries {
	return &cartQueriesImpl{store: store}
}

func (q *cartQueriesImpl) Get(ctx context.Context, caller user.Caller) (cart.Cart, error) {
	return q.store.GetCart(ctx, caller.UserID)
}
