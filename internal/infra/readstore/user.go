package readstore

import (
	"context"

	"gocart/internal/domain/cart"
	"gocart/internal/infra"
	"gocart/internal/infra/repository/converter"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	GetUserCart(ctx context.Context, db sqlc.DBTX, id uuid.UUID) ([]byte, error)
	GetAddressOwner(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (uuid.UUID, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      sqlc.DBTX
}

func NewUserReadStore(queries UserReadQueries, db sqlc.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) GetCart(ctx context.Context, userID uuid.UUID) (cart.Cart, error) {
	raw, err := r.queries.GetUserCart(ctx, r.db, userID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			// まだ一度も書き込みのないユーザー
			return cart.Cart{}, nil
		}
		return nil, infra.WrapRepoErr("failed to get cart", err)
	}

	c, err := converter.CartFromJSON(raw)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode cart", err)
	}
	return c, nil
}

func (r *UserReadStore) AddressOwner(ctx context.Context, addressID uuid.UUID) (uuid.UUID, bool, error) {
	owner, err := r.queries.GetAddressOwner(ctx, r.db, addressID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, infra.WrapRepoErr("failed to get address owner", err)
	}
	return owner, true, nil
}
