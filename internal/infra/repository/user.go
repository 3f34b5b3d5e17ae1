package repository

//go:generate mockgen -source=user.go -destination=../../../tests/mock/repository/user.go -package=repositorymock

import (
	"context"

	"gocart/internal/domain/cart"
	"gocart/internal/infra"
	"gocart/internal/infra/repository/converter"
	sqlc "gocart/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UserWriteQueries interface {
	EnsureUser(ctx context.Context, db sqlc.DBTX, id uuid.UUID) error
	LockUserForCheckout(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (uuid.UUID, error)
	SetUserCart(ctx context.Context, db sqlc.DBTX, arg sqlc.SetUserCartParams) error
}

type UserRepository struct {
	queries UserWriteQueries
	db      sqlc.DBTX
}

func NewUserRepository(queries UserWriteQueries, db sqlc.DBTX) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      db,
	}
}

// users are mirrored from the identity provider on first write
func (r *UserRepository) LockForCheckout(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID) error {
	if err := r.queries.EnsureUser(ctx, tx, userID); err != nil {
		return infra.WrapRepoErr("failed to ensure user", err)
	}
	if _, err := r.queries.LockUserForCheckout(ctx, tx, userID); err != nil {
		return infra.WrapRepoErr("failed to lock user", err)
	}
	return nil
}

func (r *UserRepository) SetCart(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID, c cart.Cart) error {
	if err := r.queries.EnsureUser(ctx, tx, userID); err != nil {
		return infra.WrapRepoErr("failed to ensure user", err)
	}

	payload, err := converter.CartToJSON(c)
	if err != nil {
		return infra.WrapRepoErr("failed to encode cart", err)
	}

	params := sqlc.SetUserCartParams{ID: userID, Cart: payload}
	if err := r.queries.SetUserCart(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to update cart", err)
	}
	return nil
}

func (r *UserRepository) ClearCart(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID) error {
	return r.SetCart(ctx, tx, userID, cart.Cart{})
}
