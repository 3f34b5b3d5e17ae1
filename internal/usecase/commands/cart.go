package commands

//go:generate mockgen -source=cart.go -destination=../../../tests/mock/commands/cart.go -package=commandsmock

import (
	"context"

	"gocart/internal/domain/cart"
	"gocart/internal/domain/user"
	"gocart/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartCommands interface {
	Replace(ctx context.Context, caller user.Caller, c cart.Cart) error
}

type cartUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewCartUseCase(uow shared.UnitOfWork) CartCommands {
	return &cartUseCaseImpl{uow: uow}
}

// Replace overwrites the caller's cart. The cart is only read back at checkout, which validates it again.
func (uc *cartUseCaseImpl) Replace(ctx context.Context, caller user.Caller, c cart.Cart) error {
	if caller.UserID == uuid.Nil {
		return user.ErrAnonymousCaller
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().SetCart(ctx, tx.DB(), caller.UserID, c)
	})
}
