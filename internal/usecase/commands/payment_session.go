package commands

//go:generate mockgen -source=payment_session.go -destination=../../../tests/mock/commands/payment_session.go -package=commandsmock

import (
	"context"
	"fmt"
	"log/slog"

	"gocart/internal/domain/payment"
	"gocart/internal/pkg/errs"
	"gocart/internal/usecase/shared"
)

type PaymentSessionInitiator interface {
	// Initiate opens the processor session for a committed AWAITING session.
	// On failure the session's orders are cancelled before the error is returned.
	Initiate(ctx context.Context, s *payment.Session) (*shared.CreatedSession, error)
}

type paymentSessionInitiatorImpl struct {
	uow        shared.UnitOfWork
	gateway    shared.PaymentGateway
	reconciler ReconciliationCommands
}

func NewPaymentSessionInitiator(
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	reconciler ReconciliationCommands,
) PaymentSessionInitiator {
	return &paymentSessionInitiatorImpl{
		uow:        uow,
		gateway:    gateway,
		reconciler: reconciler,
	}
}

func (i *paymentSessionInitiatorImpl) Initiate(ctx context.Context, s *payment.Session) (*shared.CreatedSession, error) {
	created, err := i.gateway.CreateSession(ctx, shared.CreateSessionInput{
		IdempotencyKey: s.ID().String(),
		Amount:         s.Amount(),
		Currency:       s.Currency(),
		Description:    describe(s),
		Metadata:       s.Metadata(),
		ExpiresAt:      s.ProcessorExpiresAt(),
	})
	if err != nil {
		i.abandon(ctx, s, err)
		if !errs.Is(err, errs.ErrExternalService) {
			err = errs.Mark(errs.Mark(err, shared.ErrGatewayUnavailable), errs.ErrExternalService)
		}
		return nil, err
	}

	if err = s.AttachExternal(created.ExternalID); err != nil {
		return nil, err
	}
	err = i.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.PaymentSessions().AttachExternal(ctx, tx.DB(), s.ID(), created.ExternalID)
	})
	if err != nil {
		// the processor echoes our own session id in metadata, so reconciliation does not need this column
		slog.WarnContext(ctx, "failed to attach external session id",
			"payment_session_id", s.ID(),
			"external_id", created.ExternalID,
			"error", err)
	}

	return created, nil
}

// abandon drives the session through the failure path right away instead of waiting for expiry.
func (i *paymentSessionInitiatorImpl) abandon(ctx context.Context, s *payment.Session, cause error) {
	ev := payment.Event{
		ID:       "initiation-" + s.ID().String(),
		Type:     string(payment.SourceInitiationFailure),
		Outcome:  payment.OutcomeFailedOrCancelled,
		Metadata: s.Metadata(),
		Source:   payment.SourceInitiationFailure,
	}

	// クライアントが切断しても注文のキャンセルは完了させる
	res, err := i.reconciler.Reconcile(context.WithoutCancel(ctx), ev)
	if err != nil {
		slog.ErrorContext(ctx, "failed to cancel orders after payment initiation failure; expiry sweep will retry",
			"payment_session_id", s.ID(),
			"order_ids", s.OrderIDs(),
			"cause", cause.Error(),
			"error", err)
		return
	}
	slog.WarnContext(ctx, "payment initiation failed, orders cancelled",
		"payment_session_id", s.ID(),
		"order_ids", s.OrderIDs(),
		"result", string(res),
		"cause", cause.Error())
}

func describe(s *payment.Session) string {
	n := len(s.OrderIDs())
	if n == 1 {
		return "gocart order"
	}
	return fmt.Sprintf("gocart order (%d stores)", n)
}
