package commands

//go:generate mockgen -source=reconciliation.go -destination=../../../tests/mock/commands/reconciliation.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"gocart/internal/domain/order"
	"gocart/internal/domain/payment"
	"gocart/internal/pkg/clock"
	"gocart/internal/pkg/config"
	"gocart/internal/pkg/errs"
	"gocart/internal/pkg/metrics"
	"gocart/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUnknownSession  = errs.Sentinel("unknown payment session", errs.ErrReconciliation)
	ErrForeignSession  = errs.Sentinel("payment session belongs to another deployment", errs.ErrReconciliation)
	ErrOrderSetMissing = errs.Sentinel("payment session references missing orders", errs.ErrDataIntegrity)
)

type ReconcileResult string

const (
	ResultApplied   ReconcileResult = "applied"
	ResultDuplicate ReconcileResult = "duplicate"
	ResultIgnored   ReconcileResult = "ignored"
	// ResultQuarantined: the session was consumed without touching its orders and an operator was alerted.
	ResultQuarantined ReconcileResult = "quarantined"
)

type ReconciliationCommands interface {
	// Reconcile applies a verified payment outcome to the session's whole order set exactly once.
	Reconcile(ctx context.Context, ev payment.Event) (ReconcileResult, error)
}

type reconciliationUseCaseImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	metrics *metrics.Metrics
	appTag  string
}

func NewReconciliationUseCase(uow shared.UnitOfWork, clk clock.Clock, m *metrics.Metrics, cfg config.Config) ReconciliationCommands {
	return &reconciliationUseCaseImpl{
		uow:     uow,
		clock:   clk,
		metrics: m,
		appTag:  cfg.Server.AppTag,
	}
}

func (uc *reconciliationUseCaseImpl) Reconcile(ctx context.Context, ev payment.Event) (ReconcileResult, error) {
	res, err := uc.reconcile(ctx, ev)

	label := string(res)
	if err != nil {
		label = "error"
	}
	uc.metrics.ObserveReconciliation(string(ev.Outcome), label)
	return res, err
}

func (uc *reconciliationUseCaseImpl) reconcile(ctx context.Context, ev payment.Event) (ReconcileResult, error) {
	logger := slog.With(
		"event_id", ev.ID,
		"event_type", ev.Type,
		"outcome", string(ev.Outcome),
		"source", string(ev.Source),
		"payment_session_id", ev.Metadata.PaymentSessionID,
	)

	if ev.Metadata.AppTag != uc.appTag {
		logger.InfoContext(ctx, "payment event for another deployment ignored", "app_tag", ev.Metadata.AppTag)
		return ResultIgnored, nil
	}
	if ev.Metadata.PaymentSessionID == uuid.Nil {
		return "", errs.Wrapf(ErrUnknownSession, "event %s carries no payment session", ev.ID)
	}

	resolution := payment.ResolutionCancelled
	if ev.Outcome == payment.OutcomeSucceeded {
		resolution = payment.ResolutionPaid
	}

	now := uc.clock.Now()
	var result ReconcileResult
	var session *payment.Session
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		session, err = uc.consume(ctx, tx, ev.Metadata.PaymentSessionID, resolution, now)
		if err != nil {
			return err
		}
		if session == nil {
			result = ResultDuplicate
			return nil
		}

		if err = uc.settle(ctx, tx, session, ev, now); err != nil {
			return err
		}
		result = ResultApplied
		return nil
	})

	switch {
	case err == nil:
	case errs.Is(err, errs.ErrDataIntegrity):
		return uc.quarantine(ctx, logger, ev.Metadata.PaymentSessionID, err)
	default:
		if errs.Is(err, errs.ErrReconciliation) {
			logger.WarnContext(ctx, "payment event rejected", "error", err)
		}
		return "", err
	}

	if result == ResultDuplicate {
		logger.InfoContext(ctx, "payment event already reconciled")
		return result, nil
	}
	logger.InfoContext(ctx, "payment reconciled",
		"order_ids", session.OrderIDs(),
		"resolution", string(resolution))
	return result, nil
}

// consume returns nil without error when another delivery already consumed the session.
func (uc *reconciliationUseCaseImpl) consume(
	ctx context.Context,
	tx shared.Tx,
	id uuid.UUID,
	resolution payment.Resolution,
	now time.Time,
) (*payment.Session, error) {
	s, err := tx.PaymentSessions().Consume(ctx, tx.DB(), id, resolution, now)
	if err != nil {
		return nil, err
	}
	if s != nil {
		if s.AppTag() != uc.appTag {
			return nil, errs.Wrapf(ErrForeignSession, "session %s", id)
		}
		return s, nil
	}

	existing, err := tx.Reads().PaymentSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.Wrapf(ErrUnknownSession, "session %s", id)
	}
	return nil, nil
}

// settle moves every order of the session out of PENDING or fails as a whole.
func (uc *reconciliationUseCaseImpl) settle(
	ctx context.Context,
	tx shared.Tx,
	s *payment.Session,
	ev payment.Event,
	now time.Time,
) error {
	orders, err := tx.Orders().LockByIDs(ctx, tx.DB(), s.OrderIDs())
	if err != nil {
		return err
	}
	if len(orders) != len(s.OrderIDs()) {
		return errs.Wrapf(ErrOrderSetMissing, "found %d of %d orders", len(orders), len(s.OrderIDs()))
	}

	succeeded := ev.Outcome == payment.OutcomeSucceeded
	for _, o := range orders {
		if o.UserID() != s.UserID() {
			return errs.Wrapf(ErrOrderSetMissing, "order %s belongs to another user", o.ID())
		}
		if succeeded {
			err = o.MarkPaid(now)
		} else {
			err = o.Cancel(now)
		}
		if err != nil {
			return errs.Wrapf(err, "order %s is %s", o.ID(), o.Status())
		}
		if err = tx.Orders().UpdateStatus(ctx, tx.DB(), o); err != nil {
			return err
		}
	}

	eventType := shared.EventOrdersCancelled
	if succeeded {
		if err = tx.Users().ClearCart(ctx, tx.DB(), s.UserID()); err != nil {
			return err
		}
		eventType = shared.EventOrdersPaid
	}

	sid := s.ID()
	msg, err := newOrdersEvent(eventType, ordersEventPayload{
		UserID:           s.UserID(),
		OrderIDs:         s.OrderIDs(),
		Total:            s.Amount().String(),
		PaymentMethod:    order.PaymentProcessor.String(),
		PaymentSessionID: &sid,
		Source:           string(ev.Source),
	}, now)
	if err != nil {
		return err
	}
	return tx.Outbox().Enqueue(ctx, tx.DB(), msg)
}

// quarantine consumes the session on its own so the anomaly is not replayed, then alerts an operator.
func (uc *reconciliationUseCaseImpl) quarantine(
	ctx context.Context,
	logger *slog.Logger,
	id uuid.UUID,
	cause error,
) (ReconcileResult, error) {
	now := uc.clock.Now()
	var consumed *payment.Session
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var cerr error
		consumed, cerr = tx.PaymentSessions().Consume(ctx, tx.DB(), id, payment.ResolutionIntegrityAnomaly, now)
		return cerr
	})
	if err != nil {
		return "", errs.Wrap(err, "quarantine payment session")
	}

	if consumed == nil {
		// a concurrent delivery consumed it first
		return ResultDuplicate, nil
	}

	logger.ErrorContext(ctx, "payment session references orders in an unexpected state",
		"operator_alert", true,
		"order_ids", consumed.OrderIDs(),
		"user_id", consumed.UserID(),
		"error", cause.Error())
	return ResultQuarantined, nil
}
