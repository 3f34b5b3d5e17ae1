package worker

import (
	"context"
	"log/slog"

	"gocart/internal/domain/payment"
	"gocart/internal/pkg/clock"
	"gocart/internal/pkg/config"
	"gocart/internal/usecase/commands"
	"gocart/internal/usecase/shared"
)

// ExpirySweeper cancels the orders of payment sessions whose deadline passed without an outcome.
type ExpirySweeper struct {
	uow        shared.UnitOfWork
	reconciler commands.ReconciliationCommands
	clock      clock.Clock
	appTag     string
	batch      int32
}

func NewExpirySweeper(
	uow shared.UnitOfWork,
	reconciler commands.ReconciliationCommands,
	clk clock.Clock,
	cfg config.Config,
) *ExpirySweeper {
	return &ExpirySweeper{
		uow:        uow,
		reconciler: reconciler,
		clock:      clk,
		appTag:     cfg.Server.AppTag,
		batch:      cfg.Worker.ExpirySweepBatch,
	}
}

// Sweep processes one batch and returns how many sessions it cancelled.
func (s *ExpirySweeper) Sweep(ctx context.Context) int {
	ids, err := s.uow.CommandReads().ExpiredSessionIDs(ctx, s.appTag, s.clock.Now(), s.batch)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list expired payment sessions", "error", err)
		return 0
	}

	cancelled := 0
	for _, id := range ids {
		ev := payment.Event{
			ID:      "expiry-" + id.String(),
			Type:    string(payment.SourceExpiry),
			Outcome: payment.OutcomeFailedOrCancelled,
			Metadata: payment.Metadata{
				PaymentSessionID: id,
				AppTag:           s.appTag,
			},
			Source: payment.SourceExpiry,
		}

		res, rerr := s.reconciler.Reconcile(ctx, ev)
		if rerr != nil {
			slog.ErrorContext(ctx, "failed to expire payment session", "payment_session_id", id, "error", rerr)
			continue
		}
		if res == commands.ResultApplied {
			cancelled++
		}
	}

	s.purgeIdempotencyKeys(ctx)
	return cancelled
}

func (s *ExpirySweeper) purgeIdempotencyKeys(ctx context.Context) {
	var n int64
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var derr error
		n, derr = tx.Idempotency().DeleteExpired(ctx, tx.DB())
		return derr
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to purge idempotency keys", "error", err)
		return
	}
	if n > 0 {
		slog.DebugContext(ctx, "purged idempotency keys", "count", n)
	}
}
