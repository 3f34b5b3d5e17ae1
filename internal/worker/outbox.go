package worker

import (
	"context"
	"log/slog"

	"gocart/internal/pkg/clock"
	"gocart/internal/pkg/config"
	"gocart/internal/pkg/metrics"
	"gocart/internal/usecase/shared"
)

type EventPublisher interface {
	Publish(ctx context.Context, msg shared.OutboxMessage) error
}

// OutboxRelay publishes committed outbox rows. Delivery is at least once; consumers dedupe on the event_id header.
type OutboxRelay struct {
	uow       shared.UnitOfWork
	publisher EventPublisher
	clock     clock.Clock
	metrics   *metrics.Metrics
	batch     int32
}

func NewOutboxRelay(
	uow shared.UnitOfWork,
	publisher EventPublisher,
	clk clock.Clock,
	m *metrics.Metrics,
	cfg config.Config,
) *OutboxRelay {
	return &OutboxRelay{
		uow:       uow,
		publisher: publisher,
		clock:     clk,
		metrics:   m,
		batch:     cfg.Worker.OutboxBatch,
	}
}

// Relay claims one batch and returns how many rows were published.
func (r *OutboxRelay) Relay(ctx context.Context) int {
	published := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		published = 0
		msgs, err := tx.Outbox().ClaimBatch(ctx, tx.DB(), r.batch)
		if err != nil {
			return err
		}

		// rows stay locked until commit, so another relay skips them
		for _, msg := range msgs {
			if perr := r.publisher.Publish(ctx, msg); perr != nil {
				r.metrics.ObserveOutbox("failed")
				slog.WarnContext(ctx, "failed to publish outbox event",
					"event_id", msg.ID,
					"event_type", msg.EventType,
					"attempts", msg.Attempts+1,
					"error", perr)
				if err = tx.Outbox().MarkFailed(ctx, tx.DB(), msg.ID, perr.Error()); err != nil {
					return err
				}
				continue
			}

			if err = tx.Outbox().MarkPublished(ctx, tx.DB(), msg.ID, r.clock.Now()); err != nil {
				return err
			}
			r.metrics.ObserveOutbox("published")
			published++
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "outbox relay failed", "error", err)
		return 0
	}
	return published
}
