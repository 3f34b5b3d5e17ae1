package repository

//go:generate mockgen -source=outbox.go -destination=../../../tests/mock/repository/outbox.go -package=repositorymock

import (
	"context"
	"time"

	"gocart/internal/infra"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/pkg/pgconv"
	"gocart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const maxLastErrorLen = 1024

type OutboxWriteQueries interface {
	EnqueueOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.EnqueueOutboxEventParams) error
	ClaimOutboxEvents(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.OutboxEvents, error)
	MarkOutboxEventPublished(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventPublishedParams) error
	MarkOutboxEventFailed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventFailedParams) error
}

type OutboxRepository struct {
	queries OutboxWriteQueries
	db      sqlc.DBTX
}

func NewOutboxRepository(queries OutboxWriteQueries, db sqlc.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, tx sqlc.DBTX, msg shared.OutboxMessage) error {
	params := sqlc.EnqueueOutboxEventParams{
		EventType:   msg.EventType,
		AggregateID: msg.AggregateID,
		Payload:     msg.Payload,
		CreatedAt:   pgtype.Timestamptz{Time: msg.CreatedAt, Valid: true},
	}

	if err := r.queries.EnqueueOutboxEvent(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}

	return nil
}

func (r *OutboxRepository) ClaimBatch(ctx context.Context, tx sqlc.DBTX, limit int32) ([]shared.OutboxMessage, error) {
	rows, err := r.queries.ClaimOutboxEvents(ctx, tx, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox events", err)
	}

	msgs := make([]shared.OutboxMessage, len(rows))
	for i, row := range rows {
		msgs[i] = shared.OutboxMessage{
			ID:          row.ID,
			EventType:   row.EventType,
			AggregateID: row.AggregateID,
			Payload:     row.Payload,
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
			Attempts:    row.Attempts,
		}
	}
	return msgs, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, at time.Time) error {
	params := sqlc.MarkOutboxEventPublishedParams{
		ID:          id,
		PublishedAt: pgconv.TimeToPgtype(at),
	}

	if err := r.queries.MarkOutboxEventPublished(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to mark outbox event published", err)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, reason string) error {
	if len(reason) > maxLastErrorLen {
		reason = reason[:maxLastErrorLen]
	}
	params := sqlc.MarkOutboxEventFailedParams{
		ID:        id,
		LastError: pgtype.Text{String: reason, Valid: true},
	}

	if err := r.queries.MarkOutboxEventFailed(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to mark outbox event failed", err)
	}
	return nil
}
