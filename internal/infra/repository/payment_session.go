package repository

//go:generate mockgen -source=payment_session.go -destination=../../../tests/mock/repository/payment_session.go -package=repositorymock

import (
	"context"
	"time"

	"gocart/internal/domain/payment"
	"gocart/internal/infra"
	"gocart/internal/infra/repository/converter"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PaymentSessionWriteQueries interface {
	CreatePaymentSession(ctx context.Context, db sqlc.DBTX, arg sqlc.CreatePaymentSessionParams) error
	AttachPaymentSessionExternalID(ctx context.Context, db sqlc.DBTX, arg sqlc.AttachPaymentSessionExternalIDParams) (int64, error)
	ConsumePaymentSession(ctx context.Context, db sqlc.DBTX, arg sqlc.ConsumePaymentSessionParams) (sqlc.PaymentSessions, error)
}

type PaymentSessionRepository struct {
	queries PaymentSessionWriteQueries
	db      sqlc.DBTX
}

func NewPaymentSessionRepository(queries PaymentSessionWriteQueries, db sqlc.DBTX) *PaymentSessionRepository {
	return &PaymentSessionRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentSessionRepository) Create(ctx context.Context, tx sqlc.DBTX, s *payment.Session) error {
	if err := r.queries.CreatePaymentSession(ctx, tx, converter.PaymentSessionToInfra(s)); err != nil {
		return infra.WrapRepoErr("failed to create payment session", err)
	}
	return nil
}

func (r *PaymentSessionRepository) AttachExternal(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, externalID string) error {
	params := sqlc.AttachPaymentSessionExternalIDParams{
		ID:         id,
		ExternalID: pgconv.StringToPgtype(externalID),
	}

	n, err := r.queries.AttachPaymentSessionExternalID(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to attach external payment session id", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("payment session missing or already attached", nil, infra.KindConflict)
	}
	return nil
}

func (r *PaymentSessionRepository) Consume(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, res payment.Resolution, now time.Time) (*payment.Session, error) {
	params := sqlc.ConsumePaymentSessionParams{
		ID:         id,
		Resolution: pgconv.StringToPgtype(string(res)),
		ConsumedAt: pgconv.TimeToPgtype(now),
	}

	row, err := r.queries.ConsumePaymentSession(ctx, tx, params)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to consume payment session", err)
	}

	s, err := converter.PaymentSessionFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode payment session", err)
	}
	return s, nil
}
