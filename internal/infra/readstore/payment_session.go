package readstore

//go:generate mockgen -source=payment_session.go -destination=../../../tests/mock/readstore/payment_session.go -package=readstoremock

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

type PaymentSessionReadQueries interface {
	GetPaymentSession(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.PaymentSessions, error)
	ListExpiredPaymentSessionIDs(ctx context.Context, db sqlc.DBTX, arg sqlc.ListExpiredPaymentSessionIDsParams) ([]uuid.UUID, error)
}

type PaymentSessionReadStore struct {
	queries PaymentSessionReadQueries
	db      sqlc.DBTX
}

func NewPaymentSessionReadStore(queries PaymentSessionReadQueries, db sqlc.DBTX) *PaymentSessionReadStore {
	return &PaymentSessionReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentSessionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*payment.Session, error) {
	row, err := r.queries.GetPaymentSession(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get payment session", err)
	}

	s, err := converter.PaymentSessionFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode payment session", err)
	}
	return s, nil
}

func (r *PaymentSessionReadStore) ExpiredIDs(ctx context.Context, appTag string, now time.Time, limit int32) ([]uuid.UUID, error) {
	params := sqlc.ListExpiredPaymentSessionIDsParams{
		AppTag:    appTag,
		ExpiresAt: pgconv.TimeToPgtype(now),
		Limit:     limit,
	}
	ids, err := r.queries.ListExpiredPaymentSessionIDs(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired payment sessions", err)
	}
	return ids, nil
}
