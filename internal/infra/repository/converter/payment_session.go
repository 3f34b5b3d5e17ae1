package converter

import (
	"gocart/internal/domain/payment"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/pkg/pgconv"
)

func PaymentSessionToInfra(s *payment.Session) sqlc.CreatePaymentSessionParams {
	return sqlc.CreatePaymentSessionParams{
		ID:        s.ID(),
		UserID:    s.UserID(),
		OrderIds:  s.OrderIDs(),
		AppTag:    s.AppTag(),
		Amount:    pgconv.DecimalToNumeric(s.Amount().Decimal()),
		Currency:  s.Currency(),
		CreatedAt: pgconv.TimeToPgtype(s.CreatedAt()),
		ExpiresAt: pgconv.TimeToPgtype(s.ExpiresAt()),
	}
}

func PaymentSessionFromInfra(row sqlc.PaymentSessions) (*payment.Session, error) {
	amount, err := MoneyFromNumeric(row.Amount)
	if err != nil {
		return nil, err
	}

	var externalID string
	if row.ExternalID.Valid {
		externalID = row.ExternalID.String
	}
	var resolution payment.Resolution
	if row.Resolution.Valid {
		resolution = payment.Resolution(row.Resolution.String)
	}

	return payment.ReconstructSession(
		row.ID,
		externalID,
		row.UserID,
		row.OrderIds,
		row.AppTag,
		amount,
		row.Currency,
		payment.Status(row.Status),
		resolution,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.ExpiresAt),
		pgconv.TimePtrFromPgtype(row.ConsumedAt),
	), nil
}
