package readstore

//go:generate mockgen -source=coupon.go -destination=../../../tests/mock/readstore/coupon.go -package=readstoremock

import (
	"context"

	"gocart/internal/domain/coupon"
	"gocart/internal/infra"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/pkg/pgconv"
)

type CouponReadQueries interface {
	GetCouponByCode(ctx context.Context, db sqlc.DBTX, code string) (sqlc.Coupons, error)
}

type CouponReadStore struct {
	queries CouponReadQueries
	db      sqlc.DBTX
}

func NewCouponReadStore(queries CouponReadQueries, db sqlc.DBTX) *CouponReadStore {
	return &CouponReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CouponReadStore) FindByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error) {
	row, err := r.queries.GetCouponByCode(ctx, r.db, code.String())
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}

	return toCouponFromRow(row)
}

func toCouponFromRow(row sqlc.Coupons) (*coupon.Coupon, error) {
	percent, err := pgconv.DecimalFromNumeric(row.DiscountPercent)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid coupon discount", err)
	}

	c, err := coupon.Reconstruct(
		row.Code,
		row.Description,
		percent,
		row.ForNewUsersOnly,
		row.ForMembersOnly,
		pgconv.TimeFromPgtype(row.ExpiresAt),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid coupon row", err)
	}
	return c, nil
}
