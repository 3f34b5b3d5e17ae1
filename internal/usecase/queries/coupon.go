package queries

//go:generate mockgen -source=coupon.go -destination=../../../tests/mock/queries/coupon.go -package=queriesmock

import (
	"context"

	"gocart/internal/domain/coupon"
	"gocart/internal/domain/user"
	"gocart/internal/pkg/clock"
	"gocart/internal/pkg/config"
	"gocart/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

// CouponPreview is informational; checkout evaluates the coupon again when it commits.
type CouponPreview struct {
	Code            string
	DiscountPercent decimal.Decimal
	Description     string
}

type CouponQueries interface {
	Preview(ctx context.Context, caller user.Caller, code string) (*CouponPreview, error)
}

type couponQueriesImpl struct {
	uow        shared.UnitOfWork
	clock      clock.Clock
	memberPlan string
}

func NewCouponQueries(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) CouponQueries {
	return &couponQueriesImpl{uow: uow, clock: clk, memberPlan: cfg.Checkout.MemberPlan}
}

func (q *couponQueriesImpl) Preview(ctx context.Context, caller user.Caller, code string) (*CouponPreview, error) {
	normalized, err := coupon.NewCode(code)
	if err != nil {
		return nil, err
	}

	reads := q.uow.CommandReads()
	c, err := reads.CouponByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}

	prior := 0
	if c != nil && c.ForNewUsersOnly() {
		prior, err = reads.CountPriorOrders(ctx, caller.UserID)
		if err != nil {
			return nil, err
		}
	}

	decision := coupon.Evaluate(c, coupon.EligibilityInput{
		UserID:      caller.UserID,
		PriorOrders: prior,
		IsMember:    caller.HasPlan(q.memberPlan),
		Now:         q.clock.Now(),
	})
	if !decision.Accepted() {
		return nil, decision.Err()
	}

	accepted := decision.Coupon()
	return &CouponPreview{
		Code:            accepted.Code().String(),
		DiscountPercent: accepted.Discount().Decimal(),
		Description:     accepted.Description(),
	}, nil
}
