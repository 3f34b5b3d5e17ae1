//go:build unit || e2e

package builder

import (
	"time"

	"gocart/internal/domain/coupon"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/pkg/pgconv"

	"github.com/shopspring/decimal"
)

type CouponBuilder struct {
	Code            string
	Description     string
	DiscountPercent decimal.Decimal
	ForNewUsersOnly bool
	ForMembersOnly  bool
	ExpiresAt       time.Time
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		Code:            "SAVE10",
		Description:     "10% off everything",
		DiscountPercent: decimal.NewFromInt(10),
		ExpiresAt:       time.Now().Add(24 * time.Hour),
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) BuildDomain() (*coupon.Coupon, error) {
	return coupon.Reconstruct(b.Code, b.Description, b.DiscountPercent, b.ForNewUsersOnly, b.ForMembersOnly, b.ExpiresAt)
}

func (b *CouponBuilder) BuildInfra() sqlc.Coupons {
	return sqlc.Coupons{
		Code:            b.Code,
		Description:     b.Description,
		DiscountPercent: pgconv.DecimalToNumeric(b.DiscountPercent),
		ForNewUsersOnly: b.ForNewUsersOnly,
		ForMembersOnly:  b.ForMembersOnly,
		ExpiresAt:       pgconv.TimeToPgtype(b.ExpiresAt),
		CreatedAt:       pgconv.TimeToPgtype(time.Now()),
	}
}

func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) WithPercent(p string) *CouponBuilder {
	b.DiscountPercent = decimal.RequireFromString(p)
	return b
}

func (b *CouponBuilder) ForNewUsers() *CouponBuilder {
	b.ForNewUsersOnly = true
	return b
}

func (b *CouponBuilder) ForMembers() *CouponBuilder {
	b.ForMembersOnly = true
	return b
}

func (b *CouponBuilder) ExpiringAt(t time.Time) *CouponBuilder {
	b.ExpiresAt = t
	return b
}
