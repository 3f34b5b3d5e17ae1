package coupon

import (
	"time"

	"gocart/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCode    = errs.Validation("invalid coupon code")
	ErrInvalidPercent = errs.Validation("coupon discount must be between 0 and 100")
)

type Coupon struct {
	code            Code
	description     string
	discount        Percent
	forNewUsersOnly bool
	forMembersOnly  bool
	expiresAt       time.Time
}

func Reconstruct(
	code string,
	description string,
	discountPercent decimal.Decimal,
	forNewUsersOnly, forMembersOnly bool,
	expiresAt time.Time,
) (*Coupon, error) {
	c, err := NewCode(code)
	if err != nil {
		return nil, err
	}
	p, err := NewPercent(discountPercent)
	if err != nil {
		return nil, err
	}
	return &Coupon{
		code:            c,
		description:     description,
		discount:        p,
		forNewUsersOnly: forNewUsersOnly,
		forMembersOnly:  forMembersOnly,
		expiresAt:       expiresAt,
	}, nil
}

// 期限ちょうどの時刻はすでに使用不可
func (c *Coupon) IsUsableAt(now time.Time) bool {
	return now.Before(c.expiresAt)
}

func (c *Coupon) Code() Code            { return c.code }
func (c *Coupon) Description() string   { return c.description }
func (c *Coupon) Discount() Percent     { return c.discount }
func (c *Coupon) ForNewUsersOnly() bool { return c.forNewUsersOnly }
func (c *Coupon) ForMembersOnly() bool  { return c.forMembersOnly }
func (c *Coupon) ExpiresAt() time.Time  { return c.expiresAt }
