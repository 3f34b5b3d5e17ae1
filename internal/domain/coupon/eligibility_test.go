//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"gocart/internal/domain/coupon"
	"gocart/internal/pkg/errs"
	"gocart/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*builder.CouponBuilder)
		missing  bool
		prior    int
		isMember bool
		want     coupon.Reason
		errIs    error
	}{
		{
			name: "plain coupon is accepted",
		},
		{
			name:    "lookup miss",
			missing: true,
			want:    coupon.ReasonNotFound,
			errIs:   coupon.ErrNotFound,
		},
		{
			name:   "expired",
			mutate: func(b *builder.CouponBuilder) { b.ExpiringAt(now.Add(-time.Minute)) },
			want:   coupon.ReasonExpired,
			errIs:  coupon.ErrExpired,
		},
		{
			name:   "expiry instant is already unusable",
			mutate: func(b *builder.CouponBuilder) { b.ExpiringAt(now) },
			want:   coupon.ReasonExpired,
			errIs:  coupon.ErrExpired,
		},
		{
			name:   "new users only, first order",
			mutate: func(b *builder.CouponBuilder) { b.ForNewUsers() },
			prior:  0,
		},
		{
			name:   "new users only, returning buyer",
			mutate: func(b *builder.CouponBuilder) { b.ForNewUsers() },
			prior:  1,
			want:   coupon.ReasonNewUsersOnly,
			errIs:  coupon.ErrNewUsersOnly,
		},
		{
			name:     "members only, member",
			mutate:   func(b *builder.CouponBuilder) { b.ForMembers() },
			isMember: true,
		},
		{
			name:   "members only, non-member",
			mutate: func(b *builder.CouponBuilder) { b.ForMembers() },
			want:   coupon.ReasonMembersOnly,
			errIs:  coupon.ErrMembersOnly,
		},
		{
			name: "expiry is checked before eligibility",
			mutate: func(b *builder.CouponBuilder) {
				b.ForNewUsers().ForMembers().ExpiringAt(now.Add(-time.Hour))
			},
			prior: 3,
			want:  coupon.ReasonExpired,
			errIs: coupon.ErrExpired,
		},
		{
			name:   "new-user rule is checked before member rule",
			mutate: func(b *builder.CouponBuilder) { b.ForNewUsers().ForMembers() },
			prior:  1,
			want:   coupon.ReasonNewUsersOnly,
			errIs:  coupon.ErrNewUsersOnly,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c *coupon.Coupon
			if !tc.missing {
				b := builder.NewCouponBuilder().ExpiringAt(now.Add(time.Hour))
				if tc.mutate != nil {
					tc.mutate(b)
				}
				var err error
				c, err = b.BuildDomain()
				require.NoError(t, err)
			}

			d := coupon.Evaluate(c, coupon.EligibilityInput{
				UserID:      uuid.New(),
				PriorOrders: tc.prior,
				IsMember:    tc.isMember,
				Now:         now,
			})

			if tc.errIs == nil {
				assert.True(t, d.Accepted())
				assert.NoError(t, d.Err())
				assert.Same(t, c, d.Coupon())
				return
			}
			assert.False(t, d.Accepted())
			assert.Nil(t, d.Coupon())
			assert.Equal(t, tc.want, d.Reason())
			assert.ErrorIs(t, d.Err(), tc.errIs)
			assert.True(t, errs.Is(d.Err(), coupon.ErrRejected))
		})
	}
}

func TestRejectionSentinels(t *testing.T) {
	t.Run("理由ごとに区別できる", func(t *testing.T) {
		wrapped := errs.Wrapf(coupon.ErrNotFound, "coupon %s", "NOPE")
		assert.True(t, errs.Is(wrapped, coupon.ErrNotFound))
		assert.False(t, errs.Is(wrapped, coupon.ErrExpired))
		assert.False(t, errs.Is(wrapped, coupon.ErrNewUsersOnly))
	})

	t.Run("カテゴリ", func(t *testing.T) {
		assert.True(t, errs.Is(coupon.ErrExpired, errs.ErrNotFound))
		assert.True(t, errs.Is(coupon.ErrNotFound, errs.ErrNotFound))
		assert.True(t, errs.Is(coupon.ErrMembersOnly, errs.ErrEligibility))
		assert.True(t, errs.Is(coupon.ErrNewUsersOnly, errs.ErrEligibility))
		assert.False(t, errs.Is(coupon.ErrMembersOnly, errs.ErrValidation))
	})
}
