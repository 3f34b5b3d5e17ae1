//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"gocart/internal/domain/coupon"
	"gocart/internal/domain/order"
	"gocart/internal/pkg/clock"
	"gocart/internal/pkg/config"
	"gocart/internal/usecase/queries"
	"gocart/tests/common/builder"
	"gocart/tests/common/memuow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponQueries_Preview(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	setup := func(t *testing.T, bs ...*builder.CouponBuilder) (*memuow.Store, queries.CouponQueries) {
		t.Helper()
		store := memuow.New()
		for _, b := range bs {
			c, err := b.BuildDomain()
			require.NoError(t, err)
			store.AddCoupon(c)
		}
		return store, queries.NewCouponQueries(store, clock.NewMockClock(now), config.NewTestConfig())
	}

	t.Run("accepted coupon is described", func(t *testing.T) {
		_, q := setup(t, builder.NewCouponBuilder().WithCode("SAVE10").WithPercent("10").ExpiringAt(now.Add(time.Hour)))
		caller, err := builder.NewCallerBuilder().BuildDomain()
		require.NoError(t, err)

		got, err := q.Preview(ctx, caller, " save10 ")
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", got.Code)
		assert.Equal(t, "10", got.DiscountPercent.String())
	})

	t.Run("不正なコードは検証エラー", func(t *testing.T) {
		_, q := setup(t)
		caller, _ := builder.NewCallerBuilder().BuildDomain()

		_, err := q.Preview(ctx, caller, "?")
		assert.ErrorIs(t, err, coupon.ErrInvalidCode)
	})

	t.Run("rejections carry the reason", func(t *testing.T) {
		store, q := setup(t,
			builder.NewCouponBuilder().WithCode("OLD").ExpiringAt(now),
			builder.NewCouponBuilder().WithCode("WELCOME").ForNewUsers().ExpiringAt(now.Add(time.Hour)),
			builder.NewCouponBuilder().WithCode("MEMBERS").ForMembers().ExpiringAt(now.Add(time.Hour)),
		)
		caller, _ := builder.NewCallerBuilder().BuildDomain()
		store.AddOrder(builder.NewOrderBuilder().ForUser(caller.UserID).WithStatus(order.StatusPending).BuildDomain())

		cases := map[string]error{
			"NOPE":    coupon.ErrNotFound,
			"OLD":     coupon.ErrExpired,
			"WELCOME": coupon.ErrNewUsersOnly,
			"MEMBERS": coupon.ErrMembersOnly,
		}
		for code, want := range cases {
			_, err := q.Preview(ctx, caller, code)
			assert.ErrorIs(t, err, want, code)
		}

		member, _ := builder.NewCallerBuilder().AsMember().BuildDomain()
		got, err := q.Preview(ctx, member, "MEMBERS")
		require.NoError(t, err)
		assert.Equal(t, "MEMBERS", got.Code)
	})
}
