//go:build unit

package readstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"gocart/internal/domain/coupon"
	"gocart/internal/infra"
	"gocart/internal/infra/readstore"
	"gocart/internal/pkg/pgconv"
	"gocart/tests/common/builder"
	readstoremock "gocart/tests/mock/readstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCouponReadStore_FindByCode(t *testing.T) {
	ctx := context.Background()
	expires := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	row := builder.NewCouponBuilder().WithCode("SPRING").WithPercent("12.5").ForMembers().ExpiringAt(expires).BuildInfra()

	code, err := coupon.NewCode("spring")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockCouponReadQueries(ctrl)
		db := &mockDBTX{}
		store := readstore.NewCouponReadStore(mockQueries, db)

		mockQueries.EXPECT().GetCouponByCode(ctx, db, "SPRING").Return(row, nil)

		c, err := store.FindByCode(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, "SPRING", c.Code().String())
		assert.True(t, decimal.RequireFromString("12.5").Equal(c.Discount().Decimal()))
		assert.True(t, c.ForMembersOnly())
		assert.False(t, c.ForNewUsersOnly())
		assert.True(t, expires.Equal(c.ExpiresAt()))
	})

	t.Run("no row is NOT_FOUND", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockCouponReadQueries(ctrl)
		db := &mockDBTX{}
		store := readstore.NewCouponReadStore(mockQueries, db)

		mockQueries.EXPECT().GetCouponByCode(ctx, db, "SPRING").Return(row, sql.ErrNoRows)

		_, err := store.FindByCode(ctx, code)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("割引率が範囲外の行は壊れたデータとして扱う", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockCouponReadQueries(ctrl)
		db := &mockDBTX{}
		store := readstore.NewCouponReadStore(mockQueries, db)

		bad := row
		bad.DiscountPercent = pgconv.DecimalToNumeric(decimal.NewFromInt(150))
		mockQueries.EXPECT().GetCouponByCode(ctx, db, gomock.Any()).Return(bad, nil)

		_, err := store.FindByCode(ctx, code)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockCouponReadQueries(ctrl)
		db := &mockDBTX{}
		store := readstore.NewCouponReadStore(mockQueries, db)

		mockQueries.EXPECT().GetCouponByCode(ctx, db, gomock.Any()).Return(row, assert.AnError)

		_, err := store.FindByCode(ctx, code)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
