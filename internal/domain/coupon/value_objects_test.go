//go:build unit

package coupon_test

import (
	"testing"

	"gocart/internal/domain/coupon"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode(t *testing.T) {
	c, err := coupon.NewCode("  save10 ")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", c.String())

	for _, bad := range []string{"", "x", "has space", "TOO-LONG-CODE-THAT-GOES-PAST-32-CHARS", "ÄÖÜ"} {
		_, err := coupon.NewCode(bad)
		assert.ErrorIs(t, err, coupon.ErrInvalidCode, bad)
	}
}

func TestPercent(t *testing.T) {
	p, err := coupon.NewPercent(decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, "0.9", p.Multiplier().String())

	_, err = coupon.NewPercent(decimal.NewFromInt(101))
	assert.ErrorIs(t, err, coupon.ErrInvalidPercent)
	_, err = coupon.NewPercent(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, coupon.ErrInvalidPercent)
}
