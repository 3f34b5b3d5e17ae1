//go:build unit

package errs_test

import (
	"testing"

	"gocart/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestSentinel(t *testing.T) {
	errA := errs.Validation("first rule broken")
	errB := errs.Validation("second rule broken")
	multi := errs.Sentinel("both", errs.ErrNotFound, errs.ErrEligibility)

	t.Run("同じカテゴリでも別の番兵とは一致しない", func(t *testing.T) {
		assert.False(t, errs.Is(errA, errB))
		assert.False(t, errs.Is(errs.Wrap(errA, "ctx"), errB))
		assert.True(t, errs.Is(errs.Wrap(errA, "ctx"), errA))
	})

	t.Run("carries its categories", func(t *testing.T) {
		assert.True(t, errs.Is(errA, errs.ErrValidation))
		assert.False(t, errs.Is(errA, errs.ErrNotFound))

		assert.True(t, errs.Is(multi, errs.ErrNotFound))
		assert.True(t, errs.Is(multi, errs.ErrEligibility))
		assert.True(t, errs.IsAny(errs.Wrapf(multi, "id %d", 7), errs.ErrConflict, errs.ErrEligibility))
	})

	t.Run("category marks survive Mark on top", func(t *testing.T) {
		err := errs.Mark(errs.Wrap(errA, "while saving"), errs.ErrDataIntegrity)
		assert.True(t, errs.Is(err, errs.ErrDataIntegrity))
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.True(t, errs.Is(err, errA))
	})

	t.Run("message is preserved", func(t *testing.T) {
		assert.Equal(t, "first rule broken", errA.Error())
		assert.Equal(t, "first rule broken", errs.UnwrapAll(errs.Wrap(errA, "ctx")).Error())
	})
}

func TestExtractStackLines(t *testing.T) {
	err := errs.Wrap(errs.New("root cause"), "outer")

	lines := errs.ExtractStackLines(err, 3)
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "outer")

	assert.Greater(t, len(errs.ExtractStackLines(err, 0)), 3)
	assert.Nil(t, errs.ExtractStackLines(nil, 3))
}
