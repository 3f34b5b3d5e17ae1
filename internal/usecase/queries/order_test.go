//go:build unit

package queries_test

import (
	"context"
	"testing"

	"gocart/internal/domain/cart"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/usecase/queries"
	"gocart/internal/usecase/shared"
	"gocart/tests/common/builder"
	"gocart/tests/common/memuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderStore struct {
	gotUser  uuid.UUID
	gotLimit int32
	views    []*queries.OrderView
	err      error
}

func (s *stubOrderStore) ListFinalizedByUser(_ context.Context, _ sqlc.DBTX, userID uuid.UUID, limit int32) ([]*queries.OrderView, error) {
	s.gotUser = userID
	s.gotLimit = limit
	return s.views, s.err
}

// readOnlyCounter records how many read-only transactions were opened.
type readOnlyCounter struct {
	shared.UnitOfWork
	calls int
}

func (u *readOnlyCounter) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	u.calls++
	return u.UnitOfWork.WithinReadOnly(ctx, fn)
}

type stubCartStore struct {
	carts map[uuid.UUID]cart.Cart
}

func (s *stubCartStore) GetCart(_ context.Context, userID uuid.UUID) (cart.Cart, error) {
	if c, ok := s.carts[userID]; ok {
		return c, nil
	}
	return cart.Cart{}, nil
}

func TestOrderQueries_ListMine(t *testing.T) {
	caller, err := builder.NewCallerBuilder().BuildDomain()
	require.NoError(t, err)

	tests := []struct {
		name  string
		limit int
		want  int32
	}{
		{name: "default when unset", limit: 0, want: 50},
		{name: "negative falls back to default", limit: -3, want: 50},
		{name: "within range", limit: 20, want: 20},
		{name: "上限で切り詰め", limit: 1000, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubOrderStore{views: []*queries.OrderView{{ID: uuid.New()}}}
			uow := &readOnlyCounter{UnitOfWork: memuow.New()}
			q := queries.NewOrderQueries(uow, store)

			got, err := q.ListMine(context.Background(), caller, tt.limit)
			require.NoError(t, err)
			assert.Len(t, got, 1)
			assert.Equal(t, caller.UserID, store.gotUser)
			assert.Equal(t, tt.want, store.gotLimit)
			assert.Equal(t, 1, uow.calls)
		})
	}

	t.Run("読み取りエラーはそのまま返す", func(t *testing.T) {
		store := &stubOrderStore{err: assert.AnError}
		q := queries.NewOrderQueries(&readOnlyCounter{UnitOfWork: memuow.New()}, store)

		got, err := q.ListMine(context.Background(), caller, 10)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, got)
	})
}

func TestCartQueries_Get(t *testing.T) {
	caller, err := builder.NewCallerBuilder().BuildDomain()
	require.NoError(t, err)
	stored := cart.Cart{builder.NewProductBuilder().Line(3)}
	q := queries.NewCartQueries(&stubCartStore{carts: map[uuid.UUID]cart.Cart{caller.UserID: stored}})

	got, err := q.Get(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	stranger, _ := builder.NewCallerBuilder().BuildDomain()
	got, err = q.Get(context.Background(), stranger)
	require.NoError(t, err)
	assert.Empty(t, got)
}
