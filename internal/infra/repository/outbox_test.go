//go:build unit

package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gocart/internal/infra"
	"gocart/internal/infra/repository"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/pkg/pgconv"
	"gocart/internal/usecase/shared"
	repositorymock "gocart/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOutboxRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*repository.OutboxRepository, *repositorymock.MockOutboxWriteQueries, *mockDBTX) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockOutboxWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		return repository.NewOutboxRepository(mockQueries, mockDB), mockQueries, mockDB
	}

	t.Run("Enqueue", func(t *testing.T) {
		repo, mockQueries, mockDB := setup(t)
		msg := shared.OutboxMessage{
			EventType:   shared.EventOrdersPlaced,
			AggregateID: "agg-1",
			Payload:     []byte(`{"k":"v"}`),
			CreatedAt:   now,
		}
		mockQueries.EXPECT().EnqueueOutboxEvent(ctx, mockDB, sqlc.EnqueueOutboxEventParams{
			EventType:   shared.EventOrdersPlaced,
			AggregateID: "agg-1",
			Payload:     []byte(`{"k":"v"}`),
			CreatedAt:   pgconv.TimeToPgtype(now),
		}).Return(nil)

		assert.NoError(t, repo.Enqueue(ctx, mockDB, msg))
	})

	t.Run("ClaimBatch maps rows", func(t *testing.T) {
		repo, mockQueries, mockDB := setup(t)
		id := uuid.New()
		mockQueries.EXPECT().ClaimOutboxEvents(ctx, mockDB, int32(10)).Return([]sqlc.OutboxEvents{{
			ID:          id,
			EventType:   shared.EventOrdersPaid,
			AggregateID: "agg-2",
			Payload:     []byte(`{}`),
			CreatedAt:   pgconv.TimeToPgtype(now),
			Attempts:    3,
		}}, nil)

		msgs, err := repo.ClaimBatch(ctx, mockDB, 10)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, id, msgs[0].ID)
		assert.Equal(t, shared.EventOrdersPaid, msgs[0].EventType)
		assert.Equal(t, int32(3), msgs[0].Attempts)
		assert.True(t, now.Equal(msgs[0].CreatedAt))
	})

	t.Run("ClaimBatch error", func(t *testing.T) {
		repo, mockQueries, mockDB := setup(t)
		mockQueries.EXPECT().ClaimOutboxEvents(ctx, mockDB, gomock.Any()).Return(nil, errors.New("database connection error"))

		_, err := repo.ClaimBatch(ctx, mockDB, 10)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("MarkFailed truncates long errors", func(t *testing.T) {
		repo, mockQueries, mockDB := setup(t)
		id := uuid.New()
		mockQueries.EXPECT().MarkOutboxEventFailed(ctx, mockDB, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlc.DBTX, p sqlc.MarkOutboxEventFailedParams) error {
				assert.Equal(t, id, p.ID)
				assert.True(t, p.LastError.Valid)
				assert.Len(t, p.LastError.String, 1024)
				return nil
			})

		assert.NoError(t, repo.MarkFailed(ctx, mockDB, id, strings.Repeat("x", 5000)))
	})

	t.Run("MarkPublished", func(t *testing.T) {
		repo, mockQueries, mockDB := setup(t)
		id := uuid.New()
		mockQueries.EXPECT().MarkOutboxEventPublished(ctx, mockDB, sqlc.MarkOutboxEventPublishedParams{
			ID:          id,
			PublishedAt: pgconv.TimeToPgtype(now),
		}).Return(nil)

		assert.NoError(t, repo.MarkPublished(ctx, mockDB, id, now))
	})
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	key, userID := uuid.New(), uuid.New()
	expires := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*repository.IdempotencyRepository, *repositorymock.MockIdempotencyWriteQueries, *mockDBTX) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		return repository.NewIdempotencyRepository(mockQueries, mockDB), mockQueries, mockDB
	}

	testCases := []struct {
		name      string
		affected  int64
		dbErr     error
		wantFirst bool
		wantErr   bool
	}{
		{name: "初回の挿入", affected: 1, wantFirst: true},
		{name: "既に存在するキー", affected: 0, wantFirst: false},
		{name: "error: database failure", dbErr: errors.New("database connection error"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run("TryInsert "+tc.name, func(t *testing.T) {
			repo, mockQueries, mockDB := setup(t)
			mockQueries.EXPECT().TryInsertIdempotencyKey(ctx, mockDB, sqlc.TryInsertIdempotencyKeyParams{
				Key:         key,
				UserID:      userID,
				Endpoint:    "POST /checkout",
				RequestHash: "abc",
				ExpiresAt:   pgconv.TimeToPgtype(expires),
			}).Return(tc.affected, tc.dbErr)

			first, err := repo.TryInsert(ctx, mockDB, key, userID, "POST /checkout", "abc", expires)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantFirst, first)
		})
	}

	t.Run("Complete and Release", func(t *testing.T) {
		repo, mockQueries, mockDB := setup(t)
		mockQueries.EXPECT().CompleteIdempotencyKey(ctx, mockDB, sqlc.CompleteIdempotencyKeyParams{
			Key: key, UserID: userID, Result: []byte(`{"total":"1.00"}`),
		}).Return(nil)
		mockQueries.EXPECT().DeleteIdempotencyKey(ctx, mockDB, sqlc.DeleteIdempotencyKeyParams{Key: key, UserID: userID}).Return(nil)

		require.NoError(t, repo.Complete(ctx, mockDB, key, userID, []byte(`{"total":"1.00"}`)))
		require.NoError(t, repo.Release(ctx, mockDB, key, userID))
	})

	t.Run("DeleteExpired", func(t *testing.T) {
		repo, mockQueries, mockDB := setup(t)
		mockQueries.EXPECT().DeleteExpiredIdempotencyKeys(ctx, mockDB).Return(int64(7), nil)

		n, err := repo.DeleteExpired(ctx, mockDB)
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
	})
}
