//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"gocart/internal/domain/order"
	"gocart/internal/domain/payment"
	"gocart/internal/pkg/errs"
	"gocart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentSessionInitiator_Initiate(t *testing.T) {
	ctx := context.Background()

	t.Run("opens the processor session and stores its id", func(t *testing.T) {
		f := newUsecaseFixture()
		sid, _ := f.pendingSet(uuid.New(), 2)
		s, _ := f.store.Session(sid)

		created, err := f.initiator.Initiate(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, "cs_test_"+sid.String(), created.ExternalID)
		assert.Equal(t, created.ExternalID, s.ExternalID())

		stored, _ := f.store.Session(sid)
		assert.Equal(t, created.ExternalID, stored.ExternalID())

		call := f.gateway.Calls()[0]
		assert.Equal(t, "gocart order (2 stores)", call.Description)
		assert.Equal(t, s.ProcessorExpiresAt(), call.ExpiresAt)
	})

	t.Run("処理系エラー時は注文をキャンセルしてから返す", func(t *testing.T) {
		f := newUsecaseFixture()
		sid, ids := f.pendingSet(uuid.New(), 1)
		s, _ := f.store.Session(sid)
		f.gateway.err = errors.New("stripe: 503")

		// 呼び出し元が切断済みでもキャンセルは完了する
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := f.initiator.Initiate(cctx, s)
		require.Error(t, err)
		assert.True(t, errs.Is(err, shared.ErrGatewayUnavailable))
		assert.Equal(t, []order.Status{order.StatusCancelled}, f.statuses(ids))

		stored, _ := f.store.Session(sid)
		assert.Equal(t, payment.ResolutionCancelled, stored.Resolution())
	})
}
