//go:build unit

package messaging_test

import (
	"context"
	"testing"
	"time"

	"gocart/internal/infra/messaging"
	"gocart/internal/pkg/config"
	"gocart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	msg := shared.OutboxMessage{
		ID:          uuid.New(),
		EventType:   shared.EventOrdersPaid,
		AggregateID: uuid.NewString(),
		Payload:     []byte(`{"orderIds":[]}`),
		CreatedAt:   created,
	}

	t.Run("集約IDをキーにしてヘッダにイベント種別を載せる", func(t *testing.T) {
		w := &recordingWriter{}
		p := messaging.NewKafkaPublisher(w)

		require.NoError(t, p.Publish(context.Background(), msg))
		require.Len(t, w.msgs, 1)

		km := w.msgs[0]
		assert.Equal(t, []byte(msg.AggregateID), km.Key)
		assert.Equal(t, msg.Payload, km.Value)
		assert.True(t, created.Equal(km.Time))

		headers := map[string]string{}
		for _, h := range km.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, shared.EventOrdersPaid, headers["event_type"])
		assert.Equal(t, msg.ID.String(), headers["event_id"])
	})

	t.Run("writer error names the event type", func(t *testing.T) {
		w := &recordingWriter{err: kafka.LeaderNotAvailable}
		p := messaging.NewKafkaPublisher(w)

		err := p.Publish(context.Background(), msg)
		require.Error(t, err)
		assert.ErrorIs(t, err, kafka.LeaderNotAvailable)
		assert.Contains(t, err.Error(), shared.EventOrdersPaid)
	})

	t.Run("Close closes the writer", func(t *testing.T) {
		w := &recordingWriter{}
		require.NoError(t, messaging.NewKafkaPublisher(w).Close())
		assert.True(t, w.closed)
	})
}

func TestNewKafkaWriter(t *testing.T) {
	w := messaging.NewKafkaWriter(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "gocart.orders"})

	assert.Equal(t, "gocart.orders", w.Topic)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
	assert.Equal(t, "localhost:9092", w.Addr.String())
}
