package messaging

import (
	"context"
	"time"

	"gocart/internal/pkg/config"
	"gocart/internal/pkg/errs"
	"gocart/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

const headerEventType = "event_type"

// MessageWriter is the subset of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish keys every message by aggregate id so events of one checkout stay ordered on a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, msg shared.OutboxMessage) error {
	km := kafka.Message{
		Key:   []byte(msg.AggregateID),
		Value: msg.Payload,
		Time:  msg.CreatedAt,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(msg.EventType)},
			{Key: "event_id", Value: []byte(msg.ID.String())},
		},
	}

	if err := p.writer.WriteMessages(ctx, km); err != nil {
		return errs.Wrapf(err, "publish %s", msg.EventType)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
