package bootstrap

import (
	"context"
	"log/slog"

	"gocart/internal/infra/messaging"
	"gocart/internal/pkg/config"
	"gocart/internal/worker"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher returns nil when no broker is configured; the relay is then not started.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) worker.EventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		slog.Warn("KAFKA_BROKERS is empty, outbox events will not be relayed")
		return nil
	}

	publisher := messaging.NewKafkaPublisher(messaging.NewKafkaWriter(cfg.Kafka))
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
