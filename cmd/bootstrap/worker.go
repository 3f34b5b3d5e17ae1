package bootstrap

import (
	"context"
	"log/slog"

	"gocart/internal/pkg/clock"
	"gocart/internal/pkg/config"
	"gocart/internal/pkg/metrics"
	"gocart/internal/usecase/shared"
	"gocart/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewExpirySweeper,
	),
	fx.Invoke(startWorkers),
)

type workerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	UoW       shared.UnitOfWork
	Sweeper   *worker.ExpirySweeper
	Publisher worker.EventPublisher
	Clock     clock.Clock
	Metrics   *metrics.Metrics
}

func startWorkers(p workerParams) {
	if !p.Config.Worker.Enabled {
		slog.Info("background workers disabled")
		return
	}

	runners := []*worker.Runner{
		worker.NewRunner("expiry-sweeper", p.Config.Worker.ExpirySweepInterval, func(ctx context.Context) {
			p.Sweeper.Sweep(ctx)
		}),
	}
	if p.Publisher != nil {
		relay := worker.NewOutboxRelay(p.UoW, p.Publisher, p.Clock, p.Metrics, p.Config)
		runners = append(runners, worker.NewRunner("outbox-relay", p.Config.Worker.OutboxPollInterval, func(ctx context.Context) {
			relay.Relay(ctx)
		}))
	}

	for _, r := range runners {
		lc := r
		p.Lifecycle.Append(fx.Hook{
			OnStart: func(_ context.Context) error {
				lc.Start()
				return nil
			},
			OnStop: lc.Stop,
		})
	}
}
