package payment

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

type BreakerSettings struct {
	Name string
	// consecutive failures that open the breaker
	Failures uint32
	// how long the breaker stays open before a half-open probe
	OpenTimeout time.Duration
}

func newBreaker[T any](s BreakerSettings) *gobreaker.CircuitBreaker[T] {
	failures := s.Failures
	if failures == 0 {
		failures = 5
	}

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	})
}
