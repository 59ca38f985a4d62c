package resilience

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig holds circuit breaker configuration.
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32        // Max requests in half-open state
	Interval     time.Duration // Counting interval for failures
	Timeout      time.Duration // Open state duration before half-open
	Threshold    uint32        // Consecutive failures before opening
	FailureRatio float64       // Ratio threshold (0.5 = 50%)
	MinRequests  uint32        // Minimum requests before checking ratio
}

// DefaultBreakerConfig returns sensible defaults.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  5,
		Interval:     2 * time.Minute,
		Timeout:      60 * time.Second,
		Threshold:    20,
		FailureRatio: 0.5,
		MinRequests:  50,
	}
}

// NewBreaker creates a circuit breaker that logs every state transition.
func NewBreaker[T any](cfg BreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[T] {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if cfg.Threshold > 0 && counts.ConsecutiveFailures >= cfg.Threshold {
				return true
			}
			if cfg.MinRequests > 0 && counts.Requests >= cfg.MinRequests {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return failureRatio >= cfg.FailureRatio
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	}

	return gobreaker.NewCircuitBreaker[T](settings)
}

// IsOpen returns true if the circuit breaker is in the open state.
func IsOpen[T any](cb *gobreaker.CircuitBreaker[T]) bool {
	return cb.State() == gobreaker.StateOpen
}
