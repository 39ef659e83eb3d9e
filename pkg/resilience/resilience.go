// Package resilience provides the fault-tolerance helpers used when calling
// external collaborators: retry with exponential backoff and a circuit
// breaker.
package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds retry parameters.
type Config struct {
	MaxRetries     int
	InitialBackoff time.Duration
}

// RetryWithBackoff executes fn up to MaxRetries+1 times with exponential
// backoff plus jitter. It respects context cancellation between attempts.
func RetryWithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < cfg.MaxRetries {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * cfg.InitialBackoff
			wait := backoff + jitter(backoff)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	return lastErr
}

func jitter(backoff time.Duration) time.Duration {
	if backoff <= 1 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(backoff / 2)))
}

// NewCircuitBreaker creates a circuit breaker tuned for a single slow
// external dependency.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,                // half-open: allow 2 probes
		Interval:    60 * time.Second, // closed: reset counters every 60s
		Timeout:     15 * time.Second, // open -> half-open after 15s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 4 && failureRatio >= 0.5
		},
	})
}
