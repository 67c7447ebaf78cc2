package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for retry operations.
var (
	bcRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bc_retries_total",
		Help: "Total number of retry attempts after rate limiting",
	})

	bcRetryBackoffSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bc_retry_backoff_seconds",
		Help:    "Backoff duration before rate limit retries",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})

	bcRetryExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bc_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted while rate limited",
	})
)

// RetryConfig holds the configuration for rate limit retries.
type RetryConfig struct {
	// MaxTries is the total number of attempts, including the first.
	MaxTries int

	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration

	// BackoffMultiplier is the factor applied to the delay after every
	// attempt. Backoff is deterministic; no jitter is applied.
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxTries:          5,
		InitialBackoff:    1 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// executeWithRetry wraps execute with exponential backoff. Only the
// rate-limited outcome is retried; success and every other failure return
// immediately. After MaxTries attempts the last rate limit error is
// surfaced, wrapped in ErrRetryExhausted so callers can tell "gave up while
// rate limited" apart from other failures.
func (c *Client) executeWithRetry(ctx context.Context, req request) ([]byte, error) {
	cfg := c.config.Retry
	backoff := cfg.InitialBackoff
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxTries; attempt++ {
		body, err := c.execute(ctx, req)
		if err == nil {
			if attempt > 1 {
				c.logger.Info().
					Int("attempt", attempt).
					Msg("Request succeeded after retry")
			}
			return body, nil
		}

		var rateLimited *RateLimitError
		if !errors.As(err, &rateLimited) {
			return nil, err
		}
		lastErr = err

		if attempt >= cfg.MaxTries {
			break
		}

		bcRetriesTotal.Inc()
		bcRetryBackoffSeconds.Observe(backoff.Seconds())

		c.logger.Debug().
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("Rate limited, retrying after backoff")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(backoff):
		}

		backoff = time.Duration(float64(backoff) * cfg.BackoffMultiplier)
	}

	bcRetryExhaustedTotal.Inc()
	c.logger.Warn().
		Int("max_tries", cfg.MaxTries).
		Msg("Retry attempts exhausted while rate limited")

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, cfg.MaxTries, lastErr)
}
