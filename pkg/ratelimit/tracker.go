package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Redis key prefixes for quota counters.
const (
	RedisKeySecondWindow = "bc:rate_limit:second"
	RedisKeyHourWindow   = "bc:rate_limit:hour"
)

// Prometheus metrics for quota tracking.
var (
	bcQuotaBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bc_quota_blocks_total",
		Help: "Total number of requests blocked by the local quota tracker",
	}, []string{"window"}) // "second", "hour"

	bcHourlyCallsUsed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bc_hourly_calls_used",
		Help: "Number of API calls counted in the current hourly quota window",
	})
)

// Tracker counts API calls in shared Redis windows and gates requests
// against the configured tier quotas.
type Tracker struct {
	redis  *redis.Client
	limits Limits
	logger zerolog.Logger
}

// NewTracker creates a new quota tracker.
func NewTracker(redisClient *redis.Client, limits Limits, logger zerolog.Logger) *Tracker {
	return &Tracker{
		redis:  redisClient,
		limits: limits,
		logger: logger,
	}
}

// Limits returns the quotas the tracker enforces.
func (t *Tracker) Limits() Limits {
	return t.limits
}

// Allow reserves a slot in the current per-second and per-hour windows.
// It returns false when either quota is exhausted; the request should not
// be sent. Counters are shared via Redis, so concurrent client instances
// draw from the same quota.
func (t *Tracker) Allow(ctx context.Context) (bool, error) {
	now := time.Now()
	secondKey := fmt.Sprintf("%s:%d", RedisKeySecondWindow, now.Unix())
	hourKey := fmt.Sprintf("%s:%d", RedisKeyHourWindow, now.Unix()/3600)

	pipe := t.redis.Pipeline()
	secondCount := pipe.Incr(ctx, secondKey)
	pipe.Expire(ctx, secondKey, 2*time.Second)

	var hourCount *redis.IntCmd
	if t.limits.PerHour > 0 {
		hourCount = pipe.Incr(ctx, hourKey)
		// Keep the counter slightly past the window so a slow clock
		// doesn't drop it early.
		pipe.Expire(ctx, hourKey, time.Hour+time.Minute)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("update quota counters: %w", err)
	}

	if secondCount.Val() > int64(t.limits.PerSecond) {
		t.logger.Warn().
			Int64("calls_this_second", secondCount.Val()).
			Int("per_second", t.limits.PerSecond).
			Msg("Per-second quota exhausted - blocking request")
		bcQuotaBlocksTotal.WithLabelValues("second").Inc()
		return false, nil
	}

	if hourCount != nil {
		bcHourlyCallsUsed.Set(float64(hourCount.Val()))
		if hourCount.Val() > int64(t.limits.PerHour) {
			t.logger.Warn().
				Int64("calls_this_hour", hourCount.Val()).
				Int("per_hour", t.limits.PerHour).
				Msg("Hourly quota exhausted - blocking request")
			bcQuotaBlocksTotal.WithLabelValues("hour").Inc()
			return false, nil
		}
	}

	return true, nil
}

// Used returns the number of calls counted in the current hourly window.
// Returns 0 when the tier has no hourly quota or no calls were made yet.
func (t *Tracker) Used(ctx context.Context) (int64, error) {
	if t.limits.PerHour <= 0 {
		return 0, nil
	}

	hourKey := fmt.Sprintf("%s:%d", RedisKeyHourWindow, time.Now().Unix()/3600)
	used, err := t.redis.Get(ctx, hourKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("get hourly counter: %w", err)
	}
	return used, nil
}
