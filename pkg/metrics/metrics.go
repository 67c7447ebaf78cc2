// Package metrics provides the Prometheus registry reference for the
// ballchasing client. Metrics are defined in their respective packages
// (client, cache, ratelimit) via promauto to keep the packages independent;
// this package documents what is available.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - bc_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - bc_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//
// Retry Metrics (pkg/client):
//   - bc_retries_total (Counter): Retry attempts after 429 responses
//   - bc_retry_backoff_seconds (Histogram): Backoff durations before retries
//   - bc_retry_exhausted_total (Counter): Requests that exhausted max tries while rate limited
//
// Quota Metrics (pkg/ratelimit):
//   - bc_quota_blocks_total{window} (Counter): Requests blocked locally before sending
//   - bc_hourly_calls_used (Gauge): Calls counted in the current hourly window
//
// Cache Metrics (pkg/cache):
//   - bc_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - bc_cache_misses_total (Counter): Cache misses
//   - bc_cache_size_bytes{layer="redis"} (Gauge): Cache size in bytes
//   - bc_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(bc_cache_hits_total[5m])) /
//   (sum(rate(bc_cache_hits_total[5m])) + sum(rate(bc_cache_misses_total[5m])))
//
//   # Share of requests answered with 429
//   sum(rate(bc_requests_total{status="429"}[5m])) / sum(rate(bc_requests_total[5m]))
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(bc_request_duration_seconds_bucket[5m]))
//
//   # Hourly quota pressure
//   bc_hourly_calls_used
