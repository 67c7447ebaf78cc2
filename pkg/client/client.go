// Package client provides the core ballchasing.com API client with rate
// limit handling, optional response caching, and typed endpoint wrappers.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rlreplays/ballchasing-client/pkg/cache"
	"github.com/rlreplays/ballchasing-client/pkg/ratelimit"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://ballchasing.com/api"

// Prometheus metrics for API requests.
var (
	bcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bc_requests_total",
		Help: "Total ballchasing API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	bcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bc_request_duration_seconds",
		Help:    "Ballchasing API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})
)

// doFunc is the request capability bound at construction time: either the
// bare executor or the retry wrapper. Every call goes through it; there is
// no per-call retry branching.
type doFunc func(ctx context.Context, req request) ([]byte, error)

// Client is the ballchasing API client. A client owns its transport and
// configuration; instances share nothing and may be used concurrently with
// each other.
type Client struct {
	httpClient *http.Client
	quota      *ratelimit.Tracker
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
	baseURL    string
	do         doFunc
}

// Config holds the client configuration.
type Config struct {
	// Token is the ballchasing API token (required). Sent as the
	// Authorization header on every request.
	Token string

	// BaseURL overrides the API root, mainly for tests.
	BaseURL string

	// HTTPClient overrides the underlying transport. Timeout policy
	// belongs here, not to the client.
	HTTPClient *http.Client

	// Redis enables the response cache and the shared quota tracker when
	// set. Leave nil for a standalone client.
	Redis *redis.Client

	// Patronage selects the quota tier for the tracker. Defaults to the
	// regular (non-patron) tier. Ignored without Redis.
	Patronage ratelimit.Patronage

	// AutoRetry enables the rate limit retry wrapper. The choice is fixed
	// at construction and applies to all calls.
	AutoRetry bool

	// Retry configures the retry wrapper when AutoRetry is set.
	Retry RetryConfig

	// CacheTTL is how long idempotent GET responses are cached. The API
	// sends no cache headers, so the TTL is purely client policy.
	CacheTTL time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(token string) Config {
	return Config{
		Token:     token,
		BaseURL:   DefaultBaseURL,
		Patronage: ratelimit.PatronageRegular,
		AutoRetry: true,
		Retry:     DefaultRetryConfig(),
		CacheTTL:  5 * time.Minute,
	}
}

// New creates a new ballchasing API client.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrTokenRequired
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Retry.MaxTries <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.Patronage == "" {
		cfg.Patronage = ratelimit.PatronageRegular
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	logger := log.With().Str("component", "ballchasing-client").Logger()

	c := &Client{
		httpClient: httpClient,
		config:     cfg,
		logger:     logger,
		baseURL:    cfg.BaseURL,
	}

	if cfg.Redis != nil {
		c.quota = ratelimit.NewTracker(cfg.Redis, ratelimit.LimitsFor(cfg.Patronage), logger)
		c.cache = cache.NewManager(cfg.Redis)
	}

	c.do = c.execute
	if cfg.AutoRetry {
		c.do = c.executeWithRetry
	}

	return c, nil
}

// call runs one API operation: the cache first for idempotent GETs, then the
// quota gate, then the configured executor. Cache hits send nothing and are
// not charged against the quota.
func (c *Client) call(ctx context.Context, req request, cacheable bool) ([]byte, error) {
	useCache := cacheable && c.cache != nil
	var key cache.Key
	if useCache {
		key = cache.Key{Endpoint: endpointPath(req.target), Query: req.query}
		entry, err := c.cache.Get(ctx, key)
		if err == nil {
			c.logger.Debug().Str("key", key.String()).Msg("Cache hit")
			return entry.Data, nil
		}
		if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Msg("Cache get error")
		}
	}

	if c.quota != nil {
		allowed, err := c.quota.Allow(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Quota check failed, sending request anyway")
		} else if !allowed {
			return nil, ErrQuotaExceeded
		}
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	if useCache {
		entry := cache.NewEntry(body, c.config.CacheTTL)
		if err := c.cache.Set(ctx, key, entry); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to cache response")
		}
	}

	return body, nil
}

// QuotaUsed returns the number of calls counted in the current hourly quota
// window. Returns 0 when no Redis-backed tracker is configured.
func (c *Client) QuotaUsed(ctx context.Context) (int64, error) {
	if c.quota == nil {
		return 0, nil
	}
	return c.quota.Used(ctx)
}

// endpointPath reduces an absolute URL to its path for cache keys and
// metrics labels.
func endpointPath(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	return u.Path
}

// PingResult is the response of the API root endpoint.
type PingResult struct {
	Chaser  bool   `json:"chaser"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	SteamID string `json:"steam_id"`
}

// Ping checks API reachability and token validity. The returned Type is the
// caller's patronage tier, which decides the applicable rate limits.
func (c *Client) Ping(ctx context.Context) (*PingResult, error) {
	body, err := c.call(ctx, request{method: http.MethodGet, target: c.baseURL}, false)
	if err != nil {
		return nil, err
	}

	var result PingResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse ping response: %w", err)
	}
	return &result, nil
}

// Get performs a raw GET of an API path relative to the base URL and returns
// the response document. It is the escape hatch for endpoints without a typed
// wrapper; the proxy binary is built on it. Responses are cached when a cache
// is configured.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.call(ctx, request{method: http.MethodGet, target: c.baseURL + path, query: query}, true)
}

// GetMaps returns the map code to display name lookup table.
func (c *Client) GetMaps(ctx context.Context) (map[string]string, error) {
	body, err := c.call(ctx, request{method: http.MethodGet, target: c.baseURL + "/maps"}, true)
	if err != nil {
		return nil, err
	}

	var maps map[string]string
	if err := json.Unmarshal(body, &maps); err != nil {
		return nil, fmt.Errorf("parse maps response: %w", err)
	}
	return maps, nil
}
