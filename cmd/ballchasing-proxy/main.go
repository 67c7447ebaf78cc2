package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rlreplays/ballchasing-client/pkg/client"
	"github.com/rlreplays/ballchasing-client/pkg/logging"
	"github.com/rlreplays/ballchasing-client/pkg/ratelimit"
)

func main() {
	// Configuration from environment
	token := os.Getenv("BC_TOKEN")
	redisURL := getEnv("REDIS_URL", "localhost:6379")
	port := getEnv("PORT", "8080")
	patronage := getEnv("BC_PATRONAGE", string(ratelimit.PatronageRegular))

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: os.Getenv("LOG_PRETTY") == "true",
	})

	if token == "" {
		logger.Fatal().Msg("BC_TOKEN is required")
	}

	// Setup Redis: shared quota state and the response cache
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Str("addr", redisURL).Msg("Failed to connect to Redis")
	}
	logger.Info().Str("addr", redisURL).Msg("Connected to Redis")

	cfg := client.DefaultConfig(token)
	cfg.Redis = redisClient
	cfg.Patronage = ratelimit.ParsePatronage(patronage)

	bc, err := client.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create ballchasing client")
	}

	// HTTP Server
	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/ready", readyHandler(redisClient))
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/api/", apiProxyHandler(bc, logger))

	addr := ":" + port
	logger.Info().
		Str("addr", addr).
		Str("patronage", string(cfg.Patronage)).
		Msg("Starting ballchasing proxy server")

	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// readyHandler reports readiness based on the Redis connection. The upstream
// API is deliberately not probed here; its availability is surfaced per
// request instead.
func readyHandler(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := redisClient.Ping(r.Context()).Err(); err != nil {
			http.Error(w, "Redis unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	}
}

// apiProxyHandler forwards GET requests under /api/ to ballchasing through
// the client, so callers share its cache, quota gate and retry behavior.
// Example: /api/replays?player-name=x -> GET <base>/replays?player-name=x
func apiProxyHandler(bc *client.Client, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Only GET is proxied", http.StatusMethodNotAllowed)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/api")

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		body, err := bc.Get(ctx, path, r.URL.Query())
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Upstream request failed")
			http.Error(w, err.Error(), upstreamStatus(err))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(body); err != nil {
			logger.Warn().Err(err).Msg("Failed to write response")
		}
	}
}

// upstreamStatus maps client errors to proxy response codes.
func upstreamStatus(err error) int {
	var rateLimited *client.RateLimitError
	var reqErr *client.RequestError

	switch {
	case errors.Is(err, client.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &reqErr):
		return reqErr.StatusCode
	default:
		return http.StatusBadGateway
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
