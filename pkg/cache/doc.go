// Package cache provides a Redis-backed response cache for idempotent
// ballchasing GET endpoints.
//
// The API sends no cache headers, so expiry is pure client policy: the
// caller picks a TTL per entry. Typical use is the maps lookup table and
// replay/group detail documents, which change rarely (a replay in terminal
// "ok" status never changes at all).
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//	manager := cache.NewManager(redisClient)
//
//	key := cache.Key{Endpoint: "/api/maps"}
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from the API, then:
//		_ = manager.Set(ctx, key, cache.NewEntry(body, 5*time.Minute))
//	}
//
// # Metrics
//
// The cache exports Prometheus metrics:
//
//   - bc_cache_hits_total{layer="redis"} - Cache hits
//   - bc_cache_misses_total - Cache misses
//   - bc_cache_size_bytes{layer="redis"} - Cache size
//   - bc_cache_errors_total{operation} - Cache operation errors
package cache
