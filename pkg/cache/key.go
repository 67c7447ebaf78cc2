package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key identifies a cached API response.
type Key struct {
	// Endpoint is the API path (e.g., "/api/replays/abc-123").
	Endpoint string

	// Query are the request's query parameters.
	Query url.Values
}

// String generates a deterministic cache key string.
// Format: bc:endpoint:query1=val1:query2=val2
//
// Example:
//
//	bc:api/replays/abc-123
func (k Key) String() string {
	parts := []string{"bc"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Query params sorted for determinism.
	if len(k.Query) > 0 {
		keys := make([]string, 0, len(k.Query))
		for key := range k.Query {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.Query.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}
