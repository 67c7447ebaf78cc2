package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient creates a client pointed at a mock server, with retries
// tuned for fast tests.
func newTestClient(t *testing.T, baseURL string, autoRetry bool) *Client {
	t.Helper()

	cfg := DefaultConfig("test-token")
	cfg.BaseURL = baseURL
	cfg.AutoRetry = autoRetry
	cfg.Retry = RetryConfig{MaxTries: 3, InitialBackoff: time.Millisecond, BackoffMultiplier: 2.0}

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError error
	}{
		{
			name:   "valid config",
			config: DefaultConfig("abc-123"),
		},
		{
			name:        "missing token",
			config:      Config{},
			expectError: ErrTokenRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.config)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("New() error = %v, want %v", err, tt.expectError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if client == nil {
				t.Fatal("Client is nil")
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	client, err := New(Config{Token: "abc-123"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.config.Retry.MaxTries != DefaultRetryConfig().MaxTries {
		t.Errorf("Retry.MaxTries = %d, want default %d",
			client.config.Retry.MaxTries, DefaultRetryConfig().MaxTries)
	}
	if client.config.CacheTTL <= 0 {
		t.Error("CacheTTL default not applied")
	}
	// Without Redis there is no cache and no quota tracking.
	if client.cache != nil || client.quota != nil {
		t.Error("Cache/quota should be nil without Redis")
	}
}

func TestExecute_Classification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantDetail string
		wantKind   string // "success", "rate_limited", "failed"
	}{
		{
			name:       "200 success",
			statusCode: 200,
			body:       `{"chaser": true}`,
			wantKind:   "success",
		},
		{
			name:       "201 created is success",
			statusCode: 201,
			body:       `{"id": "abc"}`,
			wantKind:   "success",
		},
		{
			name:       "429 rate limited with error field",
			statusCode: 429,
			body:       `{"error": "rate limit exceeded"}`,
			wantKind:   "rate_limited",
			wantDetail: "rate limit exceeded",
		},
		{
			name:       "400 failed with error field",
			statusCode: 400,
			body:       `{"error": "bad request"}`,
			wantKind:   "failed",
			wantDetail: "bad request",
		},
		{
			name:       "500 failed with error field",
			statusCode: 500,
			body:       `{"error": "Internal server error."}`,
			wantKind:   "failed",
			wantDetail: "Internal server error.",
		},
		{
			name:       "300 is failed",
			statusCode: 300,
			body:       `{"error": "error"}`,
			wantKind:   "failed",
			wantDetail: "error",
		},
		{
			name:       "unstructured body is passed through raw",
			statusCode: 502,
			body:       "bad gateway",
			wantKind:   "failed",
			wantDetail: "bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, false)
			body, err := client.execute(context.Background(), request{
				method: http.MethodGet,
				target: server.URL + "/test",
			})

			switch tt.wantKind {
			case "success":
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if string(body) != tt.body {
					t.Errorf("Body = %q, want %q", body, tt.body)
				}
			case "rate_limited":
				var rle *RateLimitError
				if !errors.As(err, &rle) {
					t.Fatalf("Expected *RateLimitError, got %v", err)
				}
				if rle.Detail != tt.wantDetail {
					t.Errorf("Detail = %q, want %q", rle.Detail, tt.wantDetail)
				}
			case "failed":
				var reqErr *RequestError
				if !errors.As(err, &reqErr) {
					t.Fatalf("Expected *RequestError, got %v", err)
				}
				if reqErr.StatusCode != tt.statusCode {
					t.Errorf("StatusCode = %d, want %d", reqErr.StatusCode, tt.statusCode)
				}
				if reqErr.Detail != tt.wantDetail {
					t.Errorf("Detail = %q, want %q", reqErr.Detail, tt.wantDetail)
				}
			}
		})
	}
}

func TestExecute_AuthorizationHeader(t *testing.T) {
	received := ""
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)
	if _, err := client.execute(context.Background(), request{
		method: http.MethodGet,
		target: server.URL + "/test",
	}); err != nil {
		t.Fatalf("execute() failed: %v", err)
	}

	if received != "test-token" {
		t.Errorf("Authorization = %q, want %q", received, "test-token")
	}
}

func TestExecute_QueryParameters(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.URL.Query().Get("player-name")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)
	_, err := client.execute(context.Background(), request{
		method: http.MethodGet,
		target: server.URL + "/test",
		query:  map[string][]string{"player-name": {"GarrettG"}},
	})
	if err != nil {
		t.Fatalf("execute() failed: %v", err)
	}

	if received != "GarrettG" {
		t.Errorf("player-name = %q, want %q", received, "GarrettG")
	}
}

func TestPing(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantType   string
		wantErr    string
	}{
		{
			name:       "healthy regular",
			statusCode: 200,
			body:       `{"chaser": true, "type": "regular"}`,
			wantType:   "regular",
		},
		{
			name:       "healthy grand champion",
			statusCode: 200,
			body:       `{"chaser": true, "type": "grand_champion"}`,
			wantType:   "grand_champion",
		},
		{
			name:       "invalid token",
			statusCode: 401,
			body:       `{"error": "Invalid API key."}`,
			wantErr:    "Invalid API key.",
		},
		{
			name:       "server error",
			statusCode: 500,
			body:       `{"error": "Internal server error."}`,
			wantErr:    "Internal server error.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, false)
			result, err := client.Ping(context.Background())

			if tt.wantErr != "" {
				var reqErr *RequestError
				if !errors.As(err, &reqErr) {
					t.Fatalf("Expected *RequestError, got %v", err)
				}
				if reqErr.Detail != tt.wantErr {
					t.Errorf("Detail = %q, want %q", reqErr.Detail, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Ping() failed: %v", err)
			}
			if !result.Chaser {
				t.Error("Chaser = false, want true")
			}
			if result.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", result.Type, tt.wantType)
			}
		})
	}
}

func TestGetMaps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps" {
			t.Errorf("Path = %q, want /maps", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"map_1": "Map 1", "map_2": "Map 2"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)
	maps, err := client.GetMaps(context.Background())
	if err != nil {
		t.Fatalf("GetMaps() failed: %v", err)
	}

	if len(maps) != 2 || maps["map_1"] != "Map 1" || maps["map_2"] != "Map 2" {
		t.Errorf("Maps = %v", maps)
	}
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error": "duplicate replay"}`, "duplicate replay"},
		{"error field among others", `{"error": "duplicate replay", "id": "abc"}`, "duplicate replay"},
		{"no error field", `{"message": "nope"}`, `{"message": "nope"}`},
		{"plain text", "service unavailable", "service unavailable"},
		{"empty body", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorDetail([]byte(tt.body)); got != tt.want {
				t.Errorf("errorDetail(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
