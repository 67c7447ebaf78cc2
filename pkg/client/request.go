package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// request describes one API call. The body is held as bytes so the retry
// wrapper can replay it on a fresh attempt.
type request struct {
	method      string
	target      string // absolute URL
	query       url.Values
	body        []byte
	contentType string
}

// execute performs exactly one network round trip and classifies the
// outcome: any 2xx returns the response body, 429 returns *RateLimitError,
// any other status returns *RequestError. No retries, no state mutation.
func (c *Client) execute(ctx context.Context, req request) ([]byte, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if len(req.query) > 0 {
		q := httpReq.URL.Query()
		for key, values := range req.query {
			for _, value := range values {
				q.Add(key, value)
			}
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	httpReq.Header.Set("Authorization", c.config.Token)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	endpoint := httpReq.URL.Path
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		bcRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	bcRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	bcRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return respBody, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		c.logger.Warn().
			Str("endpoint", endpoint).
			Msg("Rate limited by server")
		return nil, &RateLimitError{Detail: errorDetail(respBody)}

	default:
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("Request failed")
		return nil, &RequestError{StatusCode: resp.StatusCode, Detail: errorDetail(respBody)}
	}
}
