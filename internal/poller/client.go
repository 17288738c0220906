package poller

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxResponseBodySize = 1 << 20 // 1MB

// connection pooling limits; the poller talks to a single host on a short
// interval so connection reuse matters more than pool breadth
const (
	defaultMaxIdleConns    = 10
	defaultMaxConnsPerHost = 10
	defaultIdleConnTimeout = 60 * time.Second
)

// Response holds the result of one status request made by [Client].
//
// Response captures the body (limited to 1MB), status code, latency, and
// any error that occurred. A non-2xx status code is reported via Err so
// callers never inspect the body of a failed response.
type Response struct {
	// Body contains the HTTP response body, limited to 1MB.
	Body []byte

	// StatusCode is the HTTP status code (e.g., 200, 500).
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the total time taken for the request.
	Latency time.Duration

	// Err contains any transport error or the non-2xx condition.
	Err error
}

// Client is an HTTP client wrapper for polling the bot's status endpoint.
//
// Timeouts are applied per-request via context rather than a global client
// timeout. Response bodies are limited to 1MB.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a polling [Client] with keep-alives enabled and a
// small connection pool suited to repeatedly hitting one host.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			// no default timeout - per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConns,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
				DisableKeepAlives:   false,
			},
		},
	}
}

// Fetch performs one GET against the status endpoint.
//
// Fetch always returns a Response; failures are captured in the Err field
// rather than returned separately, which simplifies handling in the cycle
// runner. A response outside the 2xx range is a failure: Err is set and
// the body is not returned.
func (c *Client) Fetch(ctx context.Context, url string, headers map[string]string, timeout time.Duration) Response {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Err:     fmt.Errorf("failed to create request: %w", err),
		}
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Err:     fmt.Errorf("request failed: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Err:        fmt.Errorf("status endpoint returned HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	return Response{
		Body:       body,
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// Close closes all idle connections in the client's connection pool.
//
// Safe to call multiple times and on a nil client. After Close, the client
// remains usable; new connections are established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
