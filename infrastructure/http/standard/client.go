// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Also provides a non-redirecting client for callers that vet every hop

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"podscout-api/core/interfaces"
)

const maxRetries = 3

// StandardHTTPClient implements the HTTPClient interface using the standard
// library with exponential backoff on 5xx and transport errors.
type StandardHTTPClient struct {
	client    *http.Client
	userAgent string
	retries   int
}

// NewStandardHTTPClient creates an HTTP client with the specified timeout.
// It follows redirects the way net/http does by default.
func NewStandardHTTPClient(timeout time.Duration, userAgent string) *StandardHTTPClient {
	return &StandardHTTPClient{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		retries:   maxRetries,
	}
}

// NewNoRedirectHTTPClient creates an HTTP client that never follows
// redirects and never retries. 3xx responses are returned as-is so the
// caller can inspect the Location header and decide whether the next hop
// is safe to request.
func NewNoRedirectHTTPClient(timeout time.Duration, userAgent string) *StandardHTTPClient {
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: userAgent,
		retries:   1,
	}
}

// Get performs an HTTP GET request.
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err = c.client.Do(req)
		if err != nil {
			resp = nil
			lastErr = err
			continue
		}

		// Don't retry on success, redirects, or 4xx errors. A 5xx on the
		// final attempt is returned as-is so callers see the status code.
		if resp.StatusCode < 500 || attempt == c.retries-1 {
			break
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
