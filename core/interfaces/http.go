package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for making HTTP requests.
// This abstraction allows for easy mocking in tests and switching between
// client implementations. The safe fetcher in core/safefetch requires an
// implementation that does not follow redirects on its own.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body. The caller must close it.
	Body() io.ReadCloser

	// Header returns the value of the specified header, or "" if absent.
	// Header names are case-insensitive.
	Header(key string) string
}
