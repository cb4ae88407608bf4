// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
)

// ValidationError represents a validation error on caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// UnsafeURLError indicates a URL was rejected by the SSRF guard.
// The URL may be a redirect hop rather than the URL the caller supplied.
type UnsafeURLError struct {
	URL string
}

func (e *UnsafeURLError) Error() string {
	return fmt.Sprintf("unsafe URL refused: %s", e.URL)
}

// TooManyRedirectsError indicates a fetch exceeded the redirect hop bound.
type TooManyRedirectsError struct {
	URL   string
	Limit int
}

func (e *TooManyRedirectsError) Error() string {
	return fmt.Sprintf("too many redirects (limit %d) fetching %s", e.Limit, e.URL)
}

// HTTPStatusError indicates a terminal non-2xx response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

// ExternalAPIError represents an error from an external API.
type ExternalAPIError struct {
	API        string
	StatusCode int
	Message    string
}

func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// IsValidation checks if an error is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsUnsafeURL checks if an error is an UnsafeURLError.
func IsUnsafeURL(err error) bool {
	var uerr *UnsafeURLError
	return errors.As(err, &uerr)
}

// IsTooManyRedirects checks if an error is a TooManyRedirectsError.
func IsTooManyRedirects(err error) bool {
	var rerr *TooManyRedirectsError
	return errors.As(err, &rerr)
}

// IsHTTPStatus checks if an error is an HTTPStatusError.
func IsHTTPStatus(err error) bool {
	var herr *HTTPStatusError
	return errors.As(err, &herr)
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
