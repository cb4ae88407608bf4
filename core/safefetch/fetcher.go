// ABOUTME: Safe fetcher that re-validates every redirect hop through the SSRF guard
// ABOUTME: Prevents an initially-safe URL from redirecting requests to internal addresses

package safefetch

import (
	"context"
	"fmt"
	"io"
	"net/url"

	coreerrors "podscout-api/core/errors"
	"podscout-api/core/interfaces"
	"podscout-api/core/ssrf"
)

// DefaultMaxRedirects bounds the redirect chain so a malicious server
// cannot keep the fetcher looping.
const DefaultMaxRedirects = 5

// Result is the outcome of a successful fetch chain.
type Result struct {
	// Body is the response body of the final hop.
	Body []byte

	// FinalURL is the URL that produced the 2xx response, after redirects.
	FinalURL string

	// StatusCode is the final hop's status code.
	StatusCode int
}

// Fetcher performs HTTP GETs with manual redirect handling. Every hop,
// including the starting URL, is validated through the SSRF guard before a
// request is issued. The injected HTTP client must not follow redirects on
// its own, otherwise the per-hop validation is bypassed.
type Fetcher struct {
	deps         interfaces.Dependencies
	guard        *ssrf.Guard
	maxRedirects int
}

// NewFetcher creates a fetcher with the default redirect bound.
func NewFetcher(deps interfaces.Dependencies, guard *ssrf.Guard) *Fetcher {
	return &Fetcher{
		deps:         deps,
		guard:        guard,
		maxRedirects: DefaultMaxRedirects,
	}
}

// SetMaxRedirects overrides the redirect hop bound.
func (f *Fetcher) SetMaxRedirects(n int) {
	f.maxRedirects = n
}

// Fetch retrieves rawURL, following up to maxRedirects redirect hops.
// Failures are terminal: an UnsafeURLError when the guard rejects a hop, a
// TooManyRedirectsError when the bound is exceeded, an HTTPStatusError on a
// non-2xx terminal response, or a wrapped transport error. No retries.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	current := rawURL

	for hop := 0; hop <= f.maxRedirects; hop++ {
		if !f.guard.IsSafeURL(ctx, current) {
			return nil, &coreerrors.UnsafeURLError{URL: current}
		}

		resp, err := f.deps.HTTPClient.Get(ctx, current)
		if err != nil {
			return nil, coreerrors.WrapError(err, fmt.Sprintf("fetch %s", current))
		}

		code := resp.StatusCode()
		if code >= 300 && code < 400 {
			location := resp.Header("Location")
			resp.Body().Close()

			if location == "" {
				return nil, &coreerrors.HTTPStatusError{URL: current, StatusCode: code}
			}

			next, err := resolveLocation(current, location)
			if err != nil {
				return nil, coreerrors.WrapError(err, fmt.Sprintf("resolve redirect from %s", current))
			}

			f.logDebug("following redirect", map[string]interface{}{
				"from":   current,
				"to":     next,
				"status": code,
				"hop":    hop + 1,
			})
			current = next
			continue
		}

		if code < 200 || code >= 300 {
			resp.Body().Close()
			return nil, &coreerrors.HTTPStatusError{URL: current, StatusCode: code}
		}

		body, err := io.ReadAll(resp.Body())
		resp.Body().Close()
		if err != nil {
			return nil, coreerrors.WrapError(err, fmt.Sprintf("read body from %s", current))
		}

		return &Result{Body: body, FinalURL: current, StatusCode: code}, nil
	}

	return nil, &coreerrors.TooManyRedirectsError{URL: rawURL, Limit: f.maxRedirects}
}

// resolveLocation resolves a Location header value, which may be relative,
// against the URL of the response that carried it.
func resolveLocation(current, location string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

func (f *Fetcher) logDebug(msg string, fields map[string]interface{}) {
	if f.deps.Logger != nil {
		f.deps.Logger.Debug(msg, fields)
	}
}
