package safefetch

import (
	"context"
	"errors"
	"testing"

	coreerrors "podscout-api/core/errors"
	"podscout-api/core/interfaces"
	"podscout-api/core/ssrf"
)

func newTestFetcher(client *mockHTTPClient) *Fetcher {
	deps := interfaces.Dependencies{HTTPClient: client}
	guard := ssrf.NewGuardWithResolver(publicOnlyResolver{})
	return NewFetcher(deps, guard)
}

func TestFetch_Success(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 200, body: "<rss></rss>"}, nil
		},
	}
	fetcher := newTestFetcher(client)

	result, err := fetcher.Fetch(context.Background(), "https://example.com/feed.xml")

	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(result.Body) != "<rss></rss>" {
		t.Errorf("Body = %q, want feed XML", result.Body)
	}
	if result.FinalURL != "https://example.com/feed.xml" {
		t.Errorf("FinalURL = %q, want the original URL", result.FinalURL)
	}
	if len(client.requested) != 1 {
		t.Errorf("issued %d requests, want 1", len(client.requested))
	}
}

func TestFetch_RejectsUnsafeStartURL(t *testing.T) {
	client := &mockHTTPClient{}
	fetcher := newTestFetcher(client)

	_, err := fetcher.Fetch(context.Background(), "http://127.0.0.1/secret")

	if !coreerrors.IsUnsafeURL(err) {
		t.Errorf("Fetch error = %v, want UnsafeURLError", err)
	}
	if len(client.requested) != 0 {
		t.Error("no request may be issued for an unsafe start URL")
	}
}

func TestFetch_RejectsRedirectToPrivateIP(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{
				statusCode: 301,
				headers:    map[string]string{"Location": "http://127.0.0.1/secret"},
			}, nil
		},
	}
	fetcher := newTestFetcher(client)

	_, err := fetcher.Fetch(context.Background(), "https://example.com/a")

	if !coreerrors.IsUnsafeURL(err) {
		t.Errorf("Fetch error = %v, want UnsafeURLError", err)
	}
	// The private-IP hop must never be requested.
	for _, u := range client.requested {
		if u == "http://127.0.0.1/secret" {
			t.Error("fetcher issued a request to the private-IP hop")
		}
	}
	if len(client.requested) != 1 {
		t.Errorf("issued %d requests, want 1 (the safe first hop only)", len(client.requested))
	}
}

func TestFetch_ResolvesRelativeRedirect(t *testing.T) {
	client := &mockHTTPClient{}
	client.getFunc = func(ctx context.Context, url string) (interfaces.Response, error) {
		if url == "https://example.com/old" {
			return &mockResponse{
				statusCode: 302,
				headers:    map[string]string{"Location": "/feed.xml"},
			}, nil
		}
		return &mockResponse{statusCode: 200, body: "ok"}, nil
	}
	fetcher := newTestFetcher(client)

	result, err := fetcher.Fetch(context.Background(), "https://example.com/old")

	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if result.FinalURL != "https://example.com/feed.xml" {
		t.Errorf("FinalURL = %q, want relative Location resolved against origin", result.FinalURL)
	}
}

func TestFetch_TooManyRedirects(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{
				statusCode: 302,
				headers:    map[string]string{"Location": url + "x"},
			}, nil
		},
	}
	fetcher := newTestFetcher(client)

	_, err := fetcher.Fetch(context.Background(), "https://example.com/a")

	if !coreerrors.IsTooManyRedirects(err) {
		t.Errorf("Fetch error = %v, want TooManyRedirectsError", err)
	}
	// One request per allowed hop, plus the initial request.
	if len(client.requested) != DefaultMaxRedirects+1 {
		t.Errorf("issued %d requests, want %d", len(client.requested), DefaultMaxRedirects+1)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 404, body: "not found"}, nil
		},
	}
	fetcher := newTestFetcher(client)

	_, err := fetcher.Fetch(context.Background(), "https://example.com/gone")

	if !coreerrors.IsHTTPStatus(err) {
		t.Errorf("Fetch error = %v, want HTTPStatusError", err)
	}
}

func TestFetch_RedirectWithoutLocation(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: 301}, nil
		},
	}
	fetcher := newTestFetcher(client)

	_, err := fetcher.Fetch(context.Background(), "https://example.com/a")

	if !coreerrors.IsHTTPStatus(err) {
		t.Errorf("Fetch error = %v, want HTTPStatusError for 3xx without Location", err)
	}
}

func TestFetch_NetworkError(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return nil, errors.New("connection refused")
		},
	}
	fetcher := newTestFetcher(client)

	_, err := fetcher.Fetch(context.Background(), "https://example.com/feed")

	if err == nil {
		t.Fatal("Fetch should propagate transport errors")
	}
	if coreerrors.IsUnsafeURL(err) || coreerrors.IsTooManyRedirects(err) {
		t.Errorf("transport error misclassified: %v", err)
	}
}

func TestFetch_CustomRedirectBound(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{
				statusCode: 302,
				headers:    map[string]string{"Location": url + "x"},
			}, nil
		},
	}
	fetcher := newTestFetcher(client)
	fetcher.SetMaxRedirects(2)

	_, err := fetcher.Fetch(context.Background(), "https://example.com/a")

	if !coreerrors.IsTooManyRedirects(err) {
		t.Errorf("Fetch error = %v, want TooManyRedirectsError", err)
	}
	if len(client.requested) != 3 {
		t.Errorf("issued %d requests, want 3", len(client.requested))
	}
}
