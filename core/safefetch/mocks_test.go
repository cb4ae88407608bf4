package safefetch

import (
	"context"
	"io"
	"net"
	"strings"

	"podscout-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface that
// records every URL it is asked to fetch.
type mockHTTPClient struct {
	getFunc   func(ctx context.Context, url string) (interfaces.Response, error)
	requested []string
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	m.requested = append(m.requested, url)
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// publicOnlyResolver answers every lookup with a fixed public address so
// hostname-based URLs pass the guard in tests.
type publicOnlyResolver struct{}

func (publicOnlyResolver) LookupIP(ctx context.Context, network, host string) ([]net.IP, error) {
	return []net.IP{net.ParseIP("93.184.216.34")}, nil
}
