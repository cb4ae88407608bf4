package ingest

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"podscout-api/core/domain"
	"podscout-api/core/interfaces"
)

var errKeyNotFound = errors.New("key not found")

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

// mockCatalogStore records upserted podcasts.
type mockCatalogStore struct {
	mu        sync.Mutex
	upserted  []domain.Podcast
	nextID    int64
	upsertErr error
}

func (m *mockCatalogStore) ListPodcasts(ctx context.Context) ([]domain.Podcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Podcast(nil), m.upserted...), nil
}

func (m *mockCatalogStore) UpsertPodcast(ctx context.Context, p domain.Podcast) (domain.Podcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return domain.Podcast{}, m.upsertErr
	}
	m.nextID++
	p.ID = m.nextID
	m.upserted = append(m.upserted, p)
	return p, nil
}

func (m *mockCatalogStore) CountPodcasts(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.upserted), nil
}

// mockInvalidator counts index invalidations.
type mockInvalidator struct {
	calls int
}

func (m *mockInvalidator) InvalidateIndex() {
	m.calls++
}

// mockCache is a simple in-memory Cache for tests.
type mockCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{items: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, errKeyNotFound
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// publicOnlyResolver makes every hostname resolve to a public address so
// the guard admits test URLs.
type publicOnlyResolver struct{}

func (publicOnlyResolver) LookupIP(ctx context.Context, network, host string) ([]net.IP, error) {
	return []net.IP{net.ParseIP("93.184.216.34")}, nil
}
