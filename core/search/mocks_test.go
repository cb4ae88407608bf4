package search

import (
	"context"

	"podscout-api/core/domain"
)

// mockCatalogStore is a mock implementation of the CatalogStore interface
// that counts snapshot reads.
type mockCatalogStore struct {
	podcasts  []domain.Podcast
	listErr   error
	listCalls int
}

func (m *mockCatalogStore) ListPodcasts(ctx context.Context) ([]domain.Podcast, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.podcasts, nil
}

func (m *mockCatalogStore) UpsertPodcast(ctx context.Context, p domain.Podcast) (domain.Podcast, error) {
	return p, nil
}

func (m *mockCatalogStore) CountPodcasts(ctx context.Context) (int, error) {
	return len(m.podcasts), nil
}
