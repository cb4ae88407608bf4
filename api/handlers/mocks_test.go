package handlers

import (
	"context"
	"time"

	"podscout-api/core/domain"
	"podscout-api/core/ingest"
)

type mockSearcher struct {
	results      []domain.LocalSearchResult
	searchErr    error
	rebuildDocs  int
	rebuildErr   error
	lastQuery    string
	rebuildCalls int
}

func (m *mockSearcher) SearchLocalPodcasts(ctx context.Context, query string) ([]domain.LocalSearchResult, error) {
	m.lastQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if m.results == nil {
		return []domain.LocalSearchResult{}, nil
	}
	return m.results, nil
}

func (m *mockSearcher) RebuildIndex(ctx context.Context) (int, error) {
	m.rebuildCalls++
	if m.rebuildErr != nil {
		return 0, m.rebuildErr
	}
	return m.rebuildDocs, nil
}

func (m *mockSearcher) IndexStats() (int, time.Time, bool) {
	return m.rebuildDocs, time.Now(), m.rebuildDocs > 0
}

type mockIngester struct {
	report      ingest.ImportReport
	importedSet []domain.OpmlFeed
	feedURL     string
	discoverErr error
	lastSiteURL string
}

func (m *mockIngester) ImportFeeds(ctx context.Context, feeds []domain.OpmlFeed) ingest.ImportReport {
	m.importedSet = feeds
	return m.report
}

func (m *mockIngester) DiscoverFeedURL(ctx context.Context, siteURL string) (string, error) {
	m.lastSiteURL = siteURL
	if m.discoverErr != nil {
		return "", m.discoverErr
	}
	return m.feedURL, nil
}

type mockCatalogStore struct {
	count    int
	countErr error
}

func (m *mockCatalogStore) ListPodcasts(ctx context.Context) ([]domain.Podcast, error) {
	return nil, nil
}

func (m *mockCatalogStore) UpsertPodcast(ctx context.Context, p domain.Podcast) (domain.Podcast, error) {
	return p, nil
}

func (m *mockCatalogStore) CountPodcasts(ctx context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.count, nil
}
