package api

import (
	"context"
	"time"

	"podscout-api/core/domain"
	"podscout-api/core/ingest"
)

type stubSearcher struct{}

func (stubSearcher) SearchLocalPodcasts(ctx context.Context, query string) ([]domain.LocalSearchResult, error) {
	return []domain.LocalSearchResult{}, nil
}

func (stubSearcher) RebuildIndex(ctx context.Context) (int, error) {
	return 0, nil
}

func (stubSearcher) IndexStats() (int, time.Time, bool) {
	return 0, time.Time{}, false
}

type stubIngester struct{}

func (stubIngester) ImportFeeds(ctx context.Context, feeds []domain.OpmlFeed) ingest.ImportReport {
	return ingest.ImportReport{}
}

func (stubIngester) DiscoverFeedURL(ctx context.Context, siteURL string) (string, error) {
	return "", ingest.ErrNoFeedFound
}

type stubStore struct{}

func (stubStore) ListPodcasts(ctx context.Context) ([]domain.Podcast, error) {
	return nil, nil
}

func (stubStore) UpsertPodcast(ctx context.Context, p domain.Podcast) (domain.Podcast, error) {
	return p, nil
}

func (stubStore) CountPodcasts(ctx context.Context) (int, error) {
	return 0, nil
}
