package interfaces

import (
	"context"

	"podscout-api/core/domain"
)

// CatalogStore defines the interface to the podcast catalog.
// The search index rebuild issues exactly one ListPodcasts call per rebuild;
// write paths that change the catalog must invalidate the search index
// afterwards (that obligation is the caller's, not the store's).
type CatalogStore interface {
	// ListPodcasts returns a full snapshot of all podcast rows, unfiltered.
	ListPodcasts(ctx context.Context) ([]domain.Podcast, error)

	// UpsertPodcast inserts or updates a podcast keyed by its external ID
	// and returns the stored row with its internal ID populated.
	UpsertPodcast(ctx context.Context, p domain.Podcast) (domain.Podcast, error)

	// CountPodcasts returns the number of rows in the catalog.
	CountPodcasts(ctx context.Context) (int, error)
}
