// ABOUTME: Podcast domain models for the catalog and local search results
// ABOUTME: Defines the indexed catalog entry shape shared with the catalog store

package domain

import "time"

// Podcast represents one podcast row in the catalog.
type Podcast struct {
	// ID is the internal numeric identity, unique within the catalog.
	ID int64

	// ExternalID is the identifier exposed to callers, e.g. a directory ID
	// or a synthetic "rss-" prefixed ID for directly subscribed feeds.
	ExternalID string

	// Title is the podcast's display title.
	Title string

	// Publisher is the publisher or author name. May be empty.
	Publisher string

	// Description is the podcast's description text. May be empty.
	Description string

	// FeedURL is the RSS feed URL the podcast was ingested from.
	FeedURL string

	// SiteURL is the human-facing website URL, if known.
	SiteURL string

	// AddedAt is when the podcast entered the catalog.
	AddedAt time.Time
}

// LocalSearchResult represents one ranked hit from the local search index.
type LocalSearchResult struct {
	// ExternalID identifies the matched podcast.
	ExternalID string `json:"externalId"`

	// Title is the matched podcast's title.
	Title string `json:"title"`

	// Publisher is nil when the catalog has no publisher for this podcast.
	Publisher *string `json:"publisher"`

	// Score is the index's relevance score for this hit.
	Score float64 `json:"score"`
}
