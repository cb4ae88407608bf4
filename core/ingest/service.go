// ABOUTME: Feed ingestion service that turns OPML feed lists into catalog rows
// ABOUTME: Fetches each feed through the safe fetcher, parses it and upserts the podcast

package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/mmcdole/gofeed"

	"podscout-api/core/domain"
	coreerrors "podscout-api/core/errors"
	"podscout-api/core/interfaces"
	"podscout-api/core/safefetch"
	"podscout-api/pkg/textutil"
)

const (
	feedCacheTTL       = time.Hour
	maxDescriptionLen  = 2000
	externalIDHashSize = 12
)

// IndexInvalidator is the write-path obligation toward the search index:
// after the catalog changes, the cached index must be discarded.
type IndexInvalidator interface {
	InvalidateIndex()
}

// FeedImportResult reports the outcome for one feed in an import batch.
type FeedImportResult struct {
	FeedURL    string `json:"feedUrl"`
	ExternalID string `json:"externalId,omitempty"`
	Title      string `json:"title,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ImportReport summarizes an import batch.
type ImportReport struct {
	Results   []FeedImportResult `json:"results"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

// Service ingests feeds into the podcast catalog.
type Service struct {
	deps        interfaces.Dependencies
	store       interfaces.CatalogStore
	fetcher     *safefetch.Fetcher
	parser      *gofeed.Parser
	invalidator IndexInvalidator
}

// NewService creates an ingestion service.
func NewService(deps interfaces.Dependencies, store interfaces.CatalogStore, fetcher *safefetch.Fetcher, invalidator IndexInvalidator) *Service {
	return &Service{
		deps:        deps,
		store:       store,
		fetcher:     fetcher,
		parser:      gofeed.NewParser(),
		invalidator: invalidator,
	}
}

// ImportFeeds ingests every feed in the list, sequentially. Per-feed
// failures are recorded in the report rather than aborting the batch; the
// search index is invalidated once at the end if anything changed.
func (s *Service) ImportFeeds(ctx context.Context, feeds []domain.OpmlFeed) ImportReport {
	report := ImportReport{Results: make([]FeedImportResult, 0, len(feeds))}

	for _, feed := range feeds {
		podcast, err := s.ingestOne(ctx, feed)
		if err != nil {
			s.logWarn("feed import failed", map[string]interface{}{
				"feed_url": feed.FeedURL,
				"error":    err.Error(),
			})
			report.Results = append(report.Results, FeedImportResult{
				FeedURL: feed.FeedURL,
				Error:   err.Error(),
			})
			report.Failed++
			continue
		}
		report.Results = append(report.Results, FeedImportResult{
			FeedURL:    feed.FeedURL,
			ExternalID: podcast.ExternalID,
			Title:      podcast.Title,
		})
		report.Succeeded++
	}

	if report.Succeeded > 0 && s.invalidator != nil {
		s.invalidator.InvalidateIndex()
	}
	return report
}

// parsedFeed is the subset of feed metadata worth caching between imports
// of the same URL.
type parsedFeed struct {
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Description string `json:"description"`
	SiteURL     string `json:"siteUrl"`
}

func (s *Service) ingestOne(ctx context.Context, feed domain.OpmlFeed) (domain.Podcast, error) {
	meta, err := s.fetchAndParse(ctx, feed.FeedURL)
	if err != nil {
		return domain.Podcast{}, err
	}

	title := meta.Title
	if title == "" {
		title = feed.Title
	}
	if title == "" {
		title = feed.FeedURL
	}
	siteURL := meta.SiteURL
	if siteURL == "" {
		siteURL = feed.HTMLURL
	}

	podcast := domain.Podcast{
		ExternalID:  ExternalIDForFeed(feed.FeedURL),
		Title:       title,
		Publisher:   meta.Publisher,
		Description: meta.Description,
		FeedURL:     feed.FeedURL,
		SiteURL:     siteURL,
		AddedAt:     time.Now(),
	}

	stored, err := s.store.UpsertPodcast(ctx, podcast)
	if err != nil {
		return domain.Podcast{}, coreerrors.WrapError(err, "store podcast")
	}
	return stored, nil
}

// fetchAndParse returns the feed's metadata, from cache when a recent
// import already parsed the same URL.
func (s *Service) fetchAndParse(ctx context.Context, feedURL string) (parsedFeed, error) {
	cacheKey := "feed:meta:" + feedURL
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached parsedFeed
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	result, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return parsedFeed{}, err
	}

	parsed, err := s.parser.Parse(bytes.NewReader(result.Body))
	if err != nil {
		return parsedFeed{}, coreerrors.WrapError(err, "parse feed")
	}

	meta := parsedFeed{
		Title:       parsed.Title,
		Description: textutil.Truncate(textutil.StripHTML(parsed.Description), maxDescriptionLen),
		SiteURL:     parsed.Link,
	}
	if parsed.ITunesExt != nil && parsed.ITunesExt.Author != "" {
		meta.Publisher = parsed.ITunesExt.Author
	} else if parsed.Author != nil {
		meta.Publisher = parsed.Author.Name
	}

	if s.deps.Cache != nil {
		if data, err := json.Marshal(meta); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, feedCacheTTL)
		}
	}
	return meta, nil
}

// ExternalIDForFeed derives the synthetic external ID for a directly
// subscribed feed. It is stable for a given feed URL.
func ExternalIDForFeed(feedURL string) string {
	sum := sha256.Sum256([]byte(feedURL))
	return "rss-" + hex.EncodeToString(sum[:])[:externalIDHashSize]
}

func (s *Service) logWarn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}
