// ABOUTME: Search index construction and process-wide caching over the podcast catalog
// ABOUTME: Builds a fuzzy, prefix-capable bleve index rebuilt on a bounded staleness window

package search

import (
	"context"
	"strconv"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/token/stop"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/analysis/tokenmap"
	"github.com/blevesearch/bleve/v2/mapping"

	"podscout-api/core/domain"
	coreerrors "podscout-api/core/errors"
)

// DefaultIndexTTL is how long a built index is served before the next
// search triggers a rebuild from the catalog store.
const DefaultIndexTTL = 5 * time.Minute

const podcastAnalyzer = "podcast_text"

// stopWords are removed from both indexing and querying, case-insensitively.
var stopWords = []string{
	"the", "a", "an", "and", "or", "of", "in", "to",
	"for", "with", "on", "at", "by", "is", "it", "be",
}

// fieldBoosts weight matches per field so title hits outrank publisher
// hits, which outrank description hits, all else equal.
var fieldBoosts = map[string]float64{
	"title":       2.0,
	"publisher":   1.5,
	"description": 1.0,
}

// cachedIndex is one immutable build of the search index. It is swapped in
// wholesale, so concurrent readers see either the previous build or this
// one, never a partial index.
type cachedIndex struct {
	index     bleve.Index
	docs      map[string]domain.Podcast
	lastBuilt time.Time
	docCount  int
}

func buildIndexMapping() (mapping.IndexMapping, error) {
	im := bleve.NewIndexMapping()

	tokens := make([]interface{}, len(stopWords))
	for i, w := range stopWords {
		tokens[i] = w
	}
	if err := im.AddCustomTokenMap("podcast_stopwords", map[string]interface{}{
		"type":   tokenmap.Name,
		"tokens": tokens,
	}); err != nil {
		return nil, err
	}
	if err := im.AddCustomTokenFilter("podcast_stop_filter", map[string]interface{}{
		"type":           stop.Name,
		"stop_token_map": "podcast_stopwords",
	}); err != nil {
		return nil, err
	}
	if err := im.AddCustomAnalyzer(podcastAnalyzer, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": unicode.Name,
		"token_filters": []string{
			lowercase.Name,
			"podcast_stop_filter",
		},
	}); err != nil {
		return nil, err
	}

	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = podcastAnalyzer
	textField.Store = false
	textField.IncludeInAll = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("title", textField)
	doc.AddFieldMappingsAt("publisher", textField)
	doc.AddFieldMappingsAt("description", textField)

	im.DefaultMapping = doc
	im.DefaultAnalyzer = podcastAnalyzer
	return im, nil
}

// getOrBuildIndex returns the cached index when it is younger than the TTL,
// otherwise rebuilds from a fresh catalog snapshot. Concurrent callers may
// each trigger a rebuild; the cache has no build lock and the last writer
// wins, which is tolerated because every build is derived from the same
// source of truth.
func (s *LocalSearchService) getOrBuildIndex(ctx context.Context) (*cachedIndex, error) {
	s.mu.RLock()
	entry := s.cached
	s.mu.RUnlock()

	if entry != nil && time.Since(entry.lastBuilt) < s.ttl {
		return entry, nil
	}
	return s.rebuildIndex(ctx)
}

// rebuildIndex reads the full catalog and constructs a new in-memory index.
// A failed catalog read propagates; a stale index is never silently served
// in its place.
func (s *LocalSearchService) rebuildIndex(ctx context.Context) (*cachedIndex, error) {
	podcasts, err := s.store.ListPodcasts(ctx)
	if err != nil {
		return nil, coreerrors.WrapError(err, "load catalog snapshot")
	}

	im, err := buildIndexMapping()
	if err != nil {
		return nil, coreerrors.WrapError(err, "build index mapping")
	}
	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, coreerrors.WrapError(err, "create search index")
	}

	docs := make(map[string]domain.Podcast, len(podcasts))
	batch := idx.NewBatch()
	for _, p := range podcasts {
		docID := strconv.FormatInt(p.ID, 10)
		docs[docID] = p
		err := batch.Index(docID, map[string]interface{}{
			"title":       p.Title,
			"publisher":   p.Publisher,
			"description": p.Description,
		})
		if err != nil {
			return nil, coreerrors.WrapError(err, "index podcast "+docID)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, coreerrors.WrapError(err, "apply index batch")
	}

	entry := &cachedIndex{
		index:     idx,
		docs:      docs,
		lastBuilt: time.Now(),
		docCount:  len(podcasts),
	}

	s.mu.Lock()
	s.cached = entry
	s.mu.Unlock()

	if s.deps.Logger != nil {
		s.deps.Logger.Info("search index rebuilt", map[string]interface{}{
			"documents": entry.docCount,
		})
	}
	return entry, nil
}

// InvalidateIndex unconditionally discards the cached index. The next
// search rebuilds from the catalog store regardless of TTL. Write paths
// that mutate the catalog are expected to call this.
func (s *LocalSearchService) InvalidateIndex() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// RebuildIndex discards the cached index and builds a fresh one
// immediately, returning the new build's document count.
func (s *LocalSearchService) RebuildIndex(ctx context.Context) (int, error) {
	s.InvalidateIndex()
	entry, err := s.rebuildIndex(ctx)
	if err != nil {
		return 0, err
	}
	return entry.docCount, nil
}

// IndexStats reports the cached index's document count and build time.
// ok is false when no index is currently cached.
func (s *LocalSearchService) IndexStats() (docCount int, lastBuilt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil {
		return 0, time.Time{}, false
	}
	return s.cached.docCount, s.cached.lastBuilt, true
}
