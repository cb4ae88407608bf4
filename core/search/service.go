// ABOUTME: Local search service executing queries against the cached catalog index
// ABOUTME: Provides ranked, fuzzy, prefix-tolerant podcast search independent of any directory API

package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"podscout-api/core/domain"
	coreerrors "podscout-api/core/errors"
	"podscout-api/core/interfaces"
)

// maxResults caps how many hits one query returns.
const maxResults = 50

// LocalSearchService searches the podcast catalog through a self-refreshing
// in-memory index. It is the only shared mutable state in the core: one
// index slot per service instance, guarded for concurrent use.
type LocalSearchService struct {
	deps  interfaces.Dependencies
	store interfaces.CatalogStore
	ttl   time.Duration

	mu     sync.RWMutex
	cached *cachedIndex
}

// NewLocalSearchService creates a search service over the given catalog.
func NewLocalSearchService(deps interfaces.Dependencies, store interfaces.CatalogStore) *LocalSearchService {
	return &LocalSearchService{
		deps:  deps,
		store: store,
		ttl:   DefaultIndexTTL,
	}
}

// SetIndexTTL overrides the index staleness window.
func (s *LocalSearchService) SetIndexTTL(ttl time.Duration) {
	s.ttl = ttl
}

// SearchLocalPodcasts executes a query against the cached index, rebuilding
// it first if stale. A blank or whitespace-only query returns an empty list
// without touching the index or the catalog. Ranking comes entirely from
// the index's boost-weighted scoring; a term matching a title scores above
// the same term matching only a description.
func (s *LocalSearchService) SearchLocalPodcasts(ctx context.Context, rawQuery string) ([]domain.LocalSearchResult, error) {
	if strings.TrimSpace(rawQuery) == "" {
		return []domain.LocalSearchResult{}, nil
	}

	terms := queryTerms(rawQuery)
	if len(terms) == 0 {
		// Every term was a stop word.
		return []domain.LocalSearchResult{}, nil
	}

	entry, err := s.getOrBuildIndex(ctx)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(buildQuery(terms), maxResults, 0, false)
	res, err := entry.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, coreerrors.WrapError(err, "execute search")
	}

	results := make([]domain.LocalSearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		p, ok := entry.docs[hit.ID]
		if !ok {
			continue
		}
		var publisher *string
		if p.Publisher != "" {
			pub := p.Publisher
			publisher = &pub
		}
		results = append(results, domain.LocalSearchResult{
			ExternalID: p.ExternalID,
			Title:      p.Title,
			Publisher:  publisher,
			Score:      hit.Score,
		})
	}
	return results, nil
}

// queryTerms lowercases and tokenizes the query, dropping stop words so a
// query of nothing but function words matches nothing instead of everything.
func queryTerms(rawQuery string) []string {
	fields := strings.FieldsFunc(strings.ToLower(rawQuery), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if isStopWord(f) {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

func isStopWord(term string) bool {
	for _, w := range stopWords {
		if term == w {
			return true
		}
	}
	return false
}

// buildQuery combines per-term, per-field match queries in one disjunction
// (OR semantics). Each match query carries the field's boost and a
// fuzziness scaled to the term length; the trailing term additionally gets
// prefix queries so a partially typed word still matches.
func buildQuery(terms []string) query.Query {
	dq := bleve.NewDisjunctionQuery()
	for i, term := range terms {
		last := i == len(terms)-1
		for field, boost := range fieldBoosts {
			mq := bleve.NewMatchQuery(term)
			mq.SetField(field)
			mq.SetBoost(boost)
			if fuzz := fuzzinessForTerm(term); fuzz > 0 {
				mq.SetFuzziness(fuzz)
			}
			dq.AddQuery(mq)

			if last {
				pq := bleve.NewPrefixQuery(term)
				pq.SetField(field)
				pq.SetBoost(boost)
				dq.AddQuery(pq)
			}
		}
	}
	return dq
}

// fuzzinessForTerm scales edit-distance tolerance with term length: short
// terms must match exactly, medium terms tolerate one edit, longer terms
// two. "friedman" still finds "fridman".
func fuzzinessForTerm(term string) int {
	switch n := len([]rune(term)); {
	case n < 3:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}
