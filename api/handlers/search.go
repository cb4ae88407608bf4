// ABOUTME: HTTP handlers for local podcast search and index refresh
// ABOUTME: Thin JSON layer over the core search service

package handlers

import (
	"context"
	"net/http"
	"time"

	"podscout-api/core/domain"
)

// PodcastSearcher is what the search handlers need from the core search
// service.
type PodcastSearcher interface {
	SearchLocalPodcasts(ctx context.Context, query string) ([]domain.LocalSearchResult, error)
	RebuildIndex(ctx context.Context) (int, error)
	IndexStats() (docCount int, lastBuilt time.Time, ok bool)
}

// SearchHandler serves search and index-refresh endpoints.
type SearchHandler struct {
	service PodcastSearcher
}

// NewSearchHandler creates a search handler.
func NewSearchHandler(service PodcastSearcher) *SearchHandler {
	return &SearchHandler{service: service}
}

// searchResponse is the body for GET /api/search.
type searchResponse struct {
	Query   string                     `json:"query"`
	Results []domain.LocalSearchResult `json:"results"`
	Count   int                        `json:"count"`
}

// Search handles GET /api/search?q=term. A blank query is not an error;
// it returns an empty result list.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := h.service.SearchLocalPodcasts(r.Context(), query)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
	})
}

// refreshResponse is the body for POST /api/refresh.
type refreshResponse struct {
	Documents int       `json:"documents"`
	RebuiltAt time.Time `json:"rebuiltAt"`
}

// Refresh handles POST /api/refresh by discarding the cached index and
// rebuilding it from the catalog immediately.
func (h *SearchHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.RebuildIndex(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	_, lastBuilt, _ := h.service.IndexStats()
	writeJSON(w, http.StatusOK, refreshResponse{
		Documents: docs,
		RebuiltAt: lastBuilt,
	})
}
