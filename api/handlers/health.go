// ABOUTME: Health check endpoint reporting catalog and index status
// ABOUTME: Used by load balancers and monitoring

package handlers

import (
	"net/http"
	"time"

	"podscout-api/core/interfaces"
)

// IndexStatser exposes the cached index's build state.
type IndexStatser interface {
	IndexStats() (docCount int, lastBuilt time.Time, ok bool)
}

// HealthHandler serves GET /api/health.
type HealthHandler struct {
	store  interfaces.CatalogStore
	search IndexStatser
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(store interfaces.CatalogStore, search IndexStatser) *HealthHandler {
	return &HealthHandler{store: store, search: search}
}

type healthResponse struct {
	Status       string     `json:"status"`
	CatalogSize  int        `json:"catalogSize"`
	IndexedDocs  int        `json:"indexedDocs"`
	IndexBuiltAt *time.Time `json:"indexBuiltAt,omitempty"`
}

// Health reports service status. A failing catalog store degrades the
// status but still answers 200 so orchestrators can see the detail.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}

	count, err := h.store.CountPodcasts(r.Context())
	if err != nil {
		resp.Status = "degraded"
	} else {
		resp.CatalogSize = count
	}

	if docs, builtAt, ok := h.search.IndexStats(); ok {
		resp.IndexedDocs = docs
		resp.IndexBuiltAt = &builtAt
	}

	writeJSON(w, http.StatusOK, resp)
}
