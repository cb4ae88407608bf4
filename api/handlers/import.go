// ABOUTME: HTTP handlers for OPML import and feed autodiscovery
// ABOUTME: Accepts subscription lists and site URLs, feeding the catalog through the ingest service

package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"podscout-api/core/domain"
	"podscout-api/core/ingest"
	"podscout-api/core/opml"
)

// maxOpmlBytes bounds the accepted OPML document size.
const maxOpmlBytes = 4 << 20

// FeedIngester is what the import handlers need from the ingest service.
type FeedIngester interface {
	ImportFeeds(ctx context.Context, feeds []domain.OpmlFeed) ingest.ImportReport
	DiscoverFeedURL(ctx context.Context, siteURL string) (string, error)
}

// ImportHandler serves OPML import and feed discovery endpoints.
type ImportHandler struct {
	ingester FeedIngester
}

// NewImportHandler creates an import handler.
func NewImportHandler(ingester FeedIngester) *ImportHandler {
	return &ImportHandler{ingester: ingester}
}

// ImportOpml handles POST /api/import-opml. The request body is the OPML
// document itself.
func (h *ImportHandler) ImportOpml(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxOpmlBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	feeds, err := opml.Parse(body)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	report := h.ingester.ImportFeeds(r.Context(), feeds)
	writeJSON(w, http.StatusOK, report)
}

// discoverRequest is the body for POST /api/discover.
type discoverRequest struct {
	URL string `json:"url"`
}

// discoverResponse is the body for a successful discovery.
type discoverResponse struct {
	SiteURL string `json:"siteUrl"`
	FeedURL string `json:"feedUrl"`
}

// Discover handles POST /api/discover, resolving a website URL to its
// advertised feed URL.
func (h *ImportHandler) Discover(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	feedURL, err := h.ingester.DiscoverFeedURL(r.Context(), req.URL)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, discoverResponse{
		SiteURL: req.URL,
		FeedURL: feedURL,
	})
}
