// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	stderrors "errors"
	"net/http"

	"podscout-api/core/errors"
	"podscout-api/core/ingest"
	"podscout-api/core/opml"
)

// statusForError maps core error types onto HTTP status codes. Unknown
// errors are treated as internal.
func statusForError(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsUnsafeURL(err):
		return http.StatusBadRequest
	case stderrors.Is(err, opml.ErrInvalidXML),
		stderrors.Is(err, opml.ErrMissingRoot),
		stderrors.Is(err, opml.ErrMissingBody),
		stderrors.Is(err, opml.ErrNoFeedsFound):
		return http.StatusBadRequest
	case stderrors.Is(err, ingest.ErrNoFeedFound):
		return http.StatusNotFound
	case errors.IsTooManyRedirects(err):
		return http.StatusBadGateway
	case errors.IsHTTPStatus(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError writes err with its mapped status. Internal errors get
// a generic message so internals never leak to clients.
func writeDomainError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, "Internal server error")
		return
	}
	writeError(w, status, err.Error())
}
