// ABOUTME: HTTP router assembly for the API
// ABOUTME: Wires CORS, logging, and rate limiting around the JSON endpoints

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"podscout-api/api/handlers"
	"podscout-api/api/middleware"
	"podscout-api/core/interfaces"
)

// Config holds router-level configuration.
type Config struct {
	Logger interfaces.Logger

	// RateLimitRPS is requests per second per client IP. Zero disables
	// rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Handlers groups the endpoint handlers the router mounts.
type Handlers struct {
	Search *handlers.SearchHandler
	Import *handlers.ImportHandler
	Health *handlers.HealthHandler
}

// NewRouter builds the chi router with middleware and all routes mounted.
func NewRouter(cfg Config, h Handlers) chi.Router {
	router := chi.NewRouter()

	router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler)

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, burst)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/search", h.Search.Search)
		r.Post("/refresh", h.Search.Refresh)
		r.Post("/import-opml", h.Import.ImportOpml)
		r.Post("/discover", h.Import.Discover)
		r.Get("/health", h.Health.Health)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not found"}`))
	})

	return router
}
