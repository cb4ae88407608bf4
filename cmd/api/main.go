// ABOUTME: Main entry point for the PodScout API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"podscout-api/api"
	"podscout-api/api/handlers"
	"podscout-api/core/ingest"
	"podscout-api/core/interfaces"
	"podscout-api/core/safefetch"
	"podscout-api/core/search"
	"podscout-api/core/ssrf"
	"podscout-api/infrastructure/cache/memory"
	"podscout-api/infrastructure/cache/redis"
	catalogsqlite "podscout-api/infrastructure/catalog/sqlite"
	stdhttp "podscout-api/infrastructure/http/standard"
	logruslogger "podscout-api/infrastructure/logger/logrus"
	"podscout-api/pkg/config"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.NewLogger(cfg.Server.LogLevel)
	logger.Info("Starting PodScout API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"catalog":    cfg.Catalog.Path,
	})

	// Create cache
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		logger.Info("Using memory cache", nil)
	}

	// Create catalog store
	store, err := catalogsqlite.NewStore(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to open catalog store: %v", err)
	}
	defer store.Close()

	// The fetcher vets every redirect hop itself, so it needs a client
	// that surfaces 3xx responses instead of following them.
	httpClient := stdhttp.NewNoRedirectHTTPClient(cfg.FetchTimeout(), cfg.Fetch.UserAgent)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create services
	guard := ssrf.NewGuard()
	fetcher := safefetch.NewFetcher(deps, guard)
	fetcher.SetMaxRedirects(cfg.Fetch.MaxRedirects)

	searchService := search.NewLocalSearchService(deps, store)
	searchService.SetIndexTTL(cfg.IndexTTL())

	ingestService := ingest.NewService(deps, store, fetcher, searchService)

	// Create router with middleware and handlers
	router := api.NewRouter(api.Config{
		Logger:         logger,
		RateLimitRPS:   10,
		RateLimitBurst: 20,
	}, api.Handlers{
		Search: handlers.NewSearchHandler(searchService),
		Import: handlers.NewImportHandler(ingestService),
		Health: handlers.NewHealthHandler(store, searchService),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}
