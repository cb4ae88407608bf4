// Package core contains the business logic for the PodScout API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (Podcast, LocalSearchResult, OpmlFeed)
// - ssrf: URL safety guard protecting outbound fetches
// - safefetch: Redirect-vetting fetcher built on the guard
// - opml: OPML subscription-list parsing
// - search: Local catalog search over a cached index
// - ingest: Feed ingestion into the catalog
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, catalog)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "podscout-api/core/interfaces"
//	    "podscout-api/core/safefetch"
//	    "podscout-api/core/ssrf"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create a fetcher that refuses private-network URLs
//	fetcher := safefetch.NewFetcher(deps, ssrf.NewGuard())
//
//	result, err := fetcher.Fetch(ctx, "https://example.com/feed.rss")
package core
