// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, catalog, cache, search, and fetch settings

package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Catalog contains catalog store configuration
	Catalog CatalogConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Search contains search index configuration
	Search SearchConfig

	// Fetch contains outbound fetching configuration
	Fetch FetchConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// LogLevel controls logging verbosity (debug/info/warn/error)
	LogLevel string
}

// CatalogConfig holds catalog store configuration
type CatalogConfig struct {
	// Path is the SQLite database file path
	Path string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// SearchConfig holds search index configuration
type SearchConfig struct {
	// IndexTTLSeconds is how long a built index is served before rebuild
	IndexTTLSeconds int
}

// FetchConfig holds outbound fetching configuration
type FetchConfig struct {
	// TimeoutSeconds is the per-request HTTP timeout
	TimeoutSeconds int

	// MaxRedirects bounds redirect chains followed by the safe fetcher
	MaxRedirects int

	// UserAgent is sent on all outbound requests
	UserAgent string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:     getEnvOrDefault("PORT", "8000"),
			LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			Path: getEnvOrDefault("CATALOG_DB_PATH", "catalog.db"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
		},
		Search: SearchConfig{
			IndexTTLSeconds: getEnvAsIntOrDefault("SEARCH_INDEX_TTL", 300),
		},
		Fetch: FetchConfig{
			TimeoutSeconds: getEnvAsIntOrDefault("FETCH_TIMEOUT", 30),
			MaxRedirects:   getEnvAsIntOrDefault("FETCH_MAX_REDIRECTS", 5),
			UserAgent:      getEnvOrDefault("FETCH_USER_AGENT", "PodScout/1.0"),
		},
	}

	return cfg, nil
}

// IndexTTL returns the search index TTL as a duration.
func (c *Config) IndexTTL() time.Duration {
	return time.Duration(c.Search.IndexTTLSeconds) * time.Second
}

// FetchTimeout returns the per-request fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Catalog.Path == "" {
		return errors.New("catalog database path cannot be empty")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Search.IndexTTLSeconds < 0 {
		return errors.New("search index TTL cannot be negative")
	}

	if c.Fetch.TimeoutSeconds < 1 {
		return errors.New("fetch timeout must be at least 1 second")
	}

	if c.Fetch.MaxRedirects < 0 {
		return errors.New("max redirects cannot be negative")
	}

	return nil
}
