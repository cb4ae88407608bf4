package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Server.Port)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %q, want memory", cfg.Cache.Type)
	}
	if cfg.Search.IndexTTLSeconds != 300 {
		t.Errorf("IndexTTLSeconds = %d, want 300", cfg.Search.IndexTTLSeconds)
	}
	if cfg.Fetch.MaxRedirects != 5 {
		t.Errorf("MaxRedirects = %d, want 5", cfg.Fetch.MaxRedirects)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SEARCH_INDEX_TTL", "60")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_ADDRESS", "redis:6379")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.IndexTTL() != time.Minute {
		t.Errorf("IndexTTL = %v, want 1m", cfg.IndexTTL())
	}
	if cfg.Cache.Type != "redis" || cfg.Cache.Redis.Address != "redis:6379" {
		t.Errorf("redis config = %+v", cfg.Cache)
	}
}

func TestValidate_Errors(t *testing.T) {
	base := func() *Config {
		cfg, _ := LoadFromEnv()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"empty catalog path", func(c *Config) { c.Catalog.Path = "" }},
		{"bad cache type", func(c *Config) { c.Cache.Type = "memcached" }},
		{"redis without address", func(c *Config) {
			c.Cache.Type = "redis"
			c.Cache.Redis.Address = ""
		}},
		{"negative index TTL", func(c *Config) { c.Search.IndexTTLSeconds = -1 }},
		{"zero fetch timeout", func(c *Config) { c.Fetch.TimeoutSeconds = 0 }},
		{"negative max redirects", func(c *Config) { c.Fetch.MaxRedirects = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate should have returned an error")
			}
		})
	}
}
