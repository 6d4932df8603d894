// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Profile   ProfileConfig   `koanf:"profile"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development" or "production"
}

// DatabaseConfig holds DuckDB catalog settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU
}

// ProfileConfig selects where saved preferences and favorites live.
type ProfileConfig struct {
	// Backend is "badger" (persistent) or "memory".
	Backend string `koanf:"backend"`

	// Path is the BadgerDB directory, required for the badger backend.
	Path string `koanf:"path"`
}

// CatalogConfig controls how the university catalog is loaded.
type CatalogConfig struct {
	// ImportPath is an xlsx, csv or json file to import. Empty disables file import.
	ImportPath string `koanf:"import_path"`

	// ImportOnStartup imports ImportPath when the service starts.
	ImportOnStartup bool `koanf:"import_on_startup"`

	// WatchInterval is how often ImportPath is checked for modification.
	// Zero disables re-import.
	WatchInterval time.Duration `koanf:"watch_interval"`

	// MinImportInterval is the minimum spacing between two imports.
	MinImportInterval time.Duration `koanf:"min_import_interval"`

	// MaxUploadBytes caps the request body of the admin import endpoint.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// BreakerTimeout is how long the catalog circuit breaker stays open.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	DefaultK    int           `koanf:"default_k"`
	MaxK        int           `koanf:"max_k"`
	SnapshotTTL time.Duration `koanf:"snapshot_ttl"`
}

// SecurityConfig holds authorization, CORS and rate limiting settings
type SecurityConfig struct {
	// AdminAPIKey grants the admin role when sent in X-API-Key.
	// Empty disables admin access entirely.
	AdminAPIKey string `koanf:"admin_api_key"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	Casbin CasbinConfig `koanf:"casbin"`
}

// CasbinConfig holds Casbin RBAC authorization settings.
//
// Environment Variables:
//   - CASBIN_CACHE_ENABLED: Enable authorization decision caching (default: true)
//   - CASBIN_CACHE_TTL: Authorization cache TTL (default: 5m)
type CasbinConfig struct {
	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
