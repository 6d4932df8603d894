// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

/*
Package config provides centralized configuration management for Unifinder.

Configuration is loaded with Koanf v2 from three layers, later layers winning:

 1. Built-in defaults (see defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/unifinder/config.yaml or /etc/unifinder/config.yml
 3. Environment variables

# Environment Variables

Only the variables listed in envTransformFunc are read; anything else in the
environment is ignored.

Server:
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development or production (default: development)

Catalog store (DuckDB):
  - DUCKDB_PATH: Database file, or ":memory:" (default: /data/unifinder.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 512MB)
  - DUCKDB_THREADS: Worker threads, 0 for NumCPU (default: 0)

Profiles (saved preferences and favorites):
  - PROFILE_BACKEND: badger or memory (default: badger)
  - BADGER_PATH: BadgerDB directory (default: /data/profiles)

Catalog import:
  - CATALOG_IMPORT_PATH: xlsx, csv or json file imported into the catalog
  - CATALOG_IMPORT_ON_STARTUP: Import when the service starts (default: true)
  - CATALOG_WATCH_INTERVAL: How often the file is checked for changes, 0 disables (default: 1m)
  - CATALOG_MIN_IMPORT_INTERVAL: Minimum time between imports (default: 10s)
  - CATALOG_MAX_UPLOAD_BYTES: Upload size limit for the admin import endpoint (default: 10MB)

Recommendations:
  - RECOMMEND_DEFAULT_K: Results returned when k is omitted (default: 5)
  - RECOMMEND_MAX_K: Upper bound for k (default: 50)
  - RECOMMEND_SNAPSHOT_TTL: How long a catalog snapshot is reused (default: 1m)

Security:
  - ADMIN_API_KEY: Key that grants the admin role via the X-API-Key header
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW / DISABLE_RATE_LIMIT
  - CASBIN_CACHE_ENABLED / CASBIN_CACHE_TTL

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

Config is immutable after Load and safe for concurrent reads.
*/
package config
