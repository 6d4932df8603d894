// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

// Package main is the entry point for the Unifinder server.
//
// Unifinder ranks a catalog of UK universities against a student's
// questionnaire answers and serves the shortlist over a JSON API.
//
// # Startup Order
//
//  1. Configuration: defaults, config file, then environment (Koanf v2)
//  2. Catalog database: DuckDB, read through a circuit breaker
//  3. Recommendation engine with a catalog snapshot cache
//  4. Profile store: saved preferences and favorites (BadgerDB or memory)
//  5. Catalog importer: startup import plus file watching
//  6. Authorization: Casbin policy with an optional admin API key
//  7. HTTP server under the supervisor tree
//
// # Configuration
//
// Common environment variables:
//
//	CATALOG_IMPORT_PATH=/data/universities.xlsx
//	CATALOG_IMPORT_ON_STARTUP=true
//	CATALOG_WATCH_INTERVAL=1m
//	PROFILE_BACKEND=badger
//	ADMIN_API_KEY=$(openssl rand -hex 32)
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests, then the stores are closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/unifinder/internal/api"
	"github.com/tomtom215/unifinder/internal/authz"
	"github.com/tomtom215/unifinder/internal/config"
	"github.com/tomtom215/unifinder/internal/database"
	catalogimport "github.com/tomtom215/unifinder/internal/import"
	"github.com/tomtom215/unifinder/internal/logging"
	"github.com/tomtom215/unifinder/internal/metrics"
	"github.com/tomtom215/unifinder/internal/profile"
	"github.com/tomtom215/unifinder/internal/recommend"
	"github.com/tomtom215/unifinder/internal/supervisor"
	"github.com/tomtom215/unifinder/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("profile_backend", cfg.Profile.Backend).
		Str("catalog_path", cfg.Catalog.ImportPath).
		Bool("admin_key_set", cfg.Security.AdminAPIKey != "").
		Msg("Starting Unifinder")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential wiring of every component
func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	provider := database.NewCatalogProvider(db, database.ProviderConfig{Timeout: cfg.Catalog.BreakerTimeout})

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("initialize recommendation engine: %w", err)
	}
	engine.SetCandidateProvider(provider)

	profiles, err := profile.NewStore(&cfg.Profile)
	if err != nil {
		return fmt.Errorf("initialize profile store: %w", err)
	}
	defer func() {
		if err := profiles.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing profile store")
		}
	}()

	importer := catalogimport.NewImporter(db, &cfg.Catalog)
	importer.OnImport(func(*catalogimport.Result) { engine.InvalidateCandidates() })

	enforcer, err := authz.NewEnforcer(authz.ConfigFrom(&cfg.Security))
	if err != nil {
		return fmt.Errorf("initialize authorization: %w", err)
	}
	defer enforcer.Close()
	if cfg.Security.AdminAPIKey == "" {
		logging.Warn().Msg("ADMIN_API_KEY is not set; admin endpoints are unreachable")
	}

	handler := api.NewHandler(api.HandlerDeps{
		Catalog:  db,
		Engine:   engine,
		Profiles: profiles,
		Importer: importer,
		Breaker:  provider,
		Config:   cfg,
	})
	router := api.NewRouter(
		handler,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)),
		authz.NewMiddleware(enforcer, authz.NewAuthenticator(cfg.Security.AdminAPIKey)),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddCatalogService(services.NewCatalogImportService(importer, &cfg.Catalog))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = <-tree.ServeBackground(ctx)
	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}
