// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package services

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/tomtom215/unifinder/internal/config"
	catalogimport "github.com/tomtom215/unifinder/internal/import"
	"github.com/tomtom215/unifinder/internal/logging"
)

// CatalogFileImporter imports a catalog file from disk.
// Satisfied by *catalogimport.Importer.
type CatalogFileImporter interface {
	Import(ctx context.Context, path string) (*catalogimport.Result, error)
}

// CatalogImportService loads the configured catalog file on startup and
// re-imports it whenever its modification time changes.
//
// Import failures are logged and never returned: the last good catalog stays
// in place and a restart would not fix a bad file.
type CatalogImportService struct {
	importer  CatalogFileImporter
	path      string
	onStartup bool
	interval  time.Duration

	stat func(string) (os.FileInfo, error)

	// lastMod is the modification time of the last file we imported or tried to.
	lastMod time.Time
}

// NewCatalogImportService creates the watcher for cfg.ImportPath.
func NewCatalogImportService(importer CatalogFileImporter, cfg *config.CatalogConfig) *CatalogImportService {
	return &CatalogImportService{
		importer:  importer,
		path:      cfg.ImportPath,
		onStartup: cfg.ImportOnStartup,
		interval:  cfg.WatchInterval,
		stat:      os.Stat,
	}
}

// Serve implements suture.Service.
func (s *CatalogImportService) Serve(ctx context.Context) error {
	if s.path == "" {
		<-ctx.Done()
		return ctx.Err()
	}

	if s.onStartup {
		s.importIfChanged(ctx, true)
	} else if info, err := s.stat(s.path); err == nil {
		// Without a startup import the current file counts as already seen.
		s.lastMod = info.ModTime()
	}

	if s.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.importIfChanged(ctx, false)
		}
	}
}

func (s *CatalogImportService) importIfChanged(ctx context.Context, force bool) {
	info, err := s.stat(s.path)
	if err != nil {
		logging.Warn().Err(err).Str("path", s.path).Msg("Catalog file not readable")
		return
	}
	if !force && info.ModTime().Equal(s.lastMod) {
		return
	}
	s.lastMod = info.ModTime()

	res, err := s.importer.Import(ctx, s.path)
	switch {
	case err == nil:
		logging.Info().
			Str("path", s.path).
			Int("imported", res.Imported).
			Int("skipped", res.Skipped).
			Msg("Catalog file imported")
	case ctx.Err() != nil:
		logging.Debug().Msg("Catalog import canceled by shutdown")
	case errors.Is(err, catalogimport.ErrImportInProgress), errors.Is(err, catalogimport.ErrRateLimited):
		// Another import owns the catalog right now; try again next tick.
		s.lastMod = time.Time{}
		logging.Debug().Err(err).Msg("Catalog file import deferred")
	default:
		logging.Error().Err(err).Str("path", s.path).Msg("Catalog file import failed; keeping current catalog")
	}
}

// String names the service in supervisor logs.
func (s *CatalogImportService) String() string {
	return "catalog-import"
}
