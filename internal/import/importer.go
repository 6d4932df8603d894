// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package catalogimport

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/unifinder/internal/config"
	"github.com/tomtom215/unifinder/internal/logging"
	"github.com/tomtom215/unifinder/internal/metrics"
	"github.com/tomtom215/unifinder/internal/recommend"
)

// CatalogWriter replaces the stored catalog.
type CatalogWriter interface {
	ReplaceUniversities(ctx context.Context, universities []recommend.Candidate) (int, error)
}

// Importer loads catalog files into the catalog store.
// Imports are serialized and throttled.
type Importer struct {
	writer  CatalogWriter
	limiter *rate.Limiter

	mu       sync.Mutex
	running  bool
	last     *Result
	onImport []func(*Result)
}

// NewImporter creates an importer writing to writer. Imports closer together
// than cfg.MinImportInterval are rejected with ErrRateLimited.
func NewImporter(writer CatalogWriter, cfg *config.CatalogConfig) *Importer {
	limit := rate.Inf
	if cfg != nil && cfg.MinImportInterval > 0 {
		limit = rate.Every(cfg.MinImportInterval)
	}
	return &Importer{
		writer:  writer,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// OnImport registers fn to run after every successful import, e.g. to drop
// cached catalog snapshots. Hooks run synchronously before Import returns.
func (i *Importer) OnImport(fn func(*Result)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.onImport = append(i.onImport, fn)
}

// Import reads the catalog file at path, inferring the format from its extension.
func (i *Importer) Import(ctx context.Context, path string) (*Result, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return i.ImportReader(ctx, f, format, path)
}

// ImportReader imports a catalog from r. source names it in results and logs.
// On any error the stored catalog is left unchanged.
func (i *Importer) ImportReader(ctx context.Context, r io.Reader, format Format, source string) (*Result, error) {
	if err := i.begin(); err != nil {
		return nil, err
	}

	start := time.Now()
	universities, res, err := Parse(r, format)
	if res == nil {
		res = &Result{Format: format}
	}
	res.Source = source
	res.StartedAt = start

	if err == nil {
		if err = ctx.Err(); err == nil {
			res.Imported, err = i.writer.ReplaceUniversities(ctx, universities)
		}
	}
	res.FinishedAt = time.Now()
	if err != nil {
		res.Imported = 0
		res.Error = err.Error()
	}

	metrics.RecordCatalogImport(string(format), res.Duration(), res.Imported, res.Skipped, err)
	hooks := i.finish(res, err == nil)

	if err != nil {
		logging.Error().
			Err(err).
			Str("source", logging.SanitizeInput(source)).
			Str("format", string(format)).
			Msg("Catalog import failed")
		return res.clone(), fmt.Errorf("catalog import: %w", err)
	}

	metrics.SetCatalogSize(res.Imported)
	for _, fn := range hooks {
		fn(res.clone())
	}

	event := logging.Info().
		Str("source", logging.SanitizeInput(source)).
		Str("format", string(format)).
		Int("rows", res.Rows).
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Int("duplicates", res.Duplicates).
		Dur("duration", res.Duration())
	if len(res.UnknownColumns) > 0 {
		event = event.Strs("unknown_columns", res.UnknownColumns)
	}
	event.Msg("Catalog imported")

	return res.clone(), nil
}

// begin claims the import slot.
func (i *Importer) begin() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.running {
		return ErrImportInProgress
	}
	if !i.limiter.Allow() {
		return ErrRateLimited
	}
	i.running = true
	return nil
}

// finish releases the import slot and returns the hooks to run.
func (i *Importer) finish(res *Result, ok bool) []func(*Result) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.running = false
	i.last = res
	if !ok {
		return nil
	}
	return append([]func(*Result){}, i.onImport...)
}

// LastResult returns the outcome of the most recent import, or nil.
func (i *Importer) LastResult() *Result {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.last.clone()
}

// Running reports whether an import is in progress.
func (i *Importer) Running() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.running
}
