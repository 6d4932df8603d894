// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package api

import (
	"context"
	"io"
	"time"

	"github.com/tomtom215/unifinder/internal/config"
	catalogimport "github.com/tomtom215/unifinder/internal/import"
	"github.com/tomtom215/unifinder/internal/profile"
	"github.com/tomtom215/unifinder/internal/recommend"
)

// Catalog is the university store used by the handlers.
type Catalog interface {
	ListUniversities(ctx context.Context) ([]recommend.Candidate, error)
	GetUniversity(ctx context.Context, id string) (recommend.Candidate, error)
	CountUniversities(ctx context.Context) (int, error)
	UpsertUniversity(ctx context.Context, u recommend.Candidate) (bool, error)
	Ping(ctx context.Context) error
}

// Recommender scores the catalog. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	InvalidateCandidates()
	GetMetrics() recommend.Metrics
}

// CatalogImporter loads catalog files. *catalogimport.Importer implements it.
type CatalogImporter interface {
	ImportReader(ctx context.Context, r io.Reader, format catalogimport.Format, source string) (*catalogimport.Result, error)
	LastResult() *catalogimport.Result
	Running() bool
}

// BreakerState reports the catalog circuit breaker state as a string.
type BreakerState interface {
	BreakerState() string
}

// Handler holds the dependencies of every HTTP handler.
type Handler struct {
	catalog   Catalog
	engine    Recommender
	profiles  profile.Store
	importer  CatalogImporter
	breaker   BreakerState
	config    *config.Config
	startTime time.Time
}

// HandlerDeps groups the constructor arguments of NewHandler.
type HandlerDeps struct {
	Catalog  Catalog
	Engine   Recommender
	Profiles profile.Store
	Importer CatalogImporter

	// Breaker is optional.
	Breaker BreakerState

	Config *config.Config
}

// NewHandler creates a Handler.
func NewHandler(deps HandlerDeps) *Handler {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Handler{
		catalog:   deps.Catalog,
		engine:    deps.Engine,
		profiles:  deps.Profiles,
		importer:  deps.Importer,
		breaker:   deps.Breaker,
		config:    cfg,
		startTime: time.Now(),
	}
}
