// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/unifinder/internal/logging"
	"github.com/tomtom215/unifinder/internal/metrics"
	"github.com/tomtom215/unifinder/internal/recommend"
)

// CatalogReader is the read side of the catalog used by CatalogProvider.
type CatalogReader interface {
	ListUniversities(ctx context.Context) ([]recommend.Candidate, error)
}

// ProviderConfig configures the catalog circuit breaker.
type ProviderConfig struct {
	// Name labels the breaker in logs and metrics.
	Name string

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32

	// Timeout is how long the breaker stays open before a trial request.
	Timeout time.Duration

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32
}

// DefaultProviderConfig returns the breaker settings used by the server.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Name:             "catalog",
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
		MaxRequests:      1,
	}
}

// CatalogProvider serves the catalog to the recommendation engine.
// Reads go through a circuit breaker so a failing database fails requests
// fast instead of stacking up timeouts.
type CatalogProvider struct {
	reader  CatalogReader
	name    string
	breaker *gobreaker.CircuitBreaker[[]recommend.Candidate]
}

// NewCatalogProvider wraps reader with a circuit breaker.
func NewCatalogProvider(reader CatalogReader, cfg ProviderConfig) *CatalogProvider {
	def := DefaultProviderConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = def.MaxRequests
	}

	p := &CatalogProvider{reader: reader, name: cfg.Name}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// A canceled request says nothing about database health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String(), breakerStateValue(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Catalog circuit breaker state changed")
		},
	}
	p.breaker = gobreaker.NewCircuitBreaker[[]recommend.Candidate](settings)
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(metrics.BreakerClosed)

	return p
}

// Candidates implements recommend.CandidateProvider.
func (p *CatalogProvider) Candidates(ctx context.Context) ([]recommend.Candidate, error) {
	result, err := p.breaker.Execute(func() ([]recommend.Candidate, error) {
		return p.reader.ListUniversities(ctx)
	})

	failures := p.breaker.Counts().ConsecutiveFailures
	switch {
	case err == nil:
		metrics.RecordBreakerRequest(p.name, "success", failures)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordBreakerRequest(p.name, "rejected", failures)
		return nil, fmt.Errorf("catalog unavailable: %w", err)
	default:
		metrics.RecordBreakerRequest(p.name, "failure", failures)
		return nil, err
	}

	metrics.SetCatalogSize(len(result))
	return result, nil
}

// State reports the breaker state for health checks.
func (p *CatalogProvider) State() gobreaker.State {
	return p.breaker.State()
}

// BreakerState returns State as "closed", "half-open" or "open".
func (p *CatalogProvider) BreakerState() string {
	return p.breaker.State().String()
}

func breakerStateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return metrics.BreakerHalfOpen
	case gobreaker.StateOpen:
		return metrics.BreakerOpen
	default:
		return metrics.BreakerClosed
	}
}
