// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Note: this package has no dependencies on other internal packages. The
// CandidateProvider interface lets the database layer plug in without an import cycle.

// ErrNoProvider is returned by Recommend when no CandidateProvider was set.
var ErrNoProvider = errors.New("recommend: no candidate provider configured")

// CandidateProvider supplies the catalog. Implementations may return candidates in
// any order; the engine scores the order it receives.
type CandidateProvider interface {
	Candidates(ctx context.Context) ([]Candidate, error)
}

// CandidateProviderFunc adapts a function to CandidateProvider.
type CandidateProviderFunc func(ctx context.Context) ([]Candidate, error)

// Candidates implements CandidateProvider.
func (f CandidateProviderFunc) Candidates(ctx context.Context) ([]Candidate, error) {
	return f(ctx)
}

// Metrics is a point-in-time view of engine counters.
type Metrics struct {
	Requests         int64 `json:"requests"`
	Errors           int64 `json:"errors"`
	SnapshotHits     int64 `json:"snapshot_hits"`
	SnapshotMisses   int64 `json:"snapshot_misses"`
	NoPreferenceRuns int64 `json:"no_preference_runs"`
}

// snapshot is a cached copy of the catalog.
type snapshot struct {
	candidates []Candidate
	takenAt    time.Time
	expiresAt  time.Time
}

// Engine serves recommendation requests over a catalog snapshot.
// Scoring itself is delegated to Evaluate; the engine adds catalog access,
// request limits and logging. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	providerMu sync.RWMutex
	provider   CandidateProvider

	snapMu sync.RWMutex
	snap   *snapshot
	// generation is bumped on every invalidation; a load that started under an
	// older generation must not be cached.
	generation atomic.Uint64

	requestCount  atomic.Int64
	errorCount    atomic.Int64
	snapshotHits  atomic.Int64
	snapshotMiss  atomic.Int64
	noPreferences atomic.Int64

	now func() time.Time
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		now:    time.Now,
	}, nil
}

// SetCandidateProvider sets the catalog source and drops any cached snapshot.
func (e *Engine) SetCandidateProvider(p CandidateProvider) {
	e.providerMu.Lock()
	e.provider = p
	e.providerMu.Unlock()

	e.InvalidateCandidates()
}

// InvalidateCandidates drops the cached catalog snapshot. Call after the catalog changes.
func (e *Engine) InvalidateCandidates() {
	e.snapMu.Lock()
	e.generation.Add(1)
	e.snap = nil
	e.snapMu.Unlock()
	e.logger.Debug().Msg("candidate snapshot invalidated")
}

// Recommend scores the current catalog against req.Preferences and returns the top K.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := e.now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Int("k", req.K).
		Logger()

	snap, cacheHit, err := e.candidates(ctx)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("get candidates: %w", err)
	}

	eval := Evaluate(req.Preferences, snap.candidates)
	if eval.NoPreferences() {
		e.noPreferences.Add(1)
		logger.Debug().Msg("no active criteria; all scores are zero")
	}

	items := TopK(eval.Items, req.K)
	if req.Explain {
		items = withBreakdown(items, req.Preferences)
	}

	resp := &Response{
		Items:           items,
		TotalCandidates: len(snap.candidates),
		ActiveCriteria:  eval.ActiveCriteria,
		MaxScore:        eval.MaxScore,
		NoPreferences:   eval.NoPreferences(),
		Metadata: ResponseMetadata{
			RequestID:  req.RequestID,
			K:          req.K,
			LatencyMS:  e.now().Sub(start).Milliseconds(),
			CacheHit:   cacheHit,
			Timestamp:  start,
			SnapshotAt: snap.takenAt,
		},
	}

	logger.Debug().
		Int("candidates", resp.TotalCandidates).
		Int("returned", len(resp.Items)).
		Strs("active_criteria", resp.ActiveCriteria).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	if req.K <= 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}

	return req
}

// candidates returns the cached snapshot or loads a fresh one from the provider.
func (e *Engine) candidates(ctx context.Context) (*snapshot, bool, error) {
	if s := e.cachedSnapshot(); s != nil {
		e.snapshotHits.Add(1)
		return s, true, nil
	}
	e.snapshotMiss.Add(1)

	gen := e.generation.Load()
	e.providerMu.RLock()
	p := e.provider
	e.providerMu.RUnlock()
	if p == nil {
		return nil, false, ErrNoProvider
	}

	list, err := p.Candidates(ctx)
	if err != nil {
		return nil, false, err
	}

	// The provider may hand out a slice it keeps using; take our own copy.
	owned := make([]Candidate, len(list))
	copy(owned, list)

	now := e.now()
	s := &snapshot{
		candidates: owned,
		takenAt:    now,
		expiresAt:  now.Add(e.config.Catalog.SnapshotTTL),
	}
	if e.config.Catalog.SnapshotTTL > 0 {
		e.snapMu.Lock()
		if e.generation.Load() == gen {
			e.snap = s
		}
		e.snapMu.Unlock()
	}
	return s, false, nil
}

func (e *Engine) cachedSnapshot() *snapshot {
	e.snapMu.RLock()
	defer e.snapMu.RUnlock()

	if e.snap == nil || e.now().After(e.snap.expiresAt) {
		return nil
	}
	return e.snap
}

// withBreakdown returns copies of items carrying their per-criterion breakdown.
//
//nolint:gocritic // hugeParam: prefs passed by value, never retained
func withBreakdown(items []ScoredCandidate, prefs PreferenceSet) []ScoredCandidate {
	out := make([]ScoredCandidate, len(items))
	for i := range items {
		out[i] = items[i]
		out[i].Breakdown = Explain(items[i].Candidate, prefs)
	}
	return out
}

// GetMetrics returns the engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		Requests:         e.requestCount.Load(),
		Errors:           e.errorCount.Load(),
		SnapshotHits:     e.snapshotHits.Load(),
		SnapshotMisses:   e.snapshotMiss.Load(),
		NoPreferenceRuns: e.noPreferences.Load(),
	}
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}
