// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/unifinder/internal/authz"
	"github.com/tomtom215/unifinder/internal/config"
	"github.com/tomtom215/unifinder/internal/database"
	catalogimport "github.com/tomtom215/unifinder/internal/import"
	"github.com/tomtom215/unifinder/internal/models"
	"github.com/tomtom215/unifinder/internal/profile"
	"github.com/tomtom215/unifinder/internal/recommend"
)

// fakeCatalog is an in-memory Catalog and catalogimport.CatalogWriter.
type fakeCatalog struct {
	mu      sync.Mutex
	items   []recommend.Candidate
	pingErr error
	listErr error
}

func (f *fakeCatalog) ListUniversities(context.Context) ([]recommend.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]recommend.Candidate(nil), f.items...), nil
}

func (f *fakeCatalog) GetUniversity(_ context.Context, id string) (recommend.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if c.ID == id {
			return c, nil
		}
	}
	return recommend.Candidate{}, fmt.Errorf("%w: %s", database.ErrNotFound, id)
}

func (f *fakeCatalog) CountUniversities(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items), nil
}

func (f *fakeCatalog) UpsertUniversity(_ context.Context, u recommend.Candidate) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == u.ID {
			f.items[i] = u
			return false, nil
		}
	}
	f.items = append(f.items, u)
	return true, nil
}

func (f *fakeCatalog) Ping(context.Context) error {
	return f.pingErr
}

func (f *fakeCatalog) ReplaceUniversities(_ context.Context, universities []recommend.Candidate) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]recommend.Candidate(nil), universities...)
	return len(universities), nil
}

func testCatalog() []recommend.Candidate {
	return []recommend.Candidate{
		{
			ID: "oxford", Name: "University of Oxford", Location: "Oxford, South East",
			UGTuition: "£9,250", Ranking: "1", ClubsSocieties: "Rowing, Debating, Music",
			OnCampusAccommodation: "Yes",
		},
		{
			ID: "glasgow", Name: "University of Glasgow", Location: "Glasgow, Scotland",
			UGTuition: "£1,820", Ranking: "20", ClubsSocieties: "Sports, Music",
			OnCampusAccommodation: "Yes",
		},
		{
			ID: "ulster", Name: "Ulster University", Location: "Belfast, Northern Ireland",
			UGTuition: "£4,710", Ranking: "60", ClubsSocieties: "Gaelic Sports",
			OnCampusAccommodation: "No",
		},
	}
}

type testEnv struct {
	catalog  *fakeCatalog
	engine   *recommend.Engine
	profiles *profile.MemoryStore
	importer *catalogimport.Importer
	handler  *Handler
	server   http.Handler
}

// newTestEnv builds the full router without authorization.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithAuthz(t, nil)
}

func newTestEnvWithAuthz(t *testing.T, authzMW *authz.Middleware) *testEnv {
	t.Helper()

	catalog := &fakeCatalog{items: testCatalog()}

	engine, err := recommend.NewEngine(&recommend.Config{
		Limits: recommend.LimitsConfig{DefaultK: 5, MaxK: 50},
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetCandidateProvider(recommend.CandidateProviderFunc(catalog.ListUniversities))

	importer := catalogimport.NewImporter(catalog, &config.CatalogConfig{})
	importer.OnImport(func(*catalogimport.Result) { engine.InvalidateCandidates() })

	profiles := profile.NewMemoryStore()

	cfg := &config.Config{Catalog: config.CatalogConfig{MaxUploadBytes: 1 << 20}}
	handler := NewHandler(HandlerDeps{
		Catalog:  catalog,
		Engine:   engine,
		Profiles: profiles,
		Importer: importer,
		Config:   cfg,
	})

	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	return &testEnv{
		catalog:  catalog,
		engine:   engine,
		profiles: profiles,
		importer: importer,
		handler:  handler,
		server:   NewRouter(handler, mw, authzMW).Setup(),
	}
}

// envelope mirrors models.APIResponse with raw data.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON body %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
	return v
}

func wantError(t *testing.T, rec *httptest.ResponseRecorder, env envelope, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if env.Status != models.StatusError || env.Error == nil || env.Error.Code != code {
		t.Fatalf("error = %+v, want code %s", env.Error, code)
	}
}

var errBoom = errors.New("boom")
