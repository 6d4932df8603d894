// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package authz

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/unifinder/internal/models"
)

const testAdminKey = "0123456789abcdef0123456789abcdef"

func newTestMiddleware(t *testing.T, adminKey string) *Middleware {
	t.Helper()
	return NewMiddleware(setupEnforcer(t, nil), NewAuthenticator(adminKey))
}

func TestMiddleware_Authorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		path       string
		apiKey     string
		wantStatus int
		wantRole   string
		wantCode   string
	}{
		{"anonymous catalog", http.MethodGet, "/api/v1/universities", "", http.StatusOK, RoleAnonymous, ""},
		{"anonymous recommend", http.MethodPost, "/api/v1/recommendations", "", http.StatusOK, RoleAnonymous, ""},
		{"anonymous import", http.MethodPost, "/api/v1/admin/catalog/import", "", http.StatusUnauthorized, "", models.ErrCodeAuthentication},
		{"admin import", http.MethodPost, "/api/v1/admin/catalog/import", testAdminKey, http.StatusOK, RoleAdmin, ""},
		{"admin catalog", http.MethodGet, "/api/v1/universities", testAdminKey, http.StatusOK, RoleAdmin, ""},
		{"wrong key", http.MethodGet, "/api/v1/universities", "nope", http.StatusUnauthorized, "", models.ErrCodeAuthentication},
	}

	mw := newTestMiddleware(t, testAdminKey)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRole string
			handler := mw.Authorize(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotRole = SubjectFromContext(r.Context()).Role
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.apiKey != "" {
				req.Header.Set(APIKeyHeader, tt.apiKey)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if gotRole != tt.wantRole {
				t.Errorf("role = %q, want %q", gotRole, tt.wantRole)
			}
			if tt.wantCode != "" {
				var resp models.APIResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("decode error body: %v", err)
				}
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want code %s", resp.Error, tt.wantCode)
				}
				if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
					t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
				}
			}
		})
	}
}

func TestMiddleware_NoAdminKeyConfigured(t *testing.T) {
	t.Parallel()

	mw := newTestMiddleware(t, "")
	handler := mw.Authorize(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/import", http.NoBody)
	req.Header.Set(APIKeyHeader, "anything")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSubjectFromContext_Default(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if s := SubjectFromContext(req.Context()); s.Role != RoleAnonymous || s.IsAdmin() {
		t.Errorf("default subject = %+v", s)
	}
	ctx := ContextWithSubject(req.Context(), Subject{Role: RoleAdmin})
	if !SubjectFromContext(ctx).IsAdmin() {
		t.Error("admin subject lost")
	}
}
