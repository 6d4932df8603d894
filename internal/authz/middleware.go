// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package authz

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/unifinder/internal/logging"
	"github.com/tomtom215/unifinder/internal/metrics"
	"github.com/tomtom215/unifinder/internal/models"
)

// Middleware enforces the embedded policy on every request.
type Middleware struct {
	enforcer *Enforcer
	authn    *Authenticator
}

// NewMiddleware creates a new authorization middleware.
func NewMiddleware(enforcer *Enforcer, authn *Authenticator) *Middleware {
	return &Middleware{
		enforcer: enforcer,
		authn:    authn,
	}
}

// Authorize resolves the subject, checks the request path and method against
// the policy and stores the subject in the request context.
func (m *Middleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := m.authn.Resolve(r)
		if err != nil {
			logging.Ctx(r.Context()).Warn().
				Str("path", logging.SanitizeInput(r.URL.Path)).
				Msg("Rejected request with invalid API key")
			metrics.RecordAuthzDecision("invalid_key", false)
			writeError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "Invalid API key")
			return
		}

		action := methodToAction(r.Method)
		allowed, err := m.enforcer.Enforce(subject.Role, r.URL.Path, action)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
			writeError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Authorization failed")
			return
		}
		metrics.RecordAuthzDecision(subject.Role, allowed)

		if !allowed {
			status, code := http.StatusForbidden, models.ErrCodeAuthorization
			if subject.Role == RoleAnonymous {
				// An API key would have helped.
				status, code = http.StatusUnauthorized, models.ErrCodeAuthentication
			}
			writeError(w, status, code, "Insufficient permissions")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithSubject(r.Context(), subject)))
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.Failure(code, message, nil)); err != nil {
		logging.Error().Err(err).Msg("Failed to encode authorization error")
	}
}
