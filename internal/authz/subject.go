// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package authz

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
)

// APIKeyHeader carries the admin key.
const APIKeyHeader = "X-API-Key"

// ErrInvalidAPIKey is returned when a request sends a key that does not match.
var ErrInvalidAPIKey = errors.New("invalid API key")

// Subject is the authenticated caller of a request.
type Subject struct {
	Role string
}

// IsAdmin reports whether the subject holds the admin role.
func (s Subject) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Authenticator resolves request subjects from the admin API key.
type Authenticator struct {
	adminKey []byte
}

// NewAuthenticator creates an Authenticator. An empty key disables admin access.
func NewAuthenticator(adminKey string) *Authenticator {
	return &Authenticator{adminKey: []byte(adminKey)}
}

// Resolve returns the subject for r. Requests without a key are anonymous.
func (a *Authenticator) Resolve(r *http.Request) (Subject, error) {
	key := r.Header.Get(APIKeyHeader)
	if key == "" {
		return Subject{Role: RoleAnonymous}, nil
	}
	if len(a.adminKey) == 0 || subtle.ConstantTimeCompare([]byte(key), a.adminKey) != 1 {
		return Subject{}, ErrInvalidAPIKey
	}
	return Subject{Role: RoleAdmin}, nil
}

type subjectKey struct{}

// ContextWithSubject stores the subject in ctx.
func ContextWithSubject(ctx context.Context, s Subject) context.Context {
	return context.WithValue(ctx, subjectKey{}, s)
}

// SubjectFromContext returns the request subject, anonymous when unset.
func SubjectFromContext(ctx context.Context) Subject {
	if s, ok := ctx.Value(subjectKey{}).(Subject); ok {
		return s
	}
	return Subject{Role: RoleAnonymous}
}
