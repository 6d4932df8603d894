// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

// Package profile stores per-user questionnaire answers and bookmarked universities.
//
// Profiles are keyed by an opaque user id chosen by the caller. Nothing here
// authenticates users, and nothing here influences scoring: saved preferences
// are handed to the engine exactly like a freshly submitted questionnaire.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/tomtom215/unifinder/internal/config"
	"github.com/tomtom215/unifinder/internal/recommend"
)

var (
	// ErrNotFound is returned when a user has no saved preferences.
	ErrNotFound = errors.New("profile not found")

	// ErrInvalidUserID is returned for empty, oversized or malformed user ids.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidUniversityID is returned for blank university ids.
	ErrInvalidUniversityID = errors.New("university id is required")
)

// MaxUserIDLength bounds user ids.
const MaxUserIDLength = 128

// Backend names a Store implementation.
type Backend string

// Supported backends.
const (
	BackendBadger Backend = "badger"
	BackendMemory Backend = "memory"
)

// SavedPreferences is a stored questionnaire result.
type SavedPreferences struct {
	Preferences recommend.PreferenceSet `json:"preferences"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// Favorite is one bookmarked university.
type Favorite struct {
	UniversityID string    `json:"university_id"`
	AddedAt      time.Time `json:"added_at"`
}

// Store persists user profiles.
type Store interface {
	// SavePreferences replaces the user's saved preference set.
	SavePreferences(ctx context.Context, userID string, prefs recommend.PreferenceSet) (*SavedPreferences, error)

	// GetPreferences returns ErrNotFound when nothing was saved.
	GetPreferences(ctx context.Context, userID string) (*SavedPreferences, error)

	// AddFavorite bookmarks a university. Adding an existing favorite keeps
	// its original timestamp and reports added=false.
	AddFavorite(ctx context.Context, userID, universityID string) (added bool, err error)

	// RemoveFavorite reports whether the favorite existed.
	RemoveFavorite(ctx context.Context, userID, universityID string) (removed bool, err error)

	// ListFavorites returns favorites ordered by the time they were added.
	ListFavorites(ctx context.Context, userID string) ([]Favorite, error)

	// IsFavorite reports whether universityID is bookmarked.
	IsFavorite(ctx context.Context, userID, universityID string) (bool, error)

	Close() error
}

// NewStore creates the Store selected by cfg.
func NewStore(cfg *config.ProfileConfig) (Store, error) {
	switch Backend(cfg.Backend) {
	case BackendBadger:
		return OpenBadgerStore(cfg.Path)
	case BackendMemory, "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown profile backend %q", cfg.Backend)
	}
}

// ValidateUserID rejects ids that cannot be used as storage keys.
func ValidateUserID(userID string) error {
	if userID == "" || len(userID) > MaxUserIDLength {
		return ErrInvalidUserID
	}
	for _, r := range userID {
		if r == ':' || unicode.IsControl(r) || unicode.IsSpace(r) {
			return ErrInvalidUserID
		}
	}
	return nil
}

func validateIDs(userID, universityID string) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}
	if strings.TrimSpace(universityID) == "" {
		return ErrInvalidUniversityID
	}
	return nil
}

// clonePreferences copies prefs so stored values never alias caller slices.
//
//nolint:gocritic // hugeParam: copied on purpose
func clonePreferences(prefs recommend.PreferenceSet) recommend.PreferenceSet {
	if prefs.ClubInterests != nil {
		prefs.ClubInterests = append([]string(nil), prefs.ClubInterests...)
	}
	return prefs
}
