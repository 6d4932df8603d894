// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package profile

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/unifinder/internal/recommend"
)

// MemoryStore is a non-persistent Store for tests and single-instance demos.
type MemoryStore struct {
	mu          sync.RWMutex
	preferences map[string]SavedPreferences
	favorites   map[string][]Favorite // in insertion order
	now         func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		preferences: make(map[string]SavedPreferences),
		favorites:   make(map[string][]Favorite),
		now:         time.Now,
	}
}

// SavePreferences implements Store.
//
//nolint:gocritic // hugeParam: matches the Store interface
func (s *MemoryStore) SavePreferences(_ context.Context, userID string, prefs recommend.PreferenceSet) (*SavedPreferences, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}

	saved := SavedPreferences{Preferences: clonePreferences(prefs), UpdatedAt: s.now().UTC()}

	s.mu.Lock()
	s.preferences[userID] = saved
	s.mu.Unlock()

	saved.Preferences = clonePreferences(saved.Preferences)
	return &saved, nil
}

// GetPreferences implements Store.
func (s *MemoryStore) GetPreferences(_ context.Context, userID string) (*SavedPreferences, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	saved, ok := s.preferences[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	saved.Preferences = clonePreferences(saved.Preferences)
	return &saved, nil
}

// AddFavorite implements Store.
func (s *MemoryStore) AddFavorite(_ context.Context, userID, universityID string) (bool, error) {
	if err := validateIDs(userID, universityID); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.favorites[userID] {
		if f.UniversityID == universityID {
			return false, nil
		}
	}
	s.favorites[userID] = append(s.favorites[userID], Favorite{UniversityID: universityID, AddedAt: s.now().UTC()})
	return true, nil
}

// RemoveFavorite implements Store.
func (s *MemoryStore) RemoveFavorite(_ context.Context, userID, universityID string) (bool, error) {
	if err := validateIDs(userID, universityID); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	favs := s.favorites[userID]
	for i, f := range favs {
		if f.UniversityID == universityID {
			s.favorites[userID] = append(favs[:i:i], favs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListFavorites implements Store.
func (s *MemoryStore) ListFavorites(_ context.Context, userID string) ([]Favorite, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Favorite{}, s.favorites[userID]...), nil
}

// IsFavorite implements Store.
func (s *MemoryStore) IsFavorite(_ context.Context, userID, universityID string) (bool, error) {
	if err := validateIDs(userID, universityID); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.favorites[userID] {
		if f.UniversityID == universityID {
			return true, nil
		}
	}
	return false, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
