// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package profile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/unifinder/internal/recommend"
)

// Key prefixes for BadgerDB storage
const (
	preferencesKeyPrefix = "prefs:"
	favoriteKeyPrefix    = "fav:" // fav:<user>:<university>
)

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
	now    func() time.Time
}

// OpenBadgerStore opens (or creates) a BadgerDB at path and owns it.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for profiles: %w", err)
	}
	s := NewBadgerStore(db)
	s.ownsDB = true
	return s, nil
}

// NewBadgerStore wraps an existing BadgerDB. Close does not close db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, now: time.Now}
}

func preferencesKey(userID string) []byte {
	return []byte(preferencesKeyPrefix + userID)
}

func favoritePrefix(userID string) []byte {
	return []byte(favoriteKeyPrefix + userID + ":")
}

func favoriteKey(userID, universityID string) []byte {
	return []byte(favoriteKeyPrefix + userID + ":" + universityID)
}

// SavePreferences implements Store.
//
//nolint:gocritic // hugeParam: matches the Store interface
func (s *BadgerStore) SavePreferences(_ context.Context, userID string, prefs recommend.PreferenceSet) (*SavedPreferences, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}

	saved := SavedPreferences{Preferences: clonePreferences(prefs), UpdatedAt: s.now().UTC()}
	data, err := json.Marshal(saved)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(preferencesKey(userID), data)
	})
	if err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	return &saved, nil
}

// GetPreferences implements Store.
func (s *BadgerStore) GetPreferences(_ context.Context, userID string) (*SavedPreferences, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}

	var saved SavedPreferences
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(preferencesKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get preferences: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &saved)
		})
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// AddFavorite implements Store.
func (s *BadgerStore) AddFavorite(_ context.Context, userID, universityID string) (bool, error) {
	if err := validateIDs(userID, universityID); err != nil {
		return false, err
	}

	added := false
	err := s.db.Update(func(txn *badger.Txn) error {
		key := favoriteKey(userID, universityID)
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get favorite: %w", err)
		}

		data, err := json.Marshal(Favorite{UniversityID: universityID, AddedAt: s.now().UTC()})
		if err != nil {
			return fmt.Errorf("marshal favorite: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set favorite: %w", err)
		}
		added = true
		return nil
	})
	return added, err
}

// RemoveFavorite implements Store.
func (s *BadgerStore) RemoveFavorite(_ context.Context, userID, universityID string) (bool, error) {
	if err := validateIDs(userID, universityID); err != nil {
		return false, err
	}

	removed := false
	err := s.db.Update(func(txn *badger.Txn) error {
		key := favoriteKey(userID, universityID)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return fmt.Errorf("get favorite: %w", err)
		}
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("delete favorite: %w", err)
		}
		removed = true
		return nil
	})
	return removed, err
}

// ListFavorites implements Store.
func (s *BadgerStore) ListFavorites(_ context.Context, userID string) ([]Favorite, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}

	favorites := []Favorite{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := favoritePrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var f Favorite
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &f)
			}); err != nil {
				return err
			}
			favorites = append(favorites, f)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	// Keys iterate by university id; callers want the order they were added.
	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].AddedAt.Before(favorites[j].AddedAt)
	})
	return favorites, nil
}

// IsFavorite implements Store.
func (s *BadgerStore) IsFavorite(_ context.Context, userID, universityID string) (bool, error) {
	if err := validateIDs(userID, universityID); err != nil {
		return false, err
	}

	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(favoriteKey(userID, universityID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get favorite: %w", err)
		}
		found = true
		return nil
	})
	return found, err
}

// Close closes the database if the store opened it.
func (s *BadgerStore) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
