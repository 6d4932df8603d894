// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/unifinder/internal/logging"
	"github.com/tomtom215/unifinder/internal/metrics"
	"github.com/tomtom215/unifinder/internal/models"
	"github.com/tomtom215/unifinder/internal/profile"
	"github.com/tomtom215/unifinder/internal/recommend"
	"github.com/tomtom215/unifinder/internal/validation"
)

// FavoriteEntry is a bookmark joined with its catalog record. University is
// nil when the record was removed from the catalog after bookmarking.
type FavoriteEntry struct {
	UniversityID string               `json:"university_id"`
	AddedAt      time.Time            `json:"added_at"`
	University   *recommend.Candidate `json:"university"`
}

// FavoriteChange is the body of favorite PUT and DELETE responses.
type FavoriteChange struct {
	UniversityID string `json:"university_id"`
	Favorite     bool   `json:"favorite"`
	Changed      bool   `json:"changed"`
}

// ignoreNotFound keeps expected misses out of the profile error metrics.
func ignoreNotFound(err error) error {
	if errors.Is(err, profile.ErrNotFound) {
		return nil
	}
	return err
}

// GetPreferences returns the user's saved questionnaire.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	saved, err := h.profiles.GetPreferences(r.Context(), userID)
	metrics.RecordProfileOperation("get_preferences", ignoreNotFound(err))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, saved, start)
}

// PutPreferences validates and replaces the user's saved questionnaire.
func (h *Handler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req PreferenceRequest
	empty, err := decodeJSON(w, r, &req)
	if err != nil {
		respondDecodeError(w, r, err)
		return
	}
	if empty {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, "Request body is required", nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	saved, err := h.profiles.SavePreferences(r.Context(), userID, req.ToPreferenceSet())
	metrics.RecordProfileOperation("save_preferences", err)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("user_id", logging.SanitizeUserID(userID)).
		Msg("Preferences saved")
	respondSuccess(w, http.StatusOK, saved, start)
}

// ListFavorites returns the user's bookmarks, oldest first.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	favorites, err := h.profiles.ListFavorites(r.Context(), userID)
	metrics.RecordProfileOperation("list_favorites", err)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	entries := make([]FavoriteEntry, len(favorites))
	if len(favorites) > 0 {
		catalog, err := h.catalog.ListUniversities(r.Context())
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		byID := make(map[string]*recommend.Candidate, len(catalog))
		for i := range catalog {
			byID[catalog[i].ID] = &catalog[i]
		}
		for i, f := range favorites {
			entries[i] = FavoriteEntry{UniversityID: f.UniversityID, AddedAt: f.AddedAt, University: byID[f.UniversityID]}
		}
	}

	resp := models.Success(entries)
	count := len(entries)
	resp.Metadata.Count = &count
	resp.Metadata.QueryTimeMS = time.Since(start).Milliseconds()
	respondJSON(w, http.StatusOK, &resp)
}

// AddFavorite bookmarks a catalog university. Unknown ids are rejected with
// 404 so bookmarks always start out pointing at a real record.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	universityID := chi.URLParam(r, "id")

	if _, err := h.catalog.GetUniversity(r.Context(), universityID); err != nil {
		respondStoreError(w, r, err)
		return
	}

	added, err := h.profiles.AddFavorite(r.Context(), userID, universityID)
	metrics.RecordProfileOperation("add_favorite", err)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	respondSuccess(w, status, FavoriteChange{UniversityID: universityID, Favorite: true, Changed: added}, start)
}

// RemoveFavorite deletes a bookmark. Removing a missing bookmark succeeds
// with changed=false so the call is idempotent.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	universityID := chi.URLParam(r, "id")

	removed, err := h.profiles.RemoveFavorite(r.Context(), userID, universityID)
	metrics.RecordProfileOperation("remove_favorite", err)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, FavoriteChange{UniversityID: universityID, Favorite: false, Changed: removed}, start)
}
