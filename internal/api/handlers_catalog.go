// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/unifinder/internal/models"
	"github.com/tomtom215/unifinder/internal/recommend"
)

// ListUniversities returns the whole catalog in catalog order.
func (h *Handler) ListUniversities(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	universities, err := h.catalog.ListUniversities(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	resp := models.Success(universities)
	count := len(universities)
	resp.Metadata.Count = &count
	resp.Metadata.QueryTimeMS = time.Since(start).Milliseconds()
	respondJSON(w, http.StatusOK, &resp)
}

// GetUniversity returns one catalog record.
func (h *Handler) GetUniversity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	u, err := h.catalog.GetUniversity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, u, start)
}

// Options returns the questionnaire vocabulary.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, recommend.DefaultVocabulary(), time.Now())
}
