// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/unifinder/internal/logging"
	"github.com/tomtom215/unifinder/internal/metrics"
	"github.com/tomtom215/unifinder/internal/models"
	"github.com/tomtom215/unifinder/internal/recommend"
	"github.com/tomtom215/unifinder/internal/validation"
)

// Recommendation sources, used as metric labels.
const (
	sourceRequest = "request"
	sourceSaved   = "saved"
)

// Recommend scores the catalog against the submitted questionnaire.
//
//	POST /api/v1/recommendations?k=5&explain=true
//	{"location_region": "Scotland", "max_ug_tuition": "9250", "club_interests": ["Sports"]}
//
// An empty body is a questionnaire with no answers: every university scores 0
// and the response carries no_preferences=true.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseRecommendationQuery(w, r)
	if !ok {
		return
	}

	var req PreferenceRequest
	if _, err := decodeJSON(w, r, &req); err != nil {
		respondDecodeError(w, r, err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	h.serveRecommendations(w, r, req.ToPreferenceSet(), query, sourceRequest)
}

// UserRecommendations scores the catalog against the user's saved preferences.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	query, ok := h.parseRecommendationQuery(w, r)
	if !ok {
		return
	}

	saved, err := h.profiles.GetPreferences(r.Context(), userID)
	metrics.RecordProfileOperation("get_preferences", ignoreNotFound(err))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	h.serveRecommendations(w, r, saved.Preferences, query, sourceSaved)
}

//nolint:gocritic // hugeParam: prefs is handed to the engine by value
func (h *Handler) serveRecommendations(w http.ResponseWriter, r *http.Request, prefs recommend.PreferenceSet, query RecommendationQuery, source string) {
	start := time.Now()

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Preferences: prefs,
		K:           query.K,
		Explain:     query.Explain,
		RequestID:   logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	var topScore float64
	if len(resp.Items) > 0 {
		topScore = resp.Items[0].Score * resp.MaxScore
	}
	metrics.RecordRecommendation(metrics.Recommendation{
		Source:        source,
		Duration:      time.Since(start),
		Candidates:    resp.TotalCandidates,
		TopScore:      topScore,
		MaxScore:      resp.MaxScore,
		NoPreferences: resp.NoPreferences,
		CacheHit:      resp.Metadata.CacheHit,
	})

	logging.Ctx(r.Context()).Info().
		Str("source", source).
		Int("k", resp.Metadata.K).
		Int("candidates", resp.TotalCandidates).
		Int("returned", len(resp.Items)).
		Bool("no_preferences", resp.NoPreferences).
		Msg("Recommendations served")

	out := models.Success(resp)
	out.Metadata.QueryTimeMS = time.Since(start).Milliseconds()
	out.Metadata.Cached = resp.Metadata.CacheHit
	count := len(resp.Items)
	out.Metadata.Count = &count
	respondJSON(w, http.StatusOK, &out)
}

func (h *Handler) parseRecommendationQuery(w http.ResponseWriter, r *http.Request) (RecommendationQuery, bool) {
	var q RecommendationQuery
	var err error

	if q.K, err = parseIntQuery(r, "k", 0); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return q, false
	}
	if q.Explain, err = parseBoolQuery(r, "explain"); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return q, false
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidationError(w, verr)
		return q, false
	}
	return q, true
}

// userIDParam validates the {userID} URL parameter.
func userIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := chi.URLParam(r, "userID")
	if verr := validation.ValidateVar("userID", userID, "userid"); verr != nil {
		respondValidationError(w, verr)
		return "", false
	}
	return userID, true
}
