// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/unifinder/internal/database"
	catalogimport "github.com/tomtom215/unifinder/internal/import"
	"github.com/tomtom215/unifinder/internal/logging"
	"github.com/tomtom215/unifinder/internal/models"
	"github.com/tomtom215/unifinder/internal/profile"
	"github.com/tomtom215/unifinder/internal/recommend"
	"github.com/tomtom215/unifinder/internal/validation"
)

// maxJSONBodyBytes caps JSON request bodies other than catalog uploads.
const maxJSONBodyBytes = 64 << 10

// respondJSON writes response with the given status.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess writes data in a success envelope timed from start.
func respondSuccess(w http.ResponseWriter, status int, data interface{}, start time.Time) {
	resp := models.Success(data)
	resp.Metadata.QueryTimeMS = time.Since(start).Milliseconds()
	respondJSON(w, status, &resp)
}

// respondError writes an error envelope. err is logged, never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Err(err).Str("code", code).Int("status", status).Msg("API error")
	}

	resp := models.Failure(code, message, nil)
	respondJSON(w, status, &resp)
}

// respondValidationError writes a VALIDATION_ERROR with field details.
func respondValidationError(w http.ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	resp := models.Failure(apiErr.Code, apiErr.Message, apiErr.Details)
	respondJSON(w, http.StatusBadRequest, &resp)
}

// respondStoreError maps package sentinel errors to HTTP responses.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		respondError(w, r, http.StatusRequestEntityTooLarge, models.ErrCodeValidation,
			fmt.Sprintf("Request body exceeds %d bytes", maxBytes.Limit), nil)
	case errors.Is(err, database.ErrNotFound):
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "University not found", nil)
	case errors.Is(err, profile.ErrNotFound):
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "No saved preferences for this user", nil)
	case errors.Is(err, profile.ErrInvalidUserID):
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, "Invalid user id", nil)
	case errors.Is(err, profile.ErrInvalidUniversityID):
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, "University id is required", nil)
	case errors.Is(err, database.ErrInvalidUniversity), errors.Is(err, database.ErrDuplicateID):
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
	case errors.Is(err, catalogimport.ErrUnsupportedFormat),
		errors.Is(err, catalogimport.ErrMissingNameColumn),
		errors.Is(err, catalogimport.ErrEmptyCatalog),
		errors.Is(err, catalogimport.ErrMalformedCatalog),
		errors.Is(err, errInvalidUpload):
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), err)
	case errors.Is(err, catalogimport.ErrImportInProgress):
		respondError(w, r, http.StatusConflict, models.ErrCodeConflict, "A catalog import is already running", nil)
	case errors.Is(err, catalogimport.ErrRateLimited):
		respondError(w, r, http.StatusTooManyRequests, models.ErrCodeRateLimit, "Catalog imports are rate limited; try again later", nil)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests),
		errors.Is(err, recommend.ErrNoProvider):
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Catalog temporarily unavailable", err)
	case r.Context().Err() != nil:
		// Client went away; nothing useful to send.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Request canceled")
	default:
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeDatabase, "Internal storage error", err)
	}
}

// decodeJSON decodes a size-limited JSON body into v. An empty body leaves v
// untouched and reports empty=true.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) (empty bool, err error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err != nil {
		return false, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return true, nil
	}
	return false, json.Unmarshal(data, v)
}

// respondDecodeError reports a body that could not be decoded.
func respondDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		respondStoreError(w, r, err)
		return
	}
	respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, "Invalid JSON body: "+err.Error(), nil)
}

// parseIntQuery parses an optional integer query parameter.
func parseIntQuery(r *http.Request, key string, defaultValue int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// parseBoolQuery parses an optional boolean query parameter.
func parseBoolQuery(r *http.Request, key string) (bool, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return b, nil
}
