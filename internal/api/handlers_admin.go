// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	catalogimport "github.com/tomtom215/unifinder/internal/import"
	"github.com/tomtom215/unifinder/internal/logging"
	"github.com/tomtom215/unifinder/internal/models"
	"github.com/tomtom215/unifinder/internal/recommend"
	"github.com/tomtom215/unifinder/internal/validation"
)

// defaultMaxUploadBytes applies when the catalog config leaves the limit unset.
const defaultMaxUploadBytes = 10 << 20

// uploadFieldName is the multipart field carrying the catalog file.
const uploadFieldName = "file"

// contentTypeFormats maps upload content types to catalog formats.
var contentTypeFormats = map[string]catalogimport.Format{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": catalogimport.FormatXLSX,
	"text/csv":         catalogimport.FormatCSV,
	"application/csv":  catalogimport.FormatCSV,
	"application/json": catalogimport.FormatJSON,
}

// AdminStatus summarizes engine and catalog state for operators.
type AdminStatus struct {
	Engine         recommend.Metrics     `json:"engine"`
	CatalogBreaker string                `json:"catalog_breaker,omitempty"`
	ImportRunning  bool                  `json:"import_running"`
	LastImport     *catalogimport.Result `json:"last_import"`
	Uptime         float64               `json:"uptime_seconds"`
}

// AdminStatus reports engine counters, breaker state and the last import.
func (h *Handler) AdminStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := AdminStatus{
		Engine: h.engine.GetMetrics(),
		Uptime: time.Since(h.startTime).Seconds(),
	}
	if h.breaker != nil {
		status.CatalogBreaker = h.breaker.BreakerState()
	}
	if h.importer != nil {
		status.ImportRunning = h.importer.Running()
		status.LastImport = h.importer.LastResult()
	}
	respondSuccess(w, http.StatusOK, status, start)
}

// LastImport returns the outcome of the most recent catalog import.
func (h *Handler) LastImport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	last := h.importer.LastResult()
	if last == nil {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "No catalog import has run yet", nil)
		return
	}
	respondSuccess(w, http.StatusOK, last, start)
}

// ImportCatalog replaces the catalog with an uploaded file.
//
// The file is sent either as multipart/form-data in the "file" field, with the
// format taken from its extension, or as the raw request body with the format
// taken from the Content-Type header. A ?format=xlsx|csv|json query parameter
// overrides both.
func (h *Handler) ImportCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := h.config.Catalog.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	body, format, source, err := uploadSource(r)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	res, err := h.importer.ImportReader(r.Context(), body, format, source)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("source", logging.SanitizeInput(source)).
		Str("format", string(format)).
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Msg("Catalog imported via API")
	respondSuccess(w, http.StatusOK, res, start)
}

// uploadSource locates the uploaded catalog and its format.
func uploadSource(r *http.Request) (io.Reader, catalogimport.Format, string, error) {
	override := r.URL.Query().Get("format")

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	if mediaType == "multipart/form-data" {
		return multipartSource(r, override)
	}

	format, ok := contentTypeFormats[mediaType]
	if override != "" {
		f, err := catalogimport.ParseFormat(override)
		if err != nil {
			return nil, "", "", err
		}
		format, ok = f, true
	}
	if !ok {
		return nil, "", "", catalogimport.ErrUnsupportedFormat
	}
	return r.Body, format, "upload." + string(format), nil
}

func multipartSource(r *http.Request, override string) (io.Reader, catalogimport.Format, string, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %w", errInvalidUpload, err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, "", "", fmt.Errorf(`%w: no "file" field`, errInvalidUpload)
		}
		if err != nil {
			return nil, "", "", fmt.Errorf("%w: %w", errInvalidUpload, err)
		}
		if part.FormName() != uploadFieldName {
			continue
		}

		name := part.FileName()
		var format catalogimport.Format
		if override != "" {
			format, err = catalogimport.ParseFormat(override)
		} else {
			format, err = catalogimport.FormatFromPath(name)
		}
		if err != nil {
			return nil, "", "", err
		}
		if name == "" {
			name = "upload." + string(format)
		}
		return part, format, name, nil
	}
}

// errInvalidUpload is returned for unreadable multipart bodies.
var errInvalidUpload = errors.New("invalid multipart upload")

// UpsertUniversity creates or replaces one catalog record.
func (h *Handler) UpsertUniversity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if verr := validation.ValidateVar("id", id, "notblank,max=128"); verr != nil {
		respondValidationError(w, verr)
		return
	}

	var req UniversityRequest
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

	candidate := req.ToCandidate(id)
	created, err := h.catalog.UpsertUniversity(r.Context(), candidate)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.engine.InvalidateCandidates()

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondSuccess(w, status, candidate, start)
}
