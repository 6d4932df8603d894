// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/unifinder/internal/models"
)

// HealthStatus is the body of the readiness probe.
type HealthStatus struct {
	Status            string  `json:"status"`
	DatabaseConnected bool    `json:"database_connected"`
	CatalogSize       int     `json:"catalog_size"`
	CatalogBreaker    string  `json:"catalog_breaker,omitempty"`
	ImportRunning     bool    `json:"import_running"`
	Uptime            float64 `json:"uptime_seconds"`
}

// HealthLive reports that the process is serving HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"status":         "alive",
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	}, start)
}

// HealthReady checks the catalog database. An empty catalog is reported as
// degraded because every recommendation would be empty.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	health := HealthStatus{
		Status: "healthy",
		Uptime: time.Since(h.startTime).Seconds(),
	}
	if h.breaker != nil {
		health.CatalogBreaker = h.breaker.BreakerState()
	}
	if h.importer != nil {
		health.ImportRunning = h.importer.Running()
	}

	if err := h.catalog.Ping(r.Context()); err != nil {
		health.Status = "unhealthy"
		resp := models.Failure(models.ErrCodeUnavailable, "Catalog database unreachable", nil)
		resp.Data = health
		respondJSON(w, http.StatusServiceUnavailable, &resp)
		return
	}
	health.DatabaseConnected = true

	n, err := h.catalog.CountUniversities(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	health.CatalogSize = n
	if n == 0 {
		health.Status = "degraded"
	}

	respondSuccess(w, http.StatusOK, health, start)
}
