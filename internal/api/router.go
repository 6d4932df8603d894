// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/unifinder/internal/authz"
	"github.com/tomtom215/unifinder/internal/middleware"
	"github.com/tomtom215/unifinder/internal/models"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authz         *authz.Middleware
}

// NewRouter creates a Router. authzMiddleware may be nil in tests, in which
// case no authorization is performed.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, authzMiddleware *authz.Middleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		authz:         authzMiddleware,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, models.ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		resp := models.Failure("METHOD_NOT_ALLOWED", "Method not allowed", nil)
		respondJSON(w, http.StatusMethodNotAllowed, &resp)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if router.authz != nil {
			r.Use(router.authz.Authorize)
		}

		// Probes are not rate limited.
		r.Route("/health", func(r chi.Router) {
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit("api"))
			r.Use(chimiddleware.Compress(5, "application/json"))

			r.Get("/universities", router.handler.ListUniversities)
			r.Get("/universities/{id}", router.handler.GetUniversity)
			r.Get("/options", router.handler.Options)
			r.Post("/recommendations", router.handler.Recommend)

			r.Route("/users/{userID}", func(r chi.Router) {
				r.Get("/recommendations", router.handler.UserRecommendations)
				r.Get("/preferences", router.handler.GetPreferences)
				r.Put("/preferences", router.handler.PutPreferences)
				r.Get("/favorites", router.handler.ListFavorites)
				r.Put("/favorites/{id}", router.handler.AddFavorite)
				r.Delete("/favorites/{id}", router.handler.RemoveFavorite)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit("admin"))
			r.Get("/status", router.handler.AdminStatus)
			r.Get("/catalog/import", router.handler.LastImport)
			r.Post("/catalog/import", router.handler.ImportCatalog)
			r.Put("/universities/{id}", router.handler.UpsertUniversity)
		})
	})

	return r
}
