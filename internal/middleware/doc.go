// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

/*
Package middleware provides the HTTP middleware shared by every API route.

Key Components:

  - RequestID: X-Request-ID propagation and a request-scoped zerolog logger
  - AccessLog: one structured log line per request
  - PrometheusMetrics: request counts, latency and in-flight gauges
  - SecurityHeaders: nosniff, frame denial, referrer policy and HSTS

All middleware has the chi signature func(http.Handler) http.Handler. The
router in internal/api installs them in this order:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.PrometheusMetrics)

PrometheusMetrics labels requests with the chi route pattern
("/api/v1/users/{userID}/favorites") rather than the raw path, so user ids
never become label values.
*/
package middleware
