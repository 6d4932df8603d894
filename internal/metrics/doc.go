// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are package-level and registered with the default registry through
promauto, so any package can record a metric without plumbing a registry around.
The HTTP layer exposes them at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Requests by method, route pattern and status code (counter)
  - api_request_duration_seconds: Request latency by method and route pattern (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Requests rejected by the rate limiter (counter)

Recommendation Metrics:
  - recommendations_total: Evaluations by source ("request" or "saved") (counter)
  - recommendation_duration_seconds: End-to-end evaluation latency (histogram)
  - recommendation_candidates_scored: Catalog size per evaluation (histogram)
  - recommendation_top_score_ratio: Best score divided by the maximum possible score (histogram)
  - recommendation_no_preferences_total: Evaluations with zero active criteria (counter)
  - recommendation_snapshot_total: Catalog snapshot reuse by result ("hit" or "miss") (counter)

Catalog Metrics:
  - catalog_universities: Universities currently in the catalog (gauge)
  - catalog_imports_total: Imports by format and result (counter)
  - catalog_import_duration_seconds: Import latency (histogram)
  - catalog_import_rows_total: Imported and skipped rows (counter)
  - catalog_last_import_timestamp_seconds: Unix time of the last successful import (gauge)

Database Metrics:
  - duckdb_query_duration_seconds: Query latency by operation and table (histogram)
  - duckdb_query_errors_total: Query errors by operation, table and error text (counter)

Profile and Authorization Metrics:
  - profile_operations_total: Saved preference and favorite operations (counter)
  - authz_decisions_total: Authorization decisions by role and result (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Requests by result (counter)
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
  - circuit_breaker_state_transitions_total: State changes (counter)

# Example Alerts

	groups:
	  - name: unifinder
	    rules:
	      - alert: CatalogUnavailable
	        expr: circuit_breaker_state{name="catalog"} == 2
	        for: 1m
	      - alert: CatalogEmpty
	        expr: catalog_universities == 0
	        for: 5m
*/
package metrics
