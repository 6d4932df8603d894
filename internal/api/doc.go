// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

/*
Package api serves the university recommendation HTTP API using the chi router.

Every response uses the models.APIResponse envelope:

	{"status":"success","data":{...},"metadata":{"timestamp":"...","query_time_ms":3}}
	{"status":"error","metadata":{...},"error":{"code":"NOT_FOUND","message":"..."}}

Routes:

	GET    /api/v1/health/live
	GET    /api/v1/health/ready
	GET    /api/v1/universities
	GET    /api/v1/universities/{id}
	GET    /api/v1/options
	POST   /api/v1/recommendations?k=5&explain=true
	GET    /api/v1/users/{userID}/recommendations?k=5
	GET    /api/v1/users/{userID}/preferences
	PUT    /api/v1/users/{userID}/preferences
	GET    /api/v1/users/{userID}/favorites
	PUT    /api/v1/users/{userID}/favorites/{id}
	DELETE /api/v1/users/{userID}/favorites/{id}
	GET    /api/v1/admin/status
	GET    /api/v1/admin/catalog/import
	POST   /api/v1/admin/catalog/import
	PUT    /api/v1/admin/universities/{id}
	GET    /metrics

Preference bodies are validated before scoring: study level and the two
bucket preferences must use questionnaire values, free-text fields are length
limited and at most MaxClubInterests club tags are accepted. Threshold fields
accept a number, a numeric string, an empty string or null.

Authorization is delegated to internal/authz, which runs on every /api route.
The admin routes require the X-API-Key header.
*/
package api
