// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

/*
Package authz provides role-based authorization for the HTTP API using Casbin.

Every request is mapped to a subject role, an object (the URL path) and an
action derived from the HTTP method:

	GET, HEAD, OPTIONS  -> read
	POST, PUT, PATCH    -> write
	DELETE              -> delete

Two roles exist. Requests carrying an X-API-Key header equal to the configured
admin key act as "admin"; everything else is "anonymous". The admin role
inherits every anonymous permission and additionally owns /api/v1/admin/*.
A request that sends a wrong API key is rejected with 401 rather than being
silently downgraded.

The model and policy are embedded in the binary (model.conf and policy.csv).
Paths use keyMatch2 patterns, so "/api/v1/users/:user/*" covers every route
below a user id.

Decisions are cached per (role, path, action) for Casbin.CacheTTL. The cache
holds at most a few entries per route and role because user ids are the only
variable path segment.

Usage:

	enforcer, err := authz.NewEnforcer(authz.ConfigFrom(&cfg.Security))
	if err != nil {
	    return err
	}
	defer enforcer.Close()

	mw := authz.NewMiddleware(enforcer, authz.NewAuthenticator(cfg.Security.AdminAPIKey))
	router.Use(mw.Authorize)
*/
package authz
