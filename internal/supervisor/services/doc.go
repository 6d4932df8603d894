// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

// Package services adapts the service's long-running components to suture.Service.
//
// Each service blocks in Serve until its context is canceled and returns
// ctx.Err() on a clean stop. Returning any other error asks the supervisor
// to restart it.
package services
