// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by every handler. Field names in error
// messages use the struct's json tag, so a client sees "study_level" rather
// than "StudyLevel".
//
// Custom tags:
//   - userid: a profile key (no colon, whitespace or control characters, at most 128 bytes)
//   - notblank: a string that is not empty after trimming whitespace
//
// Usage:
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
