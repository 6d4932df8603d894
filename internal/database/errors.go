// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package database

import (
	"errors"
	"io"
)

var (
	// ErrNotFound is returned when a university id is not in the catalog.
	ErrNotFound = errors.New("university not found")

	// ErrDuplicateID is returned when a catalog write carries the same id twice.
	ErrDuplicateID = errors.New("duplicate university id")

	// ErrInvalidUniversity is returned for records without an id or a name.
	ErrInvalidUniversity = errors.New("university requires an id and a name")
)

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
