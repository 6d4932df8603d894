// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package catalogimport

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Format is a supported catalog file format.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var (
	// ErrUnsupportedFormat is returned for files that are not xlsx, csv or json.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")

	// ErrMissingNameColumn is returned when no column maps to the university name.
	ErrMissingNameColumn = errors.New("catalog has no university name column")

	// ErrMalformedCatalog wraps decode errors of the underlying file format.
	ErrMalformedCatalog = errors.New("malformed catalog file")

	// ErrEmptyCatalog is returned when a file yields no importable rows.
	// The current catalog is left untouched.
	ErrEmptyCatalog = errors.New("catalog file contains no universities")

	// ErrImportInProgress is returned when another import is running.
	ErrImportInProgress = errors.New("catalog import already in progress")

	// ErrRateLimited is returned when imports arrive faster than the configured interval.
	ErrRateLimited = errors.New("catalog import rate limited")
)

// ParseFormat returns the Format named by s ("xlsx", ".CSV", ...).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatXLSX, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath infers the Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Result describes one import attempt.
type Result struct {
	// Source is the file path or upload name.
	Source string `json:"source"`
	Format Format `json:"format"`

	// Rows is the number of non-blank data rows read.
	Rows int `json:"rows"`

	// Imported is the number of universities now in the catalog.
	Imported int `json:"imported"`

	// Skipped counts rows without a name plus repeated ids.
	Skipped int `json:"skipped"`

	// Duplicates is the part of Skipped caused by repeated ids.
	Duplicates int `json:"duplicates"`

	// UnknownColumns lists headers that matched no catalog field.
	UnknownColumns []string `json:"unknown_columns,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Error is set when the import failed.
	Error string `json:"error,omitempty"`
}

// Duration returns how long the import took.
func (r *Result) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// clone returns a deep copy of r.
func (r *Result) clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	c.UnknownColumns = append([]string(nil), r.UnknownColumns...)
	return &c
}
