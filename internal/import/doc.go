// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

// Package catalogimport loads the university catalog from spreadsheet exports.
//
// # Formats
//
//   - xlsx: the first worksheet; the first non-blank row is the header
//   - csv: comma separated with a header row
//   - json: an array of objects, or {"universities": [...]}
//
// Headers are matched ignoring case, spaces and punctuation, so the original
// spreadsheet headers ("University Name", "Tuition Fees (UG)", "Societies",
// "Student_to_Faculty_Ratio", ...) and the catalog's own JSON field names
// ("name", "ug_tuition_fee", "clubs_societies", ...) both work. Unknown
// columns are reported in the Result and otherwise ignored.
//
// # Identity
//
// Rows without an id get one derived from the university name (a UUID v5),
// so favorites keyed by id stay valid across re-imports of the same sheet.
// Rows without a name are skipped, as are later rows repeating an id.
//
// # Concurrency
//
// Importer runs one import at a time (ErrImportInProgress) and enforces a
// minimum interval between imports with a token bucket (ErrRateLimited).
// A failed import never modifies the stored catalog.
package catalogimport
