// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

/*
Package database stores the university catalog in DuckDB.

The catalog is a single table, universities, holding every attribute of a
recommend.Candidate as text exactly as it appeared in the imported spreadsheet.
Parsing happens in the scoring criteria, not here.

# Usage

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	n, err := db.ReplaceUniversities(ctx, universities)

	provider := database.NewCatalogProvider(db, database.DefaultProviderConfig())
	engine.SetCandidateProvider(provider)

# Ordering

Rows carry a seq column. ListUniversities returns rows in seq order, which is
the order of the last import followed by any later upserts. The recommendation
engine's stable sort relies on it to break score ties.

# Thread Safety

DB is safe for concurrent use. ReplaceUniversities runs in one transaction, so
concurrent readers see either the old or the new catalog.
*/
package database
