// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

// Package recommend implements preference-based matching of universities.
//
// # Architecture
//
// The package has two layers:
//
//   - Criteria table: a fixed registry of thirteen criteria. Each criterion has a
//     weight, an activation test against a PreferenceSet, and a match predicate
//     against a Candidate.
//   - Scoring: Score evaluates every active criterion for each candidate, divides the
//     raw score by the sum of active weights, and stable-sorts the result descending.
//
// Score, Evaluate, Explain and TopK are pure functions. They hold no state, perform
// no I/O and are safe for concurrent use.
//
// Engine wraps the pure scorer for the service layer. It fetches a catalog snapshot
// from a CandidateProvider, applies request limits, and records metrics.
//
// # Normalization
//
// A candidate's score is raw/max where max is the sum of weights of the criteria the
// preference set activates. When no criterion is active the score is 0 for every
// candidate. Callers that need to tell that case apart from a genuinely poor match
// use Evaluation.ActiveCriteria or Response.NoPreferences.
//
// # Malformed fields
//
// Catalog fields are free text. Numeric readers return a ParseResult, and an
// Unparseable result resolves to "criterion not satisfied". Nothing in scoring
// returns an error.
//
// # Usage
//
//	scored := recommend.Score(prefs, candidates)
//	top := recommend.TopK(scored, 5)
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	engine.SetCandidateProvider(provider)
//	resp, err := engine.Recommend(ctx, recommend.Request{Preferences: prefs, K: 5})
package recommend
