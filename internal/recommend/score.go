// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package recommend

import (
	"sort"
)

// Score scores every candidate against prefs and returns the candidates sorted
// descending by score. Candidates with equal scores keep their input order.
// An empty or nil input yields an empty, non-nil slice.
//
//nolint:gocritic // hugeParam: prefs passed by value, never retained
func Score(prefs PreferenceSet, candidates []Candidate) []ScoredCandidate {
	return Evaluate(prefs, candidates).Items
}

// Evaluate is Score plus the normalization details: which criteria were active and
// the maximum attainable raw score.
//
//nolint:gocritic // hugeParam: prefs passed by value, never retained
func Evaluate(prefs PreferenceSet, candidates []Candidate) Evaluation {
	active, maxScore := activeCriteria(&prefs)

	items := make([]ScoredCandidate, len(candidates))
	for i := range candidates {
		items[i] = ScoredCandidate{
			Candidate: candidates[i],
			Score:     normalizedScore(&candidates[i], &prefs, active, maxScore),
		}
	}
	sortByScore(items)

	names := make([]string, len(active))
	for i, cr := range active {
		names[i] = cr.Name
	}

	return Evaluation{
		Items:          items,
		ActiveCriteria: names,
		MaxScore:       maxScore,
	}
}

// Explain returns the per-criterion outcome for one candidate, covering only the
// criteria prefs activates.
//
//nolint:gocritic // hugeParam: arguments passed by value, never retained
func Explain(c Candidate, prefs PreferenceSet) []CriterionResult {
	active, _ := activeCriteria(&prefs)
	out := make([]CriterionResult, 0, len(active))
	for _, cr := range active {
		got := cr.contribution(&c, &prefs)
		out = append(out, CriterionResult{
			Criterion:    cr.Name,
			Weight:       cr.Weight,
			Contribution: got,
			Matched:      got > 0,
		})
	}
	return out
}

// TopK returns the first k entries of a sorted result. k <= 0 or k >= len(scored)
// returns the whole slice.
func TopK(scored []ScoredCandidate, k int) []ScoredCandidate {
	if k <= 0 || k >= len(scored) {
		return scored
	}
	return scored[:k]
}

func activeCriteria(p *PreferenceSet) ([]Criterion, float64) {
	active := make([]Criterion, 0, len(criteria))
	maxScore := 0.0
	for _, cr := range criteria {
		if cr.active(p) {
			active = append(active, cr)
			maxScore += cr.Weight
		}
	}
	return active, maxScore
}

func normalizedScore(c *Candidate, p *PreferenceSet, active []Criterion, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	raw := 0.0
	for _, cr := range active {
		raw += cr.contribution(c, p)
	}
	return raw / maxScore
}

func sortByScore(items []ScoredCandidate) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}
