// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package recommend

import (
	"math"
	"strings"
)

// Criterion names, in table order.
const (
	CriterionRegion                  = "region"
	CriterionCity                    = "city"
	CriterionUGTuition               = "ug_tuition"
	CriterionMastersTuition          = "masters_tuition"
	CriterionAccommodation           = "accommodation"
	CriterionExchange                = "exchange"
	CriterionRanking                 = "ranking"
	CriterionResearch                = "research"
	CriterionScholarship             = "scholarship"
	CriterionEmployment              = "employment"
	CriterionStudentFacultyRatio     = "student_faculty_ratio"
	CriterionInternationalPopulation = "international_population"
	CriterionClubs                   = "clubs"
)

const (
	// clubMatchCredit is added per requested club tag found in the candidate's list.
	clubMatchCredit = 0.5

	// yes is the controlled-vocabulary value for tri-state catalog fields.
	yes = "Yes"
	no  = "No"
)

// Criterion is one scoring dimension.
//
// A criterion is active when the preference set supplies a value for it. Active
// criteria add Weight to the maximum score, and add their contribution to the raw
// score. Every criterion except clubs contributes either 0 or Weight.
type Criterion struct {
	Name   string
	Weight float64

	active       func(p *PreferenceSet) bool
	contribution func(c *Candidate, p *PreferenceSet) float64
}

// Active reports whether the preference set activates this criterion.
//
//nolint:gocritic // hugeParam: value receiver keeps the public API copy-safe
func (cr Criterion) Active(p PreferenceSet) bool {
	return cr.active(&p)
}

// Contribution returns the amount the candidate adds to the raw score, in [0, Weight].
// It assumes the criterion is active.
//
//nolint:gocritic // hugeParam: value receiver keeps the public API copy-safe
func (cr Criterion) Contribution(c Candidate, p PreferenceSet) float64 {
	return cr.contribution(&c, &p)
}

// criteria is the static criteria table. Order is the evaluation and reporting order.
var criteria = []Criterion{
	{
		Name:   CriterionRegion,
		Weight: 3,
		active: func(p *PreferenceSet) bool {
			return p.LocationRegion != "" && p.LocationRegion != AnyRegion
		},
		contribution: func(c *Candidate, p *PreferenceSet) float64 {
			return credit(containsFold(c.Location, p.LocationRegion), 3)
		},
	},
	{
		Name:   CriterionCity,
		Weight: 3,
		active: func(p *PreferenceSet) bool {
			return p.Location != ""
		},
		contribution: func(c *Candidate, p *PreferenceSet) float64 {
			return credit(containsFold(c.Location, p.Location), 3)
		},
	},
	{
		Name:   CriterionUGTuition,
		Weight: 2,
		active: func(p *PreferenceSet) bool {
			return p.MaxUGTuition.IsSet() && p.StudyLevel.includesUndergraduate()
		},
		contribution: func(c *Candidate, p *PreferenceSet) float64 {
			ceiling, _ := p.MaxUGTuition.Get()
			return credit(ParseCurrency(c.UGTuition).AtMost(ceiling), 2)
		},
	},
	{
		Name:   CriterionMastersTuition,
		Weight: 2,
		active: func(p *PreferenceSet) bool {
			return p.MaxMastersTuition.IsSet() && p.StudyLevel.includesMasters()
		},
		contribution: func(c *Candidate, p *PreferenceSet) float64 {
			ceiling, _ := p.MaxMastersTuition.Get()
			return credit(ParseCurrency(c.MastersTuition).AtMost(ceiling), 2)
		},
	},
	{
		Name:   CriterionAccommodation,
		Weight: 1,
		active: func(p *PreferenceSet) bool {
			return p.OnCampusAccommodation
		},
		contribution: func(c *Candidate, _ *PreferenceSet) float64 {
			return credit(c.OnCampusAccommodation == yes, 1)
		},
	},
	{
		Name:   CriterionExchange,
		Weight: 1,
		active: func(p *PreferenceSet) bool {
			return p.ExchangeProgram
		},
		contribution: func(c *Candidate, _ *PreferenceSet) float64 {
			return credit(c.ExchangeAcceptance == yes, 1)
		},
	},
	{
		Name:   CriterionRanking,
		Weight: 2,
		active: func(p *PreferenceSet) bool {
			return p.MinRanking.IsSet()
		},
		contribution: func(c *Candidate, p *PreferenceSet) float64 {
			ceiling, _ := p.MinRanking.Get()
			return credit(ParseLeadingInt(c.Ranking).AtMost(ceiling), 2)
		},
	},
	{
		Name:   CriterionResearch,
		Weight: 1,
		active: func(p *PreferenceSet) bool {
			return p.ResearchOpportunities
		},
		contribution: func(c *Candidate, _ *PreferenceSet) float64 {
			return credit(c.ResearchOpportunities == yes, 1)
		},
	},
	{
		Name:   CriterionScholarship,
		Weight: 2,
		active: func(p *PreferenceSet) bool {
			return p.ScholarshipNeeded
		},
		contribution: func(c *Candidate, _ *PreferenceSet) float64 {
			s := c.ScholarshipAvailability
			return credit(s != "" && s != no, 2)
		},
	},
	{
		Name:   CriterionEmployment,
		Weight: 2,
		active: func(p *PreferenceSet) bool {
			return p.MinEmploymentRate.IsSet()
		},
		contribution: func(c *Candidate, p *PreferenceSet) float64 {
			floor, _ := p.MinEmploymentRate.Get()
			return credit(ParseLeadingInt(c.EmploymentRate).AtLeast(floor), 2)
		},
	},
	{
		Name:   CriterionStudentFacultyRatio,
		Weight: 1,
		active: func(p *PreferenceSet) bool {
			return p.StudentFacultyRatio != ""
		},
		contribution: func(c *Candidate, p *PreferenceSet) float64 {
			return credit(ratioInBucket(ParseRatioNumerator(c.StudentFacultyRatio), p.StudentFacultyRatio), 1)
		},
	},
	{
		Name:   CriterionInternationalPopulation,
		Weight: 1,
		active: func(p *PreferenceSet) bool {
			return p.InternationalStudentPercentage != ""
		},
		contribution: func(c *Candidate, p *PreferenceSet) float64 {
			pct := ParseLeadingInt(c.InternationalStudentPopulation)
			return credit(populationInBucket(pct, p.InternationalStudentPercentage), 1)
		},
	},
	{
		Name:   CriterionClubs,
		Weight: 2,
		active: func(p *PreferenceSet) bool {
			return len(clubTags(p.ClubInterests)) > 0
		},
		contribution: func(c *Candidate, p *PreferenceSet) float64 {
			clubs := strings.ToLower(c.ClubsSocieties)
			sub := 0.0
			for _, tag := range clubTags(p.ClubInterests) {
				if strings.Contains(clubs, strings.ToLower(tag)) {
					sub += clubMatchCredit
				}
			}
			return math.Min(sub, 2)
		},
	},
}

// Criteria returns a copy of the criteria table in evaluation order.
func Criteria() []Criterion {
	out := make([]Criterion, len(criteria))
	copy(out, criteria)
	return out
}

// MaxPossibleWeight is the maximum score when every criterion is active.
func MaxPossibleWeight() float64 {
	total := 0.0
	for _, cr := range criteria {
		total += cr.Weight
	}
	return total
}

func credit(matched bool, weight float64) float64 {
	if matched {
		return weight
	}
	return 0
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ratioInBucket reports whether the student/staff ratio n falls in bucket b:
// low is at most 15, medium is above 15 up to 25, high is above 25.
func ratioInBucket(n ParseResult, b Bucket) bool {
	v, ok := n.Value()
	if !ok {
		return false
	}
	switch b {
	case BucketLow:
		return v <= 15
	case BucketMedium:
		return v > 15 && v <= 25
	case BucketHigh:
		return v > 25
	default:
		return false
	}
}

// populationInBucket reports whether the international percentage pct falls in
// bucket b: low is under 15, medium is 15 to 30 inclusive, high is above 30.
func populationInBucket(pct ParseResult, b Bucket) bool {
	v, ok := pct.Value()
	if !ok {
		return false
	}
	switch b {
	case BucketLow:
		return v < 15
	case BucketMedium:
		return v >= 15 && v <= 30
	case BucketHigh:
		return v > 30
	default:
		return false
	}
}

// clubTags drops blank tags. A blank tag would otherwise match every candidate.
func clubTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if strings.TrimSpace(t) != "" {
			out = append(out, t)
		}
	}
	return out
}
