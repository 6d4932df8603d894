// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package recommend

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// AnyRegion is the region value the questionnaire emits when no region is preferred.
const AnyRegion = "Any Region"

// Candidate is one university record from the catalog.
// All attributes are free text as stored in the source spreadsheet; the scoring
// criteria parse what they need and treat anything unreadable as "no match".
type Candidate struct {
	// ID is the stable catalog identifier. Favorites are keyed by it.
	ID string `json:"id"`

	// Name is the display name. It is not scored.
	Name string `json:"name"`

	// Location is a free-text place name such as "Oxford, South East".
	Location string `json:"location"`

	// UGTuition is the undergraduate fee text, e.g. "£9,250 (Home), £26,000 (International)".
	UGTuition string `json:"ug_tuition_fee"`

	// MastersTuition is the postgraduate taught fee text.
	MastersTuition string `json:"masters_tuition_fee"`

	// ScholarshipAvailability is empty or "No" when no scholarship is offered.
	ScholarshipAvailability string `json:"scholarship_availability"`

	// OnCampusAccommodation is compared with the literal "Yes".
	OnCampusAccommodation string `json:"on_campus_accommodation"`

	// ExchangeAcceptance is compared with the literal "Yes".
	ExchangeAcceptance string `json:"exchange_students_acceptance"`

	// ResearchOpportunities is compared with the literal "Yes".
	ResearchOpportunities string `json:"research_opportunities"`

	// Ranking is an integer as text; lower is better.
	Ranking string `json:"ranking"`

	// EmploymentRate is a percentage as text, e.g. "92" or "92%".
	EmploymentRate string `json:"employment_rate"`

	// StudentFacultyRatio has the shape "N:M". Only N is used.
	StudentFacultyRatio string `json:"student_faculty_ratio"`

	// InternationalStudentPopulation is a percentage as text.
	InternationalStudentPopulation string `json:"international_student_population"`

	// ClubsSocieties is a comma-separated list of club and society names.
	ClubsSocieties string `json:"clubs_societies"`

	// EducationalDomains and InternationalSupport are displayed but not scored.
	EducationalDomains   string `json:"educational_domains,omitempty"`
	InternationalSupport string `json:"international_support,omitempty"`
}

// StudyLevel selects which tuition ceilings apply.
type StudyLevel string

// Study levels offered by the questionnaire.
const (
	StudyUndergraduate StudyLevel = "undergraduate"
	StudyMasters       StudyLevel = "masters"
	StudyBoth          StudyLevel = "both"
)

func (l StudyLevel) includesUndergraduate() bool {
	return l == StudyUndergraduate || l == StudyBoth
}

func (l StudyLevel) includesMasters() bool {
	return l == StudyMasters || l == StudyBoth
}

// Bucket is a coarse low/medium/high preference.
type Bucket string

// Buckets for the student/faculty ratio and international population criteria.
const (
	BucketLow    Bucket = "low"
	BucketMedium Bucket = "medium"
	BucketHigh   Bucket = "high"
)

// Threshold is an optional positive integer preference such as a tuition ceiling.
// The zero value is unset.
//
// It decodes from a JSON number or a numeric string because the questionnaire
// submits option values as strings ("9250"). Empty strings, null and values <= 0
// decode as unset.
type Threshold struct {
	value int
	set   bool
}

// NewThreshold returns a set threshold. Values <= 0 yield an unset threshold.
func NewThreshold(v int) Threshold {
	if v <= 0 {
		return Threshold{}
	}
	return Threshold{value: v, set: true}
}

// Get returns the value and whether the threshold is set.
func (t Threshold) Get() (int, bool) {
	return t.value, t.set
}

// IsSet reports whether the threshold carries a value.
func (t Threshold) IsSet() bool {
	return t.set
}

// String implements fmt.Stringer.
func (t Threshold) String() string {
	if !t.set {
		return ""
	}
	return strconv.Itoa(t.value)
}

// MarshalJSON encodes an unset threshold as null.
func (t Threshold) MarshalJSON() ([]byte, error) {
	if !t.set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(t.value)), nil
}

// UnmarshalJSON accepts numbers, numeric strings, empty strings and null.
func (t *Threshold) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Threshold{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("threshold: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*t = Threshold{}
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("threshold: %q is not an integer", s)
		}
		*t = NewThreshold(v)
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("threshold: %s is not a number", data)
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("threshold: %s is not an integer", data)
	}
	*t = NewThreshold(int(f))
	return nil
}

// PreferenceSet is the complete set of preferences declared by a user.
// Every field is optional; an unset field leaves its criterion inactive.
// A PreferenceSet is a plain value and is never retained by the scorer.
type PreferenceSet struct {
	LocationRegion                 string     `json:"location_region,omitempty"`
	Location                       string     `json:"location,omitempty"`
	StudyLevel                     StudyLevel `json:"study_level,omitempty"`
	MaxUGTuition                   Threshold  `json:"max_ug_tuition"`
	MaxMastersTuition              Threshold  `json:"max_masters_tuition"`
	OnCampusAccommodation          bool       `json:"on_campus_accommodation,omitempty"`
	ExchangeProgram                bool       `json:"exchange_program,omitempty"`
	MinRanking                     Threshold  `json:"min_ranking"`
	ResearchOpportunities          bool       `json:"research_opportunities,omitempty"`
	ScholarshipNeeded              bool       `json:"scholarship_needed,omitempty"`
	MinEmploymentRate              Threshold  `json:"min_employment_rate"`
	StudentFacultyRatio            Bucket     `json:"student_faculty_ratio,omitempty"`
	InternationalStudentPercentage Bucket     `json:"international_student_percentage,omitempty"`
	ClubInterests                  []string   `json:"club_interests,omitempty"`
}

// ScoredCandidate is a copy of a Candidate with its normalized match score.
type ScoredCandidate struct {
	Candidate

	// Score is raw/max over the active criteria, in [0, 1].
	Score float64 `json:"score"`

	// Breakdown is filled only when an explanation was requested.
	Breakdown []CriterionResult `json:"breakdown,omitempty"`
}

// CriterionResult is the outcome of one active criterion for one candidate.
type CriterionResult struct {
	Criterion    string  `json:"criterion"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Matched      bool    `json:"matched"`
}

// Evaluation is the result of scoring a catalog against one preference set.
type Evaluation struct {
	// Items are sorted descending by score, ties in input order.
	Items []ScoredCandidate

	// ActiveCriteria names the criteria the preference set activated, in table order.
	ActiveCriteria []string

	// MaxScore is the sum of the active criteria weights.
	MaxScore float64
}

// NoPreferences reports whether no criterion was active, in which case every
// score is 0 by policy rather than by poor fit.
func (e Evaluation) NoPreferences() bool {
	return len(e.ActiveCriteria) == 0
}

// Request is a recommendation request handled by Engine.
type Request struct {
	// Preferences is the final, complete preference set. Partial questionnaire
	// state must not be submitted.
	Preferences PreferenceSet `json:"preferences"`

	// K is the number of results to return. 0 means the configured default.
	K int `json:"k"`

	// Explain attaches a per-criterion breakdown to each result.
	Explain bool `json:"explain"`

	// RequestID is propagated into logs and the response.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the result of Engine.Recommend.
type Response struct {
	// Items is the ranked shortlist, truncated to K.
	Items []ScoredCandidate `json:"items"`

	// TotalCandidates is the size of the catalog snapshot that was scored.
	TotalCandidates int `json:"total_candidates"`

	// ActiveCriteria names the criteria that contributed to normalization.
	ActiveCriteria []string `json:"active_criteria"`

	// MaxScore is the sum of the active criteria weights.
	MaxScore float64 `json:"max_score"`

	// NoPreferences is true when no criterion was active.
	NoPreferences bool `json:"no_preferences"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID  string    `json:"request_id"`
	K          int       `json:"k"`
	LatencyMS  int64     `json:"latency_ms"`
	CacheHit   bool      `json:"cache_hit"`
	Timestamp  time.Time `json:"timestamp"`
	SnapshotAt time.Time `json:"snapshot_at"`
}
