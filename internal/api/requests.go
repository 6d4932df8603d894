// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package api

import (
	"strings"

	"github.com/tomtom215/unifinder/internal/recommend"
)

// MaxClubInterests bounds the club tags of one preference set.
const MaxClubInterests = 20

// PreferenceRequest is the questionnaire body of the recommendation and
// preference endpoints.
type PreferenceRequest struct {
	LocationRegion                 string              `json:"location_region" validate:"max=100"`
	Location                       string              `json:"location" validate:"max=200"`
	StudyLevel                     string              `json:"study_level" validate:"omitempty,oneof=undergraduate masters both"`
	MaxUGTuition                   recommend.Threshold `json:"max_ug_tuition"`
	MaxMastersTuition              recommend.Threshold `json:"max_masters_tuition"`
	OnCampusAccommodation          bool                `json:"on_campus_accommodation"`
	ExchangeProgram                bool                `json:"exchange_program"`
	MinRanking                     recommend.Threshold `json:"min_ranking"`
	ResearchOpportunities          bool                `json:"research_opportunities"`
	ScholarshipNeeded              bool                `json:"scholarship_needed"`
	MinEmploymentRate              recommend.Threshold `json:"min_employment_rate"`
	StudentFacultyRatio            string              `json:"student_faculty_ratio" validate:"omitempty,oneof=low medium high"`
	InternationalStudentPercentage string              `json:"international_student_percentage" validate:"omitempty,oneof=low medium high"`
	ClubInterests                  []string            `json:"club_interests" validate:"max=20,dive,max=64"`
}

// ToPreferenceSet converts the request into the engine's preference set.
// Free-text fields are trimmed; blank club tags are kept and ignored by the scorer.
func (p *PreferenceRequest) ToPreferenceSet() recommend.PreferenceSet {
	var clubs []string
	if len(p.ClubInterests) > 0 {
		clubs = make([]string, len(p.ClubInterests))
		for i, c := range p.ClubInterests {
			clubs[i] = strings.TrimSpace(c)
		}
	}

	return recommend.PreferenceSet{
		LocationRegion:                 strings.TrimSpace(p.LocationRegion),
		Location:                       strings.TrimSpace(p.Location),
		StudyLevel:                     recommend.StudyLevel(p.StudyLevel),
		MaxUGTuition:                   p.MaxUGTuition,
		MaxMastersTuition:              p.MaxMastersTuition,
		OnCampusAccommodation:          p.OnCampusAccommodation,
		ExchangeProgram:                p.ExchangeProgram,
		MinRanking:                     p.MinRanking,
		ResearchOpportunities:          p.ResearchOpportunities,
		ScholarshipNeeded:              p.ScholarshipNeeded,
		MinEmploymentRate:              p.MinEmploymentRate,
		StudentFacultyRatio:            recommend.Bucket(p.StudentFacultyRatio),
		InternationalStudentPercentage: recommend.Bucket(p.InternationalStudentPercentage),
		ClubInterests:                  clubs,
	}
}

// RecommendationQuery holds the query parameters of recommendation endpoints.
type RecommendationQuery struct {
	K       int  `json:"k" validate:"gte=0,lte=100"`
	Explain bool `json:"explain"`
}

// UniversityRequest is the admin body for creating or replacing one university.
// The id comes from the URL.
type UniversityRequest struct {
	Name                           string `json:"name" validate:"notblank,max=200"`
	Location                       string `json:"location" validate:"max=200"`
	UGTuition                      string `json:"ug_tuition_fee" validate:"max=200"`
	MastersTuition                 string `json:"masters_tuition_fee" validate:"max=200"`
	ScholarshipAvailability        string `json:"scholarship_availability" validate:"max=200"`
	OnCampusAccommodation          string `json:"on_campus_accommodation" validate:"max=50"`
	ExchangeAcceptance             string `json:"exchange_students_acceptance" validate:"max=50"`
	ResearchOpportunities          string `json:"research_opportunities" validate:"max=50"`
	Ranking                        string `json:"ranking" validate:"max=50"`
	EmploymentRate                 string `json:"employment_rate" validate:"max=50"`
	StudentFacultyRatio            string `json:"student_faculty_ratio" validate:"max=50"`
	InternationalStudentPopulation string `json:"international_student_population" validate:"max=50"`
	ClubsSocieties                 string `json:"clubs_societies" validate:"max=4000"`
	EducationalDomains             string `json:"educational_domains" validate:"max=4000"`
	InternationalSupport           string `json:"international_support" validate:"max=4000"`
}

// ToCandidate builds the catalog record stored under id.
func (u *UniversityRequest) ToCandidate(id string) recommend.Candidate {
	return recommend.Candidate{
		ID:                             id,
		Name:                           strings.TrimSpace(u.Name),
		Location:                       u.Location,
		UGTuition:                      u.UGTuition,
		MastersTuition:                 u.MastersTuition,
		ScholarshipAvailability:        u.ScholarshipAvailability,
		OnCampusAccommodation:          u.OnCampusAccommodation,
		ExchangeAcceptance:             u.ExchangeAcceptance,
		ResearchOpportunities:          u.ResearchOpportunities,
		Ranking:                        u.Ranking,
		EmploymentRate:                 u.EmploymentRate,
		StudentFacultyRatio:            u.StudentFacultyRatio,
		InternationalStudentPopulation: u.InternationalStudentPopulation,
		ClubsSocieties:                 u.ClubsSocieties,
		EducationalDomains:             u.EducationalDomains,
		InternationalSupport:           u.InternationalSupport,
	}
}
