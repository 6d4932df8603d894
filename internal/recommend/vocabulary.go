// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package recommend

// Option is one selectable value in the questionnaire.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Vocabulary lists the values the questionnaire offers for each preference.
// The scorer does not validate against it: a value outside the vocabulary simply
// never matches.
type Vocabulary struct {
	Regions                 []string `json:"regions"`
	ClubCategories          []string `json:"club_categories"`
	StudyLevels             []Option `json:"study_levels"`
	DefaultStudyLevel       string   `json:"default_study_level"`
	UGTuitionCeilings       []Option `json:"ug_tuition_ceilings"`
	MastersTuitionCeilings  []Option `json:"masters_tuition_ceilings"`
	RankingCeilings         []Option `json:"ranking_ceilings"`
	EmploymentRateFloors    []Option `json:"employment_rate_floors"`
	StudentFacultyRatios    []Option `json:"student_faculty_ratios"`
	InternationalPopulation []Option `json:"international_population"`
}

// DefaultVocabulary returns the questionnaire vocabulary. Each call returns fresh slices.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Regions: []string{
			AnyRegion,
			"London",
			"South East",
			"South West",
			"East of England",
			"East Midlands",
			"West Midlands",
			"Yorkshire and the Humber",
			"North East",
			"North West",
			"Scotland",
			"Wales",
			"Northern Ireland",
		},
		ClubCategories: []string{
			"Sports",
			"Arts & Culture",
			"Academic",
			"Community Service",
			"Technology",
			"Business",
			"Media",
			"International",
			"Religious",
			"Political",
		},
		StudyLevels: []Option{
			{Value: string(StudyUndergraduate), Label: "Undergraduate"},
			{Value: string(StudyMasters), Label: "Masters"},
			{Value: string(StudyBoth), Label: "Both Undergraduate and Masters"},
		},
		DefaultStudyLevel: string(StudyUndergraduate),
		UGTuitionCeilings: []Option{
			{Value: "9250", Label: "Up to £9,250 (Standard UK/EU fee)"},
			{Value: "15000", Label: "Up to £15,000"},
			{Value: "20000", Label: "Up to £20,000"},
			{Value: "25000", Label: "Up to £25,000"},
			{Value: "30000", Label: "Up to £30,000"},
		},
		MastersTuitionCeilings: []Option{
			{Value: "10000", Label: "Up to £10,000"},
			{Value: "15000", Label: "Up to £15,000"},
			{Value: "20000", Label: "Up to £20,000"},
			{Value: "25000", Label: "Up to £25,000"},
			{Value: "30000", Label: "Up to £30,000"},
		},
		RankingCeilings: []Option{
			{Value: "10", Label: "Top 10"},
			{Value: "20", Label: "Top 20"},
			{Value: "50", Label: "Top 50"},
			{Value: "100", Label: "Top 100"},
			{Value: "150", Label: "Top 150"},
		},
		EmploymentRateFloors: []Option{
			{Value: "70", Label: "At least 70%"},
			{Value: "75", Label: "At least 75%"},
			{Value: "80", Label: "At least 80%"},
			{Value: "85", Label: "At least 85%"},
			{Value: "90", Label: "At least 90%"},
			{Value: "95", Label: "At least 95%"},
		},
		StudentFacultyRatios: []Option{
			{Value: string(BucketLow), Label: "Low ratio (15 or fewer students per staff member)"},
			{Value: string(BucketMedium), Label: "Medium ratio (16 to 25)"},
			{Value: string(BucketHigh), Label: "High ratio (more than 25)"},
		},
		InternationalPopulation: []Option{
			{Value: string(BucketLow), Label: "Low (less than 15%)"},
			{Value: string(BucketMedium), Label: "Medium (15-30%)"},
			{Value: string(BucketHigh), Label: "High (more than 30%)"},
		},
	}
}
