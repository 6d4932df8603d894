// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package catalogimport

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/tomtom215/unifinder/internal/recommend"
)

// fieldRef returns a pointer to one string field of a candidate.
type fieldRef func(c *recommend.Candidate) *string

// headerFields maps normalized header names to candidate fields. Keys cover
// the spreadsheet headers, the catalog JSON field names and the names used by
// older document-store exports.
var headerFields = map[string]fieldRef{
	"id":  func(c *recommend.Candidate) *string { return &c.ID },
	"_id": func(c *recommend.Candidate) *string { return &c.ID },

	"universityname": func(c *recommend.Candidate) *string { return &c.Name },
	"name":           func(c *recommend.Candidate) *string { return &c.Name },

	"location": func(c *recommend.Candidate) *string { return &c.Location },

	"tuitionfeesug": func(c *recommend.Candidate) *string { return &c.UGTuition },
	"ugtuitionfee":  func(c *recommend.Candidate) *string { return &c.UGTuition },

	"tuitionfeespg":     func(c *recommend.Candidate) *string { return &c.MastersTuition },
	"masterstuitionfee": func(c *recommend.Candidate) *string { return &c.MastersTuition },

	"scholarshipsavailable":   func(c *recommend.Candidate) *string { return &c.ScholarshipAvailability },
	"scholarshipavailability": func(c *recommend.Candidate) *string { return &c.ScholarshipAvailability },

	"educationaldomains": func(c *recommend.Candidate) *string { return &c.EducationalDomains },

	"societies":      func(c *recommend.Candidate) *string { return &c.ClubsSocieties },
	"clubssocieties": func(c *recommend.Candidate) *string { return &c.ClubsSocieties },

	"internationalsupport": func(c *recommend.Candidate) *string { return &c.InternationalSupport },

	"researchopportunities": func(c *recommend.Candidate) *string { return &c.ResearchOpportunities },

	"rankings": func(c *recommend.Candidate) *string { return &c.Ranking },
	"ranking":  func(c *recommend.Candidate) *string { return &c.Ranking },

	"oncampusaccommodation": func(c *recommend.Candidate) *string { return &c.OnCampusAccommodation },

	"exchangestudentsacceptance": func(c *recommend.Candidate) *string { return &c.ExchangeAcceptance },

	"studenttofacultyratio": func(c *recommend.Candidate) *string { return &c.StudentFacultyRatio },
	"studentfacultyratio":   func(c *recommend.Candidate) *string { return &c.StudentFacultyRatio },

	"employmentrateaftergraduation": func(c *recommend.Candidate) *string { return &c.EmploymentRate },
	"employmentrate":                func(c *recommend.Candidate) *string { return &c.EmploymentRate },

	"internationalstudentpopulation": func(c *recommend.Candidate) *string { return &c.InternationalStudentPopulation },
}

// normalizeHeader lowercases h and drops everything except letters, digits
// and a leading underscore, so "Tuition Fees (UG)" and "tuition_fees_ug" agree.
func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	var b strings.Builder
	b.Grow(len(h))
	for i, r := range h {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '_' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// lookupField resolves a header to a candidate field.
func lookupField(header string) (fieldRef, bool) {
	ref, ok := headerFields[normalizeHeader(header)]
	return ref, ok
}

// idNamespace scopes derived university ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/tomtom215/unifinder/universities"))

// DeriveID returns a stable id for a university without one. The same name
// (ignoring case and surrounding space) always yields the same id, so saved
// favorites survive a re-import.
func DeriveID(name string) string {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	return uuid.NewSHA1(idNamespace, []byte(key)).String()
}

// rowMapper turns positional rows into candidates.
type rowMapper struct {
	fields  []fieldRef // nil for unknown columns
	unknown []string
}

func newRowMapper(header []string) (*rowMapper, error) {
	m := &rowMapper{fields: make([]fieldRef, len(header))}
	hasName := false
	for i, h := range header {
		ref, ok := lookupField(h)
		if !ok {
			if strings.TrimSpace(h) != "" {
				m.unknown = append(m.unknown, h)
			}
			continue
		}
		m.fields[i] = ref
		if n := normalizeHeader(h); n == "name" || n == "universityname" {
			hasName = true
		}
	}
	if !hasName {
		return nil, ErrMissingNameColumn
	}
	return m, nil
}

// mapRow fills a candidate from row. Cells beyond the header are ignored and
// missing trailing cells are empty. blank reports a row with no content.
func (m *rowMapper) mapRow(row []string) (c recommend.Candidate, blank bool) {
	blank = true
	for i, cell := range row {
		if i >= len(m.fields) {
			break
		}
		v := strings.TrimSpace(cell)
		if v != "" {
			blank = false
		}
		if m.fields[i] != nil {
			*m.fields[i](&c) = v
		}
	}
	return c, blank
}
