// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package catalogimport

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"University Name", "universityname"},
		{"Tuition Fees (UG)", "tuitionfeesug"},
		{"Student_to_Faculty_Ratio", "studenttofacultyratio"},
		{"ug_tuition_fee", "ugtuitionfee"},
		{"  Rankings ", "rankings"},
		{"\ufeffUniversity Name", "universityname"},
		{"_id", "_id"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeHeader(tt.input); got != tt.want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLookupField_SpreadsheetHeaders(t *testing.T) {
	t.Parallel()

	headers := []string{
		"University Name", "Location", "Tuition Fees (UG)", "Tuition Fees (PG)",
		"Scholarships Available", "Educational Domains", "Societies",
		"International Support", "Research Opportunities", "Rankings",
		"On_Campus_Accommodation", "Exchange_Students_Acceptance",
		"Student_to_Faculty_Ratio", "Employment_Rate_After_Graduation",
		"International_Student_Population",
	}
	for _, h := range headers {
		if _, ok := lookupField(h); !ok {
			t.Errorf("header %q not mapped", h)
		}
	}

	if _, ok := lookupField("Campus Mascot"); ok {
		t.Error("unknown header should not map")
	}
}

func TestNewRowMapper(t *testing.T) {
	t.Parallel()

	m, err := newRowMapper([]string{"University Name", "Rankings", "Mascot", ""})
	if err != nil {
		t.Fatalf("newRowMapper() error = %v", err)
	}
	if len(m.unknown) != 1 || m.unknown[0] != "Mascot" {
		t.Errorf("unknown = %v, want [Mascot]", m.unknown)
	}

	c, blank := m.mapRow([]string{" Durham University ", "5", "Cuddly", "extra", "cells"})
	if blank {
		t.Error("row reported blank")
	}
	if c.Name != "Durham University" || c.Ranking != "5" {
		t.Errorf("mapRow() = %+v", c)
	}

	// Short rows leave trailing fields empty.
	c, _ = m.mapRow([]string{"Keele University"})
	if c.Name != "Keele University" || c.Ranking != "" {
		t.Errorf("short row = %+v", c)
	}

	if _, blank := m.mapRow([]string{"", "  ", ""}); !blank {
		t.Error("empty row should be blank")
	}

	if _, err := newRowMapper([]string{"Location", "Rankings"}); !errors.Is(err, ErrMissingNameColumn) {
		t.Errorf("missing name error = %v", err)
	}
}

func TestDeriveID(t *testing.T) {
	t.Parallel()

	a := DeriveID("University of York")
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("DeriveID() = %q is not a UUID", a)
	}
	if b := DeriveID("  university of   YORK "); b != a {
		t.Errorf("case and spacing changed the id: %q vs %q", a, b)
	}
	if c := DeriveID("University of Yorkshire"); c == a {
		t.Error("different names produced the same id")
	}
	if v := uuid.MustParse(a).Version(); v != 5 {
		t.Errorf("version = %d, want 5", v)
	}
}
