// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package catalogimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"

	"github.com/tomtom215/unifinder/internal/recommend"
)

// Parse reads a catalog in the given format. Rows without a name and rows
// repeating an earlier id are dropped, missing ids are derived from the
// name, and file order is kept. The returned Result carries row counts only.
func Parse(r io.Reader, format Format) ([]recommend.Candidate, *Result, error) {
	res := &Result{Format: format}

	var (
		raw []recommend.Candidate
		err error
	)
	switch format {
	case FormatXLSX:
		raw, err = readXLSX(r, res)
	case FormatCSV:
		raw, err = readCSV(r, res)
	case FormatJSON:
		raw, err = readJSON(r, res)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		if !errors.Is(err, ErrMissingNameColumn) && !errors.Is(err, ErrEmptyCatalog) {
			err = fmt.Errorf("%w: %w", ErrMalformedCatalog, err)
		}
		return nil, res, err
	}

	universities := finalize(raw, res)
	if len(universities) == 0 {
		return nil, res, ErrEmptyCatalog
	}
	return universities, res, nil
}

// finalize assigns ids and drops unusable rows.
func finalize(raw []recommend.Candidate, res *Result) []recommend.Candidate {
	out := make([]recommend.Candidate, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i := range raw {
		c := raw[i]
		if c.Name == "" {
			res.Skipped++
			continue
		}
		if c.ID == "" {
			c.ID = DeriveID(c.Name)
		}
		if _, dup := seen[c.ID]; dup {
			res.Skipped++
			res.Duplicates++
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// mapTable maps a header row plus data rows. Leading blank rows before the
// header are ignored.
func mapTable(rows [][]string, res *Result) ([]recommend.Candidate, error) {
	for len(rows) > 0 && isBlank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmptyCatalog
	}

	m, err := newRowMapper(rows[0])
	if err != nil {
		return nil, err
	}
	res.UnknownColumns = m.unknown

	out := make([]recommend.Candidate, 0, len(rows)-1)
	for _, row := range rows[1:] {
		c, blank := m.mapRow(row)
		if blank {
			continue
		}
		res.Rows++
		out = append(out, c)
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// readXLSX reads the first worksheet of a workbook.
func readXLSX(r io.Reader, res *Result) ([]recommend.Candidate, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyCatalog
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return mapTable(rows, res)
}

func readCSV(r io.Reader, res *Result) ([]recommend.Candidate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return mapTable(rows, res)
}

// readJSON accepts an array of objects or an object with a "universities" array.
func readJSON(r io.Reader, res *Result) ([]recommend.Candidate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read json: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyCatalog
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}

	var records []any
	switch v := doc.(type) {
	case []any:
		records = v
	case map[string]any:
		list, ok := v["universities"].([]any)
		if !ok {
			return nil, fmt.Errorf("failed to decode json: expected an array or an object with a universities array")
		}
		records = list
	default:
		return nil, fmt.Errorf("failed to decode json: expected an array or an object with a universities array")
	}

	unknown := make(map[string]struct{})
	out := make([]recommend.Candidate, 0, len(records))
	for i, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("failed to decode json: element %d is not an object", i)
		}
		res.Rows++

		var c recommend.Candidate
		for key, val := range obj {
			ref, ok := lookupField(key)
			if !ok {
				unknown[key] = struct{}{}
				continue
			}
			*ref(&c) = strings.TrimSpace(jsonText(val))
		}
		out = append(out, c)
	}

	for key := range unknown {
		res.UnknownColumns = append(res.UnknownColumns, key)
	}
	sort.Strings(res.UnknownColumns)
	return out, nil
}

// jsonText renders a decoded JSON value as catalog text. Booleans become
// "Yes"/"No" to match the spreadsheet convention; lists are comma-joined.
func jsonText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(jsonText(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		// Extended JSON object ids: {"$oid": "..."}
		if oid, ok := t["$oid"].(string); ok {
			return oid
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}
