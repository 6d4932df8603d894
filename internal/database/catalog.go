// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/unifinder/internal/logging"
	"github.com/tomtom215/unifinder/internal/metrics"
	"github.com/tomtom215/unifinder/internal/recommend"
)

const universityTable = "universities"

// universityColumns is the column order shared by every read and insert.
const universityColumns = `id, name, location, ug_tuition_fee, masters_tuition_fee,
	scholarship_availability, on_campus_accommodation, exchange_students_acceptance,
	research_opportunities, ranking, employment_rate, student_faculty_ratio,
	international_student_population, clubs_societies, educational_domains,
	international_support`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUniversity(row rowScanner) (recommend.Candidate, error) {
	var c recommend.Candidate
	err := row.Scan(
		&c.ID, &c.Name, &c.Location, &c.UGTuition, &c.MastersTuition,
		&c.ScholarshipAvailability, &c.OnCampusAccommodation, &c.ExchangeAcceptance,
		&c.ResearchOpportunities, &c.Ranking, &c.EmploymentRate, &c.StudentFacultyRatio,
		&c.InternationalStudentPopulation, &c.ClubsSocieties, &c.EducationalDomains,
		&c.InternationalSupport,
	)
	return c, err
}

// universityArgs returns c's fields in universityColumns order.
//
//nolint:gocritic // hugeParam: Candidate is passed by value throughout the engine
func universityArgs(c recommend.Candidate) []any {
	return []any{
		c.ID, c.Name, c.Location, c.UGTuition, c.MastersTuition,
		c.ScholarshipAvailability, c.OnCampusAccommodation, c.ExchangeAcceptance,
		c.ResearchOpportunities, c.Ranking, c.EmploymentRate, c.StudentFacultyRatio,
		c.InternationalStudentPopulation, c.ClubsSocieties, c.EducationalDomains,
		c.InternationalSupport,
	}
}

// ListUniversities returns the whole catalog in catalog order.
func (db *DB) ListUniversities(ctx context.Context) (result []recommend.Candidate, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("SELECT", universityTable, time.Since(start), err) }()

	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+universityColumns+" FROM universities ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query universities: %w", err)
	}
	defer closeQuietly(rows)

	result = make([]recommend.Candidate, 0, 128)
	for rows.Next() {
		c, scanErr := scanUniversity(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan university: %w", scanErr)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating universities: %w", err)
	}
	return result, nil
}

// GetUniversity returns one university by id, or ErrNotFound.
func (db *DB) GetUniversity(ctx context.Context, id string) (recommend.Candidate, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+universityColumns+" FROM universities WHERE id = ?", id)
	c, err := scanUniversity(row)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("SELECT", universityTable, time.Since(start), nil)
		return recommend.Candidate{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	metrics.RecordDBQuery("SELECT", universityTable, time.Since(start), err)
	if err != nil {
		return recommend.Candidate{}, fmt.Errorf("failed to get university: %w", err)
	}
	return c, nil
}

// CountUniversities returns the catalog size.
func (db *DB) CountUniversities(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM universities").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count universities: %w", err)
	}
	return n, nil
}

// validateBatch rejects records without id or name and repeated ids.
func validateBatch(universities []recommend.Candidate) error {
	seen := make(map[string]struct{}, len(universities))
	for i := range universities {
		u := &universities[i]
		if strings.TrimSpace(u.ID) == "" || strings.TrimSpace(u.Name) == "" {
			return fmt.Errorf("%w: row %d", ErrInvalidUniversity, i+1)
		}
		if _, dup := seen[u.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, u.ID)
		}
		seen[u.ID] = struct{}{}
	}
	return nil
}

// ReplaceUniversities atomically replaces the catalog with universities,
// keeping their order. Readers see either the old or the new catalog.
func (db *DB) ReplaceUniversities(ctx context.Context, universities []recommend.Candidate) (inserted int, err error) {
	if err := validateBatch(universities); err != nil {
		return 0, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("REPLACE", universityTable, time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM universities"); err != nil {
		return 0, fmt.Errorf("failed to clear universities: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO universities (seq, "+universityColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer closeQuietly(stmt)

	for i := range universities {
		args := append([]any{int64(i + 1)}, universityArgs(universities[i])...)
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to insert university %s: %w", universities[i].ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(universities), nil
}

// UpsertUniversity inserts u at the end of the catalog, or updates it in
// place when its id exists. It reports whether a new record was created.
//
//nolint:gocritic // hugeParam: Candidate is passed by value throughout the engine
func (db *DB) UpsertUniversity(ctx context.Context, u recommend.Candidate) (created bool, err error) {
	if err := validateBatch([]recommend.Candidate{u}); err != nil {
		return false, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("UPSERT", universityTable, time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var seq int64
	err = tx.QueryRowContext(ctx, "SELECT seq FROM universities WHERE id = ?", u.ID).Scan(&seq)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err = tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) + 1 FROM universities").Scan(&seq); err != nil {
			return false, fmt.Errorf("failed to allocate sequence: %w", err)
		}
		args := append([]any{seq}, universityArgs(u)...)
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO universities (seq, "+universityColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			args...); err != nil {
			return false, fmt.Errorf("failed to insert university: %w", err)
		}
		created = true
	case err != nil:
		return false, fmt.Errorf("failed to look up university: %w", err)
	default:
		args := append(universityArgs(u)[1:], u.ID)
		if _, err = tx.ExecContext(ctx, `UPDATE universities SET
			name = ?, location = ?, ug_tuition_fee = ?, masters_tuition_fee = ?,
			scholarship_availability = ?, on_campus_accommodation = ?, exchange_students_acceptance = ?,
			research_opportunities = ?, ranking = ?, employment_rate = ?, student_faculty_ratio = ?,
			international_student_population = ?, clubs_societies = ?, educational_domains = ?,
			international_support = ?, updated_at = current_timestamp
			WHERE id = ?`, args...); err != nil {
			return false, fmt.Errorf("failed to update university: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}
