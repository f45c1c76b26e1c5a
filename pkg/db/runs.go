package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/linkscout/models"
)

// Run is a completed crawl stored in the database.
type Run struct {
	RunID       int64
	CreatedAt   time.Time
	Source      string
	DomainCount int
	RecordCount int
	FailedCount int
}

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// SaveRun stores a finished crawl and its records in one transaction.
// source is a free-form label, usually the input file path.
func (db *DB) SaveRun(source string, domainCount int, records []models.LinkRecord) (int64, error) {
	failed := 0
	for _, r := range records {
		if r.Failed() {
			failed++
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	result, err := tx.Exec(`
		INSERT INTO runs (source, domain_count, record_count, failed_count)
		VALUES (?, ?, ?, ?)
	`, source, domainCount, len(records), failed)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO link_records (run_id, position, input_url, extracted_url, category, title, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var extracted sql.NullString
		if r.ExtractedURL != nil {
			extracted = sql.NullString{String: *r.ExtractedURL, Valid: true}
		}
		if _, err := stmt.Exec(runID, i, r.InputURL, extracted, r.Category, r.Title, r.Metadata); err != nil {
			return 0, fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs first. limit <= 0 means no limit.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at, COALESCE(source, ''), domain_count, record_count, failed_count
		FROM runs
		ORDER BY run_id DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.Source, &r.DomainCount, &r.RecordCount, &r.FailedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns a single run by ID.
func (db *DB) GetRun(runID int64) (*Run, error) {
	var r Run
	err := db.QueryRow(`
		SELECT run_id, created_at, COALESCE(source, ''), domain_count, record_count, failed_count
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.CreatedAt, &r.Source, &r.DomainCount, &r.RecordCount, &r.FailedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// GetRunRecords returns a run's records in their original order.
func (db *DB) GetRunRecords(runID int64) ([]models.LinkRecord, error) {
	rows, err := db.Query(`
		SELECT input_url, extracted_url, category, title, metadata
		FROM link_records
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.LinkRecord
	for rows.Next() {
		var r models.LinkRecord
		var extracted sql.NullString
		if err := rows.Scan(&r.InputURL, &extracted, &r.Category, &r.Title, &r.Metadata); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if extracted.Valid {
			s := extracted.String
			r.ExtractedURL = &s
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetLatestRunID returns the newest run's ID.
func (db *DB) GetLatestRunID() (int64, error) {
	runs, err := db.ListRuns(1)
	if err != nil {
		return 0, err
	}
	if len(runs) == 0 {
		return 0, ErrRunNotFound
	}
	return runs[0].RunID, nil
}
