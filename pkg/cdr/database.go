package cdr

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DatabaseTracker records rotated CDR files in PostgreSQL so that
// downstream billing jobs can pick them up exactly once.
type DatabaseTracker struct {
	db *sql.DB
}

const trackerSchema = `
CREATE TABLE IF NOT EXISTS cdr_files (
	id          BIGSERIAL PRIMARY KEY,
	filename    TEXT NOT NULL UNIQUE,
	record_count BIGINT NOT NULL,
	file_size   BIGINT NOT NULL,
	start_time  TIMESTAMPTZ NOT NULL,
	end_time    TIMESTAMPTZ NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	processed   BOOLEAN NOT NULL DEFAULT false
)`

// NewDatabaseTracker connects to PostgreSQL and ensures the tracking
// table exists.
func NewDatabaseTracker(dsn string) (*DatabaseTracker, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(time.Hour)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(trackerSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cdr_files table: %w", err)
	}
	return &DatabaseTracker{db: db}, nil
}

// TrackFile implements Tracker.
func (t *DatabaseTracker) TrackFile(filename string, recordCount, fileSize int64, startTime, endTime time.Time) error {
	_, err := t.db.Exec(
		`INSERT INTO cdr_files (filename, record_count, file_size, start_time, end_time)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (filename) DO NOTHING`,
		filename, recordCount, fileSize, startTime, endTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cdr file record: %w", err)
	}
	return nil
}

// PendingFiles returns tracked files not yet marked processed.
func (t *DatabaseTracker) PendingFiles(limit int) ([]string, error) {
	rows, err := t.db.Query(
		`SELECT filename FROM cdr_files WHERE NOT processed ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var files []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		files = append(files, name)
	}
	return files, rows.Err()
}

// MarkProcessed flags a tracked file as consumed.
func (t *DatabaseTracker) MarkProcessed(filename string) error {
	_, err := t.db.Exec(`UPDATE cdr_files SET processed = true WHERE filename = $1`, filename)
	return err
}

// Close releases the database connection pool.
func (t *DatabaseTracker) Close() error {
	return t.db.Close()
}
