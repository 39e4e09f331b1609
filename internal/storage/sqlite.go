// This file contains the embedded SQLite archive used by the ingest
// daemon when SQLITE_PATH is set, for single-node deployments where no
// server databases are configured.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"noakweather/internal/wx"
)

// SQLiteDB wraps an embedded SQLite database holding the observation
// archive.
type SQLiteDB struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS observations (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	station      TEXT NOT NULL,
	observed_at  TIMESTAMP NOT NULL,
	report_type  TEXT NOT NULL,
	source_type  TEXT NOT NULL,
	raw_text     TEXT NOT NULL,
	parsed_json  TEXT NOT NULL,
	recorded_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_observations_station
	ON observations(station, observed_at);`

// OpenSQLite opens (or creates) a SQLite archive. An empty path or
// ":memory:" yields an in-memory database.
func OpenSQLite(path string) (*SQLiteDB, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (d *SQLiteDB) Close() error {
	return d.db.Close()
}

// SaveEnvelope appends one envelope to the archive.
func (d *SQLiteDB) SaveEnvelope(ctx context.Context, env wx.Envelope) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO observations
		(station, observed_at, report_type, source_type, raw_text, parsed_json)
		VALUES (?, ?, ?, ?, ?, ?)`,
		env.Station, env.ObservedAt, env.ReportType, env.SourceType,
		env.RawText, string(env.Parsed))
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

// History returns the most recent envelopes for a station, newest
// first.
func (d *SQLiteDB) History(ctx context.Context, station string, limit int) ([]wx.Envelope, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := d.db.QueryContext(ctx,
		`SELECT station, observed_at, report_type, source_type, raw_text, parsed_json
		FROM observations
		WHERE station = ?
		ORDER BY observed_at DESC
		LIMIT ?`,
		station, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []wx.Envelope
	for rows.Next() {
		var env wx.Envelope
		var parsed string
		if err := rows.Scan(&env.Station, &env.ObservedAt, &env.ReportType,
			&env.SourceType, &env.RawText, &parsed); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		env.Parsed = []byte(parsed)
		out = append(out, env)
	}
	return out, rows.Err()
}
