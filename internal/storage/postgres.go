package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"noakweather/internal/wx"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string // disable, require, verify-ca, verify-full. Default: disable.
}

// PostgresDB wraps a PostgreSQL connection pool for per-station state.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresDB, error) {
	// URL-escape the password to handle special characters.
	escapedPassword := url.QueryEscape(cfg.Password)

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, escapedPassword, cfg.Host, cfg.Port, cfg.Database, sslMode)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the PostgreSQL connection pool.
func (d *PostgresDB) Close() {
	d.pool.Close()
}

// CreateSchema creates the PostgreSQL tables.
func (d *PostgresDB) CreateSchema(ctx context.Context) error {
	schema := `
	-- Latest decoded report per station and source type.
	CREATE TABLE IF NOT EXISTS station_state (
		station       TEXT NOT NULL,
		source_type   TEXT NOT NULL,
		report_type   TEXT NOT NULL,
		observed_at   TIMESTAMPTZ NOT NULL,
		raw_text      TEXT NOT NULL,
		parsed        JSONB NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (station, source_type)
	);

	CREATE INDEX IF NOT EXISTS idx_station_state_observed ON station_state(observed_at);

	-- Running parse counters per source type.
	CREATE TABLE IF NOT EXISTS parse_stats (
		source_type   TEXT PRIMARY KEY,
		report_count  BIGINT NOT NULL DEFAULT 0,
		last_report   TIMESTAMPTZ
	);`

	if _, err := d.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create postgres schema: %w", err)
	}
	return nil
}

// UpsertLatest stores the envelope as the station's latest report when
// it is not older than the stored one, and bumps the parse counters.
func (d *PostgresDB) UpsertLatest(ctx context.Context, env wx.Envelope) error {
	_, err := d.pool.Exec(ctx,
		`INSERT INTO station_state (station, source_type, report_type, observed_at, raw_text, parsed)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (station, source_type) DO UPDATE SET
			report_type = EXCLUDED.report_type,
			observed_at = EXCLUDED.observed_at,
			raw_text    = EXCLUDED.raw_text,
			parsed      = EXCLUDED.parsed,
			updated_at  = NOW()
		WHERE station_state.observed_at <= EXCLUDED.observed_at`,
		env.Station, env.SourceType, env.ReportType, env.ObservedAt,
		env.RawText, string(env.Parsed))
	if err != nil {
		return fmt.Errorf("upsert station state: %w", err)
	}

	_, err = d.pool.Exec(ctx,
		`INSERT INTO parse_stats (source_type, report_count, last_report)
		VALUES ($1, 1, NOW())
		ON CONFLICT (source_type) DO UPDATE SET
			report_count = parse_stats.report_count + 1,
			last_report  = NOW()`,
		env.SourceType)
	if err != nil {
		return fmt.Errorf("bump parse stats: %w", err)
	}
	return nil
}

// Latest returns the newest stored envelope for a station and source
// type, or nil when the station is unknown.
func (d *PostgresDB) Latest(ctx context.Context, station, sourceType string) (*wx.Envelope, error) {
	var env wx.Envelope
	var parsed string
	err := d.pool.QueryRow(ctx,
		`SELECT station, source_type, report_type, observed_at, raw_text, parsed::TEXT
		FROM station_state
		WHERE station = $1 AND source_type = $2`,
		station, sourceType).
		Scan(&env.Station, &env.SourceType, &env.ReportType, &env.ObservedAt,
			&env.RawText, &parsed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query station state: %w", err)
	}
	env.Parsed = []byte(parsed)
	return &env, nil
}

// Stats returns the per-source parse counters.
func (d *PostgresDB) Stats(ctx context.Context) (map[string]int64, error) {
	rows, err := d.pool.Query(ctx, `SELECT source_type, report_count FROM parse_stats`)
	if err != nil {
		return nil, fmt.Errorf("query parse stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int64)
	for rows.Next() {
		var source string
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats[source] = count
	}
	return stats, rows.Err()
}
