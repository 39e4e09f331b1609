package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"noakweather/internal/wx"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ClickHouseDB wraps a ClickHouse connection for the observation
// archive.
type ClickHouseDB struct {
	conn driver.Conn
}

// Conn returns the underlying ClickHouse connection for direct queries.
func (d *ClickHouseDB) Conn() driver.Conn {
	return d.conn
}

// OpenClickHouse opens a connection to ClickHouse.
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *ClickHouseDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the ClickHouse tables.
func (d *ClickHouseDB) CreateSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS observations (
		station       LowCardinality(String),
		observed_at   DateTime64(3),
		report_type   LowCardinality(String),
		source_type   LowCardinality(String),
		raw_text      String,
		parsed_json   String,
		recorded_at   DateTime64(3) DEFAULT now64(3)
	)
	ENGINE = MergeTree()
	PARTITION BY toYYYYMM(observed_at)
	ORDER BY (station, source_type, observed_at)
	SETTINGS index_granularity = 8192`

	if err := d.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create observations table: %w", err)
	}
	return nil
}

// InsertEnvelope appends one envelope to the observation archive.
func (d *ClickHouseDB) InsertEnvelope(ctx context.Context, env wx.Envelope) error {
	err := d.conn.Exec(ctx,
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

// History returns the most recent archived envelopes for a station,
// newest first.
func (d *ClickHouseDB) History(ctx context.Context, station string, limit int) ([]wx.Envelope, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := d.conn.Query(ctx,
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
