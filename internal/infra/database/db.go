package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 1 * time.Minute
)

// NewPostgresConnection creates and returns a new PostgreSQL database
// connection. It also pings the database to ensure connectivity.
func NewPostgresConnection(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// schema holds the DDL this service owns. The partial unique index on
// (case_id, assignee_id, role) for live rows is what makes assignment
// creation safe under concurrent callers: two racing inserts of the same
// tuple cannot both commit, and the loser re-reads the winner's row.
const schema = `
CREATE TABLE IF NOT EXISTS case_assignments (
	id            TEXT PRIMARY KEY,
	seq           BIGSERIAL,
	case_id       TEXT NOT NULL,
	assignee_id   TEXT NOT NULL,
	assignee_name TEXT NOT NULL,
	role          TEXT NOT NULL,
	created_on    TIMESTAMPTZ NOT NULL,
	unassigned    BOOLEAN NOT NULL DEFAULT FALSE,
	unassigned_on TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS case_assignments_live_key
	ON case_assignments (case_id, assignee_id, role) WHERE NOT unassigned;
CREATE INDEX IF NOT EXISTS case_assignments_case_idx
	ON case_assignments (case_id) WHERE NOT unassigned;

CREATE TABLE IF NOT EXISTS attorneys (
	id     TEXT PRIMARY KEY,
	name   TEXT NOT NULL,
	office TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS case_transactions (
	case_id   TEXT NOT NULL,
	seq       INT  NOT NULL,
	tx_code   TEXT NOT NULL,
	tx_record TEXT NOT NULL,
	PRIMARY KEY (case_id, seq)
);
`

// EnsureSchema applies the service's DDL on startup so a fresh database is
// usable without a separate migration step.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
