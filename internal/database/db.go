// Package database provides SQLite-backed state for tldclaim.
//
// The database stores:
//   - Registry bindings (node -> owner)
//   - Oracle evidence (record type + wire name -> proof and validity window)
//   - A journal of registration attempts
//
// DB implements both registry.Registry and oracle.Oracle so a single file
// carries everything the authority needs across restarts. The schema is
// managed by golang-migrate from embedded SQL files.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps a SQLite database connection with thread-safe operations.
type DB struct {
	conn *sql.DB
	mu   sync.RWMutex // Serializes read-check-write sequences
}

// Open opens or creates a SQLite database at the given path and brings its
// schema up to date.
func Open(path string) (*DB, error) {
	// Use WAL mode for better concurrency
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	if err := migrateUp(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Health checks database connectivity.
func (db *DB) Health() error {
	return db.conn.Ping()
}

// Counts summarizes table sizes for the stats endpoint.
type Counts struct {
	Nodes         int64 `json:"nodes"`
	OracleRecords int64 `json:"oracle_records"`
	Registrations int64 `json:"registrations"`
}

// Counts returns the number of rows in each table.
func (db *DB) Counts(ctx context.Context) (Counts, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var c Counts
	err := db.conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM nodes),
			(SELECT COUNT(*) FROM oracle_records),
			(SELECT COUNT(*) FROM registrations)
	`).Scan(&c.Nodes, &c.OracleRecords, &c.Registrations)
	if err != nil {
		return Counts{}, fmt.Errorf("failed to count rows: %w", err)
	}
	return c, nil
}
