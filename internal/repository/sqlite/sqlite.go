// Package sqlite implements the storage gateway over an embedded SQLite
// database — an alternative to the default JSON-file backend for data sets
// that have outgrown whole-file JSON parsing.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// SQLite — works everywhere Go works.
//
// The access pattern stays the one the services expect: read the whole
// collection, replace the whole collection. Each row keeps the record's full
// JSON document plus the columns the replace path needs, and a position
// column preserves the collection's most-recent-first ordering.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import: the driver registers itself with database/sql under the
	// name "sqlite".
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the storage-gateway methods.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Ping forces the first real connection so a bad path or permissions
	// problem surfaces here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a replace transaction is writing.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}
	return db, nil
}

// Close closes the connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			position INTEGER NOT NULL,
			id       TEXT PRIMARY KEY,
			nic      TEXT NOT NULL,
			doc      TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_records_position ON records(position);
	`)
	if err != nil {
		return fmt.Errorf("creating records table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS communities (
			position INTEGER NOT NULL,
			id       TEXT PRIMARY KEY,
			doc      TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_communities_position ON communities(position);
	`)
	if err != nil {
		return fmt.Errorf("creating communities table: %w", err)
	}

	return nil
}
