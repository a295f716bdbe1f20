package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}

	// Every pooled connection to ":memory:" would get its own empty database.
	if path == memoryPath {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// NewFromConn wraps an already opened connection. No migrations are run.
func NewFromConn(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// dsn makes concurrent writers wait on SQLite's lock instead of failing
// immediately with SQLITE_BUSY.
func dsn(path string) string {
	if path == memoryPath || strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)"
}
