package shared

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryDatabase is the path that opens a private in-memory SQLite database.
const MemoryDatabase = ":memory:"

// NewDatabase opens a connection to a SQLite database at the specified path.
// The path can be ":memory:" for an in-memory database.
//
// Every connection to ":memory:" gets its own empty database, so the pool is pinned to a single
// connection in that case.
func NewDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == MemoryDatabase {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ConfigureDatabase sets connection pool settings for the database opened from cfg.
// Non-positive values leave the driver defaults in place. An in-memory database stays pinned to
// one connection whatever max_open_conns says.
func ConfigureDatabase(db *sql.DB, cfg DatabaseConfig) {
	maxOpenConns := cfg.MaxOpenConns
	if cfg.Path == MemoryDatabase {
		maxOpenConns = 1
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
}

func dsn(path string) string {
	if path == MemoryDatabase || strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000"
}
