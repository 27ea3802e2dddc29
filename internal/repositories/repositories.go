// package repositories provides persistence layer implementations for all model types.
//
// Each repository owns one collection, serializes its own mutations behind a mutex and
// enforces that collection's invariants.
package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/mattn/go-sqlite3"
)

// queryer is satisfied by both [sql.DB] and [sql.Tx].
type queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// Sequence numbers break ties between records created within the same clock tick, so listing order
// always follows insertion order. They are never exposed in records.
func NextSequence(q queryer, table string) (int, error) {
	sequenceTable := table + "_sequence"
	if _, err := q.Exec(fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable)); err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	if err := q.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}
	return sequence, nil
}

// collection holds what every repository needs: the database, a writer lock, a logger and a clock.
type collection struct {
	mu     sync.Mutex
	db     *sql.DB
	table  string
	logger *log.Logger
	now    func() time.Time
}

func newCollection(db *sql.DB, table string, logger *log.Logger, now func() time.Time) collection {
	return collection{db: db, table: table, logger: logger.With("collection", table), now: now}
}

// timestamp returns the current time in UTC so stored values sort lexically.
func (c *collection) timestamp() time.Time {
	return c.now().UTC()
}

// insert allocates a sequence number and runs write in one transaction.
func (c *collection) insert(write func(tx *sql.Tx, sequence int) error) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := NextSequence(tx, c.table)
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if err := write(tx, sequence); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s insert: %w", c.table, err)
	}
	return nil
}

// exists reports whether a row with id is present in the collection's table.
func (c *collection) exists(id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	var found bool
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)", c.table)
	if err := c.db.QueryRow(query, id).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", c.table, err)
	}
	return found, nil
}

func (c *collection) logCreated(m models.Model) {
	c.logger.Info("record created", "id", m.Key(), "created_at", m.Created())
}

// queryAll runs query and scans every row with scan, closing the rows before returning.
func queryAll[T any](db *sql.DB, query string, args []any, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

func decodeList(raw string) ([]string, error) {
	items := []string{}
	if raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	return items, nil
}
