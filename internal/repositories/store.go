package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campusconnect/internal/shared"
)

// StoreOpts configures a [Store]. Zero values fall back to a discarding logger and [time.Now].
type StoreOpts struct {
	Logger *log.Logger
	Clock  func() time.Time
}

// Store groups the four collections behind one database handle.
//
// Lock order when an operation spans collections is applications, then jobs.
type Store struct {
	Users        *UserRepository
	Jobs         *JobRepository
	Applications *ApplicationRepository
	Messages     *MessageRepository

	db *sql.DB
}

// NewStore wires the repositories over an already migrated database.
func NewStore(db *sql.DB, opts StoreOpts) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NopLogger()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	users := NewUserRepository(db, logger, now)
	jobs := NewJobRepository(db, users, logger, now)
	return &Store{
		Users:        users,
		Jobs:         jobs,
		Applications: NewApplicationRepository(db, jobs, users, logger, now),
		Messages:     NewMessageRepository(db, users, logger, now),
		db:           db,
	}
}

// OpenStore opens the configured database, applies pending migrations and returns the wired store.
func OpenStore(cfg shared.DatabaseConfig, opts StoreOpts) (*Store, error) {
	db, err := shared.NewDatabase(cfg.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, cfg)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return NewStore(db, opts), nil
}

// DB exposes the underlying handle for maintenance commands.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error {
	return s.db.Close()
}
