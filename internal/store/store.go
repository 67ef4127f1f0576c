package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Early layout (no audit_log table, no report indexes)
// 1 - Added audit_log and the report/statistics indexes
const currentSchemaVersion = 1

// Storage formats. The date string keys the per-day toggle; time_in
// and time_out carry the full stamp the report orders by.
const (
	dayFormat   = "2006-01-02"
	stampFormat = "2006-01-02 15:04:05"
)

// Store provides durable storage for attendance data.
// Uses SQLite with WAL mode; a single mutex serializes every public
// operation, so all methods are safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	path string

	clock Clock
	ids   IDGenerator
	log   *slog.Logger
}

// Options configures optional Store dependencies. The zero value
// selects production defaults.
type Options struct {
	// Clock supplies "today" and the check-in/check-out stamps.
	// If nil, defaults to the system wall clock.
	Clock Clock

	// IDs generates audit entry ids.
	// If nil, defaults to UUIDv7Generator.
	IDs IDGenerator

	// Logger receives failure diagnostics.
	// If nil, defaults to slog.Default().
	Logger *slog.Logger
}

// Open creates or opens the attendance database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	return OpenWith(path, Options{})
}

// OpenWith is Open with explicit dependencies, for callers that need a
// fixed clock or deterministic audit ids.
func OpenWith(path string, opts Options) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		db:    db,
		path:  path,
		clock: opts.Clock,
		ids:   opts.IDs,
		log:   opts.Logger,
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.ids == nil {
		s.ids = UUIDv7Generator{}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s, nil
}

// openDB runs the full open sequence: connect, verify, pragmas,
// schema, migrations. Restore reuses it after swapping the backing
// file.
func openDB(path string) (*sql.DB, error) {
	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool for SQLite
	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1) // Single writer to avoid SQLITE_BUSY errors
	db.SetMaxIdleConns(1) // Keep one connection ready

	// Apply required pragmas
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	// Apply schema migrations
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Reset deletes every student, course, and attendance row in one
// transaction. The audit history survives and gains a reset entry.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "reset"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.sqlFail(op, err)
	}
	defer tx.Rollback() // No-op if committed

	for _, stmt := range []string{
		"DELETE FROM course_attendance",
		"DELETE FROM attendance",
		"DELETE FROM courses",
		"DELETE FROM students",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return s.sqlFail(op, err)
		}
	}

	if err := s.appendAudit(ctx, tx, "store.reset", "all entity data deleted"); err != nil {
		return s.sqlFail(op, err)
	}
	if err := tx.Commit(); err != nil {
		return s.sqlFail(op, err)
	}
	return nil
}

// applyPragmas sets required SQLite configuration.
//
// foreign_keys deliberately stays at its default (off). The references
// declared in the schema are advisory: enforcing them would break
// course deletion, which nulls attendance references, and would reject
// restored files holding orphaned course ids.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations stamps user_version based on the layout in schema.sql.
// Files from version 0 need no incremental steps: every statement in
// schema.sql is idempotent, so missing tables and indexes were created
// by applySchema. Files stamped newer than this build are rejected.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version > currentSchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	// Set version after all migrations
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}

// nullString stores empty strings as NULL, matching existing data
// files where optional fields are null rather than "".
func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
