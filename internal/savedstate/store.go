package savedstate

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is the save/restore contract the host shell provides to the UI.
type Store interface {
	// Load returns the last saved bundle. An empty store yields an empty bundle.
	Load(ctx context.Context) (Bundle, error)
	// Save replaces the stored bundle with b.
	Save(ctx context.Context, b Bundle) error
	// Clear removes every saved slot.
	Clear(ctx context.Context) error
	// Close releases underlying resources.
	Close() error
}

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
)

// Open creates a store for the named driver at path. An empty path or
// ":memory:" yields an in-memory database.
func Open(ctx context.Context, driver, path string) (*SQLStore, error) {
	switch strings.ToLower(driver) {
	case DriverSQLite, "":
		return OpenSQLite(ctx, path)
	case DriverDuckDB:
		return OpenDuckDB(ctx, path)
	default:
		return nil, fmt.Errorf("unknown state driver %q", driver)
	}
}

// =============================================================================
// SQL IMPLEMENTATION
// =============================================================================

const schemaSQL = `CREATE TABLE IF NOT EXISTS saved_state (
	slot  VARCHAR NOT NULL,
	value BOOLEAN NOT NULL
)`

// SQLStore keeps one row per slot in a saved_state table.
type SQLStore struct {
	db     *sql.DB
	driver string
	path   string
}

func newSQLStore(ctx context.Context, db *sql.DB, driver, path string) (*SQLStore, error) {
	// Embedded engines; a single connection also keeps :memory: databases alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	s := &SQLStore{db: db, driver: driver, path: path}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the saved_state table if needed.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Driver reports which database engine backs the store.
func (s *SQLStore) Driver() string { return s.driver }

// Path reports the database location.
func (s *SQLStore) Path() string { return s.path }

// Load implements Store.
func (s *SQLStore) Load(ctx context.Context) (Bundle, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT slot, value FROM saved_state`)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved state: %w", err)
	}
	defer rows.Close()

	b := Bundle{}
	for rows.Next() {
		var (
			slot  string
			value bool
		)
		if err := rows.Scan(&slot, &value); err != nil {
			return nil, fmt.Errorf("failed to scan saved state: %w", err)
		}
		b[slot] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read saved state: %w", err)
	}
	return b, nil
}

// Save implements Store. The previous bundle is replaced atomically.
func (s *SQLStore) Save(ctx context.Context, b Bundle) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM saved_state`); err != nil {
		return fmt.Errorf("failed to clear saved state: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO saved_state (slot, value) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, slot := range b.Keys() {
		if _, err := stmt.ExecContext(ctx, slot, b[slot]); err != nil {
			return fmt.Errorf("failed to save slot %s: %w", slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit saved state: %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *SQLStore) Clear(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saved_state`); err != nil {
		return fmt.Errorf("failed to clear saved state: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
