package savedstate

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// OpenSQLite opens a SQLite-backed store. Use ":memory:" or an empty path
// for an in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	dsn, err := prepareDSN(path)
	if err != nil {
		return nil, err
	}
	if dsn != ":memory:" {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return newSQLStore(ctx, db, DriverSQLite, path)
}

// prepareDSN normalises path and creates its parent directory.
func prepareDSN(path string) (string, error) {
	if path == "" || path == ":memory:" {
		return ":memory:", nil
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	return path, nil
}
