package savedstate

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb" // Register DuckDB driver
)

// DuckDBConfig holds engine options applied after the connection opens.
type DuckDBConfig struct {
	Threads       int // Number of threads for DuckDB (0 = default)
	MemoryLimitMB int // Memory limit in MB (0 = default)
}

// DuckDBOption configures a DuckDB-backed store.
type DuckDBOption func(*DuckDBConfig)

// WithThreads sets the number of DuckDB threads.
func WithThreads(n int) DuckDBOption {
	return func(c *DuckDBConfig) {
		c.Threads = n
	}
}

// WithMemoryLimit sets the DuckDB memory limit in MB.
func WithMemoryLimit(mb int) DuckDBOption {
	return func(c *DuckDBConfig) {
		c.MemoryLimitMB = mb
	}
}

// OpenDuckDB opens a DuckDB-backed store.
// DSN examples:
//   - "" or ":memory:" for an in-memory database
//   - "/path/to/state.duckdb" for a file-based database
func OpenDuckDB(ctx context.Context, path string, opts ...DuckDBOption) (*SQLStore, error) {
	// A saved-state table of a few hundred rows needs nothing more.
	cfg := DuckDBConfig{Threads: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	dsn, err := prepareDSN(path)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// go-duckdb opens an in-memory database for an empty DSN.
		dsn = ""
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	if err := configureDuckDB(ctx, db, cfg); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure duckdb: %w", err)
	}

	return newSQLStore(ctx, db, DriverDuckDB, path)
}

func configureDuckDB(ctx context.Context, db *sql.DB, cfg DuckDBConfig) error {
	if cfg.Threads > 0 {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA threads=%d", cfg.Threads)); err != nil {
			return fmt.Errorf("setting threads: %w", err)
		}
	}
	if cfg.MemoryLimitMB > 0 {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA memory_limit='%dMB'", cfg.MemoryLimitMB)); err != nil {
			return fmt.Errorf("setting memory limit: %w", err)
		}
	}
	return nil
}
