package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite" // registers "sqlite" (pure Go)
)

// Supported driver names.
const (
	DriverModernc = "sqlite"
	DriverCgo     = "sqlite3"
)

// DB wraps a SQLite database connection holding the persistent key-value store.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates a SQLite database at the given path using the pure Go driver.
func Open(ctx context.Context, path string) (*DB, error) {
	return OpenDriver(ctx, DriverModernc, path)
}

// OpenDriver opens or creates a SQLite database with the named driver.
func OpenDriver(ctx context.Context, driver, path string) (*DB, error) {
	switch driver {
	case "":
		driver = DriverModernc
	case DriverModernc, DriverCgo:
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	conn, err := otelsql.Open(driver, path,
		otelsql.WithAttributes(attribute.String("db.system", "sqlite")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; serialising through one connection keeps
	// read-modify-write sequences from interleaving.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// migrate runs database migrations up to the current schema version.
func (db *DB) migrate(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var version int
	err := db.conn.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	if version < 1 {
		if err := db.migrateV1(ctx); err != nil {
			return err
		}
	}
	if version < 2 {
		if err := db.migrateV2(ctx); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the namespaced key-value table.
func (db *DB) migrateV1(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY(namespace, key)
		);

		INSERT INTO schema_version (version) VALUES (1);
	`

	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute v1 migration: %w", err)
	}

	return nil
}

// migrateV2 records when each entry was last written.
func (db *DB) migrateV2(ctx context.Context) error {
	schema := `
		ALTER TABLE kv ADD COLUMN updated_at DATETIME;

		CREATE INDEX IF NOT EXISTS idx_kv_updated_at ON kv(namespace, updated_at);

		INSERT INTO schema_version (version) VALUES (2);
	`

	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute v2 migration: %w", err)
	}

	return nil
}
