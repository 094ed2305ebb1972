package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/existflow/catalyst/internal/database"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DB is the entity store: a connection pool plus the dialect its SQL speaks
type DB struct {
	*sql.DB
	Dialect database.Dialect
}

// DefaultSQLitePath is used when no database URL is configured
const DefaultSQLitePath = "catalyst.db"

// DetectDriver picks the driver for a database URL. postgres:// and
// postgresql:// URLs go to lib/pq; anything else is a sqlite file path.
func DetectDriver(url string) database.Dialect {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return database.Postgres
	}
	return database.SQLite
}

// Open opens the store and runs migrations. An empty driver is inferred from
// the URL.
func Open(driver, url string) (*DB, error) {
	dialect := database.Dialect(driver)
	if driver == "" {
		dialect = DetectDriver(url)
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	switch dialect {
	case database.SQLite:
		sqlDB, err = openSQLite(url)
	case database.Postgres:
		sqlDB, err = sql.Open("postgres", url)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{DB: sqlDB, Dialect: dialect}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	path = strings.TrimPrefix(path, "sqlite://")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Pragmas go in the DSN so every pooled connection gets them.
	return sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
}

// Queries returns queries that run on the shared pool
func (db *DB) Queries() *database.Queries {
	return database.New(db.DB, db.Dialect)
}

// Session is one dedicated store connection, held for the duration of a
// request and released by Close.
type Session struct {
	conn *sql.Conn
	*database.Queries
}

// Acquire takes a connection from the pool for exclusive use
func (db *DB) Acquire(ctx context.Context) (*Session, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &Session{conn: conn, Queries: database.New(conn, db.Dialect)}, nil
}

// Close returns the connection to the pool
func (s *Session) Close() error {
	return s.conn.Close()
}
