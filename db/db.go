// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"
	modernc "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

//go:embed migrations
var migrations embed.FS

// sqlitePragmas are appended to every SQLite DSN. _time_format=sqlite makes
// time.Time values round-trip through DATE() and ORDER BY.
var sqlitePragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_time_format=sqlite",
}

// Open connects to the database for the given dialect and verifies the
// connection.
func Open(dialect, url string) (*sql.DB, error) {
	var driver, dsn string
	switch dialect {
	case DialectPostgres:
		driver, dsn = "postgres", url
	case DialectSQLite:
		driver, dsn = "sqlite", sqliteDSN(url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func sqliteDSN(url string) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + strings.Join(sqlitePragmas, "&")
}

// Migrate applies all pending migrations for the dialect.
// Safe to call multiple times.
func Migrate(conn *sql.DB, dialect string) error {
	src, err := iofs.New(migrations, "migrations/"+dialect)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	var target database.Driver
	switch dialect {
	case DialectPostgres:
		target, err = postgres.WithInstance(conn, &postgres.Config{})
	case DialectSQLite:
		target, err = sqlite.WithInstance(conn, &sqlite.Config{})
	default:
		return fmt.Errorf("unsupported database type %q", dialect)
	}
	if err != nil {
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}

	// m.Close is not called: it would close conn, which the caller owns.
	m, err := migrate.NewWithInstance("iofs", src, dialect, target)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *modernc.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
