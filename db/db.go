// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types; these are also the registered driver names.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

//go:embed migrations
var migrationsFS embed.FS

func init() {
	sqlx.BindDriver(TypeSQLite, sqlx.QUESTION)
}

// Open connects to the database and verifies the connection.
// SQLite connections always enforce foreign keys.
func Open(dbType, url string) (*sqlx.DB, error) {
	dsn := url
	switch dbType {
	case TypePostgres:
	case TypeSQLite:
		dsn = sqliteDSN(url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sqlx.Open(dbType, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite&_txlock=immediate"
}

// Migrate applies every pending migration for the connection's dialect.
// Safe to call multiple times.
func Migrate(conn *sqlx.DB) error {
	dialect := conn.DriverName()

	src, err := iofs.New(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	var driver database.Driver
	switch dialect {
	case TypePostgres:
		driver, err = postgres.WithInstance(conn.DB, &postgres.Config{})
	case TypeSQLite:
		driver, err = sqlite.WithInstance(conn.DB, &sqlite.Config{})
	default:
		return fmt.Errorf("unsupported database type %q", dialect)
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dialect, driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	upErr := m.Up()

	// The postgres driver pins a dedicated connection. The sqlite driver's
	// Close would close the shared pool, so it is left open.
	if dialect == TypePostgres {
		driver.Close()
	}

	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}

	return nil
}
