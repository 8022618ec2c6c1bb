// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the SQL schema of the feedback site and applies
// it with goose. Each supported database dialect has its own directory of
// migrations describing the same two tables: users and feedback.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Dialect names a database flavour with its own migration directory.
type Dialect string

const (
	// Postgres is the production dialect served by the pgx driver.
	Postgres Dialect = "postgres"
	// SQLite is used for local development and tests.
	SQLite Dialect = "sqlite3"
)

var (
	errNilDB              = errors.New("db is nil")
	errUnsupportedDialect = errors.New("unsupported migration dialect")
)

// Dir returns the embedded directory holding migrations for d.
func (d Dialect) Dir() (string, error) {
	switch d {
	case Postgres:
		return "postgres", nil
	case SQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedDialect, string(d))
	}
}

// Migrate applies every pending migration of dialect to db.
func Migrate(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	dir, err := dialect.Dir()
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
