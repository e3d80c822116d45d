package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // database/sql driver for golang-migrate
)

//go:embed migrations/*.sql
var schema embed.FS

const migrationsTable = "storefront_schema_migrations"

// MigrateDocuments brings the documents schema up to date and returns the
// resulting version. golang-migrate needs a database/sql handle, so it gets
// its own short-lived lib/pq connection instead of the pgx pool.
func MigrateDocuments(dsn string, logger *log.Logger) (uint, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return 0, fmt.Errorf("open migration connection: %w", err)
	}

	src, err := iofs.New(schema, "migrations")
	if err != nil {
		_ = conn.Close()
		return 0, fmt.Errorf("read embedded migrations: %w", err)
	}
	driver, err := postgres.WithInstance(conn, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		_ = conn.Close()
		return 0, fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = conn.Close()
		return 0, fmt.Errorf("migrator: %w", err)
	}
	defer m.Close()

	before, err := currentVersion(m)
	if err != nil {
		return 0, err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}
	after, err := currentVersion(m)
	if err != nil {
		return 0, err
	}

	if after == before {
		logger.Printf("documents schema is current (version %d)", after)
	} else {
		logger.Printf("documents schema migrated from version %d to %d", before, after)
	}
	return after, nil
}

// currentVersion treats a fresh database as version 0 and refuses a schema
// left dirty by a failed run.
func currentVersion(m *migrate.Migrate) (uint, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return v, fmt.Errorf("documents schema is dirty at version %d; fix it by hand before restarting", v)
	}
	return v, nil
}
