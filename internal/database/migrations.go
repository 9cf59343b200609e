package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/kimdaedan/exhibition-backend/internal/config"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

type Migrator struct {
	migrate *migrate.Migrate
	db      *sql.DB
}

// NewMigrator opens a dedicated connection for schema changes; release it
// with Close. postgres and pgx share one migration set.
func NewMigrator(cfg config.DatabaseConfig) (*Migrator, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	m, err := newMigrator(db, cfg.Driver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return m, nil
}

func newMigrator(db *sql.DB, driver string) (*Migrator, error) {
	var (
		dbDriver migratedb.Driver
		dir      string
		dbName   string
		err      error
	)

	switch driver {
	case "postgres", "pgx":
		dbDriver, err = postgres.WithInstance(db, &postgres.Config{})
		dir, dbName = "migrations/postgres", "postgres"
	case "sqlite":
		dbDriver, err = sqlite.WithInstance(db, &sqlite.Config{})
		dir, dbName = "migrations/sqlite", "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dbName, dbDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return &Migrator{migrate: m, db: db}, nil
}

func (m *Migrator) Up() error {
	if err := m.migrate.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (m *Migrator) Down() error {
	if err := m.migrate.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to rollback migrations: %w", err)
	}
	return nil
}

func (m *Migrator) Force(version int) error {
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force migration version to %d: %w", version, err)
	}
	return nil
}

func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (m *Migrator) Close() error {
	srcErr, dbErr := m.migrate.Close()
	// the sqlite driver closes db itself; closing twice is a no-op
	closeErr := m.db.Close()
	return errors.Join(srcErr, dbErr, closeErr)
}
