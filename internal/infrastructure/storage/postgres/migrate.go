package postgres

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationResult reports the schema version after Migrate.
type MigrationResult struct {
	Version uint
	Changed bool
}

// Migrate applies every embedded migration that has not run yet.
// A dirty version left by an interrupted run is rolled back to the previous
// version so Up applies it again. Migrations must therefore be re-runnable.
func Migrate(dsn string) (MigrationResult, error) {
	m, err := newMigrator(dsn)
	if err != nil {
		return MigrationResult{}, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return MigrationResult{}, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		target := retryVersion(version)
		if err := m.Force(target); err != nil {
			return MigrationResult{}, fmt.Errorf("force version %d: %w", target, err)
		}
	}

	changed := true
	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return MigrationResult{}, fmt.Errorf("apply migrations: %w", err)
		}
		changed = false
	}

	version, _, err = m.Version()
	if err != nil {
		return MigrationResult{}, fmt.Errorf("read migration version: %w", err)
	}
	return MigrationResult{Version: version, Changed: changed}, nil
}

// retryVersion is the version to force for a dirty one: the version before it,
// or -1 (no migrations applied) when the first migration was interrupted.
// Assumes consecutive version numbers, as the embedded files use.
func retryVersion(dirty uint) int {
	if dirty <= 1 {
		return -1
	}
	return int(dirty) - 1
}

// MigrateDown rolls back every embedded migration.
func MigrateDown(dsn string) error {
	m, err := newMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("revert migrations: %w", err)
	}
	return nil
}

func newMigrator(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, MigrationURL(dsn))
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// MigrationURL rewrites a postgres:// DSN to the pgx5:// scheme the
// golang-migrate pgx driver registers.
func MigrationURL(dsn string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}
