package persistence

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"groupme/internal/core"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsTable = "groupme_schema_migrations"

// Migrator applies the embedded SQL migrations to the configured database.
type Migrator struct {
	Logger *slog.Logger
	DB     core.DB

	migrator *migrate.Migrate
}

func (m *Migrator) Init(_ context.Context) error {
	m.Logger = m.Logger.With("component", "persistence.Migrator")

	db, err := m.DB.DB()
	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m.migrator, err = migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}
	m.migrator.Log = migrateLogger{m.Logger}

	return nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	return m.apply(ctx, "up", m.migrator.Up)
}

// Down rolls back the most recent migration only.
func (m *Migrator) Down(ctx context.Context) error {
	return m.apply(ctx, "down", func() error {
		return m.migrator.Steps(-1)
	})
}

func (m *Migrator) apply(ctx context.Context, direction string, step func() error) error {
	if err := m.Fix(ctx); err != nil {
		return err
	}

	from := m.version()

	// golang-migrate stops between files once GracefulStop is signalled.
	stop := context.AfterFunc(ctx, func() {
		m.migrator.GracefulStop <- true
	})
	defer stop()

	err := step()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		m.Logger.Info("Database schema is up to date", "version", from)
		return nil
	case err != nil:
		return fmt.Errorf("migrate %s from version %d: %w", direction, from, err)
	}

	m.Logger.Info("Database migrated", "direction", direction, "from", from, "to", m.version())
	return nil
}

// Fix forces a dirty schema back to its recorded version so the next migration can run.
func (m *Migrator) Fix(_ context.Context) error {
	version, dirty, err := m.migrator.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return err
	}
	if !dirty {
		return nil
	}

	m.Logger.Warn("Database is dirty, forcing the recorded version", "version", version)

	return m.migrator.Force(int(version)) // nolint:gosec
}

// version is 0 for an empty schema.
func (m *Migrator) version() uint {
	version, _, err := m.migrator.Version()
	if err != nil {
		return 0
	}
	return version
}

type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
