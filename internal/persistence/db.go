package persistence

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"groupme/internal/config"
	"groupme/pkg/retry"
)

var ErrNoDatabaseURL = errors.New("no database url provided")

type DB struct {
	Logger *slog.Logger
	Config *config.Config

	db *gorm.DB
}

// Open connects through an arbitrary dialector. Used directly by tests, Init uses it for postgres.
func Open(dialector gorm.Dialector) (*DB, error) {
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return &DB{db: gormDB}, nil
}

func (db *DB) Init(ctx context.Context) error {
	db.Logger = db.Logger.With("component", "persistence.DB")

	if db.Config.DatabaseURL == "" {
		return ErrNoDatabaseURL
	}

	return retry.WrapWithRetry(ctx, func() error {
		opened, err := Open(postgres.Open(db.Config.DatabaseURL))
		if err != nil {
			db.Logger.Warn("database is not reachable yet", "error", err)
			return err
		}
		db.db = opened.db
		return nil
	}, retry.Attempts(5), 500*time.Millisecond)()
}

func (db *DB) HealthCheck(ctx context.Context) error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *DB) Shutdown(_ context.Context) error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return nil
	}
	return sqlDB.Close()
}

func (db *DB) Model(a any) *gorm.DB {
	return db.db.Model(a)
}

func (db *DB) WithContext(ctx context.Context) *gorm.DB {
	return db.db.WithContext(ctx)
}

func (db *DB) DB() (*sql.DB, error) {
	return db.db.DB()
}

// AutoMigrate creates the schema straight from the models. Production schemas go through Migrator.
func (db *DB) AutoMigrate(models ...any) error {
	return db.db.AutoMigrate(models...)
}

// EstimatedCount reads the planner's row estimate for a postgres table.
func (db *DB) EstimatedCount(ctx context.Context, tableName string) (int64, error) {
	var count int64
	return count, db.db.WithContext(ctx).Raw(
		`SELECT reltuples::bigint AS count
				FROM pg_class
				WHERE relname = ?`, tableName,
	).Scan(&count).Error
}
