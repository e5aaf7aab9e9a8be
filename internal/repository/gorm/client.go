package gorm

import (
	"github.com/currybox/currybox/internal/config"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewClient opens the Postgres connection. Schema migration is a separate
// step, see cmd/migrate; local mode runs it automatically at startup.
func NewClient(cfg *config.Configuration, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to the database").
			Mark(ierr.ErrDatabase)
	}

	log.Infow("database connected", "host", cfg.Postgres.Host, "db", cfg.Postgres.DBName)
	return db, nil
}

// Migrate brings the schema up to date. Session records, saved carts and
// pending orders are the only durable state the core owns. Safe to run
// repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&SessionStateRecord{},
		&SavedCartRecord{},
		&PendingOrderRecord{},
	); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to migrate the database schema").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
