package infra

import (
	"fmt"

	"fernledger/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for the ledger schema. gen_random_uuid() needs PostgreSQL 13+.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates / updates the ledger tables. Shared with the
// integration test suite so tests run against the exact production schema.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Batch{},
		&model.ShipmentRecord{},
		&model.GrowthRecord{},
	)
}
