package database

import (
	"fmt"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/logger"
	"github.com/projectblurimedia/Veggie-Tracker/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate creates or updates the tables of every model
func Migrate(db *gorm.DB) error {
	log := logger.WithComponent("database")

	// gen_random_uuid() is built in from Postgres 13; older servers need pgcrypto.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Warn().Err(err).Msg("could not enable pgcrypto")
	}

	err := db.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
		&model.Expense{},
		&model.ExpenseItem{},
		&model.Item{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	log.Info().Msg("database schema is up to date")
	return nil
}
