// Package postgres owns the PostgreSQL connection lifecycle of the service:
// building the DSN, opening the gorm handle, migrating the order and
// idempotency tables and answering health pings. The handle is created once
// in main and passed to the repositories; nothing here is a package global.
//
// Example:
//
//	db, err := postgres.Open(postgres.Settings{Host: "localhost", Port: "5432", ...})
//	if err != nil {
//	    return err
//	}
//	defer postgres.Close(db)
//
//	if err = postgres.Migrate(db); err != nil {
//	    return err
//	}
//	orders := orderrepo.NewGormOrderRepository(db)
package postgres

import (
	"context"
	"errors"
	"fmt"

	"orders/internal/adapters/out/postgres/idempotencyrepo"
	"orders/internal/adapters/out/postgres/orderrepo"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Settings are the connection parameters read from the environment.
type Settings struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders Settings in libpq keyword/value form.
func (s Settings) DSN() string {
	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, sslMode,
	)
}

// Open connects with gorm's own SQL logging reduced to warnings.
func Open(s Settings) (*gorm.DB, error) {
	return OpenDSN(s.DSN())
}

func OpenDSN(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the orders and idempotency_records tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &idempotencyrepo.RecordDTO{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ErrDatabaseIsNotConfigured is returned by Ping on a HealthChecker without a handle.
var ErrDatabaseIsNotConfigured = errors.New("database handle is nil")

// HealthChecker implements ports.HealthChecker with a pool ping.
type HealthChecker struct {
	db *gorm.DB
}

func NewHealthChecker(db *gorm.DB) HealthChecker {
	return HealthChecker{db: db}
}

func (h HealthChecker) Ping(ctx context.Context) error {
	if h.db == nil {
		return ErrDatabaseIsNotConfigured
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
