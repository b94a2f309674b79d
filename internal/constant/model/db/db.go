package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the GORM database connection
type DB struct {
	*gorm.DB
}

// connPool is the part of *sql.DB configured here
type connPool interface {
	SetMaxOpenConns(n int)
	SetMaxIdleConns(n int)
	SetConnMaxLifetime(d time.Duration)
	PingContext(ctx context.Context) error
	Close() error
}

// NewDB opens a Postgres connection, configures the pool and migrates the payments table
func NewDB(ctx context.Context, connectionString string) (*DB, error) {
	db, err := gorm.Open(postgres.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	err = preparePool(ctx, sqlDB, func(ctx context.Context) error {
		return db.WithContext(ctx).AutoMigrate(&Payment{})
	})
	if err != nil {
		return nil, err
	}

	return &DB{DB: db}, nil
}

// preparePool sizes the pool, checks connectivity and runs migrate.
// The pool is closed if any step fails.
func preparePool(ctx context.Context, pool connPool, migrate func(context.Context) error) (err error) {
	defer func() {
		if err != nil {
			pool.Close() //nolint:errcheck
		}
	}()

	pool.SetMaxOpenConns(25)
	pool.SetMaxIdleConns(5)
	pool.SetConnMaxLifetime(5 * time.Minute)

	if err := pool.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate payments table: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
