// Package repository selects the storage backend for the configured database driver.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/teetime/internal/config"
	"github.com/Rrens/teetime/internal/domain"
	"github.com/Rrens/teetime/internal/repository/postgres"
	"github.com/Rrens/teetime/internal/repository/sqlstore"
	"github.com/Rrens/teetime/migrations"
)

// Database is the connection handle shared by a set of stores
type Database interface {
	Ping(ctx context.Context) error
	Close() error
}

// Stores groups the repositories backed by one database
type Stores struct {
	DB           Database
	Courses      domain.CourseRepository
	TeeTimes     domain.TeeTimeRepository
	Availability domain.AvailabilityRepository
}

// Open connects to the configured database and builds its repositories
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Stores{
			DB:           db,
			Courses:      postgres.NewCourseRepository(db),
			TeeTimes:     postgres.NewTeeTimeRepository(db),
			Availability: postgres.NewAvailabilityRepository(db),
		}, nil
	case config.DriverMySQL, config.DriverSQLite:
		db, err := sqlstore.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Stores{
			DB:           db,
			Courses:      sqlstore.NewCourseRepository(db),
			TeeTimes:     sqlstore.NewTeeTimeRepository(db),
			Availability: sqlstore.NewAvailabilityRepository(db),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// Close releases the underlying connection pool
func (s *Stores) Close() error {
	return s.DB.Close()
}

// NewMigrator builds a migrator over the embedded migrations for the configured driver
func NewMigrator(cfg config.DatabaseConfig) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.MigrateURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// RunMigrations applies every pending up migration
func RunMigrations(cfg config.DatabaseConfig) error {
	m, err := NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Str("driver", cfg.Driver).Msg("Database migration: no changes")
			return nil
		}
		return fmt.Errorf("failed to run migrate up: %w", err)
	}

	version, _, _ := m.Version()
	log.Info().Str("driver", cfg.Driver).Uint("version", version).Msg("Database migration: success")
	return nil
}
