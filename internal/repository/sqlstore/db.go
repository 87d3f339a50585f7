// Package sqlstore implements the repositories on database/sql for MySQL and SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/Rrens/teetime/internal/config"
)

// Dialect holds the SQL fragments that differ between drivers
type Dialect struct {
	Name string
	// DateColumn renders a DATE column as YYYY-MM-DD
	DateColumn func(col string) string
	// ClockColumn renders a TIME column as HH:MM
	ClockColumn func(col string) string
	// InsertIgnore starts an insert that skips unique violations
	InsertIgnore string
}

var mysqlDialect = Dialect{
	Name:         config.DriverMySQL,
	DateColumn:   func(col string) string { return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m-%%d')", col) },
	ClockColumn:  func(col string) string { return fmt.Sprintf("TIME_FORMAT(%s, '%%H:%%i')", col) },
	InsertIgnore: "INSERT IGNORE INTO",
}

var sqliteDialect = Dialect{
	Name:         config.DriverSQLite,
	DateColumn:   func(col string) string { return col },
	ClockColumn:  func(col string) string { return fmt.Sprintf("substr(%s, 1, 5)", col) },
	InsertIgnore: "INSERT OR IGNORE INTO",
}

// DB wraps a database/sql pool together with its dialect
type DB struct {
	SQL     *sql.DB
	dialect Dialect
}

// Open connects to a MySQL or SQLite database
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	var dialect Dialect
	switch cfg.Driver {
	case config.DriverMySQL:
		dialect = mysqlDialect
	case config.DriverSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("database file path is required")
		}
		dialect = sqliteDialect
	default:
		return nil, fmt.Errorf("sqlstore does not support driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		db.SetMaxOpenConns(1) // SQLite only supports one writer
		db.SetMaxIdleConns(1)
	} else {
		maxConns := int(cfg.MaxConns)
		if maxConns <= 0 {
			maxConns = 10
		}
		db.SetMaxOpenConns(maxConns)
		db.SetMaxIdleConns(int(cfg.MinConns))
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{SQL: db, dialect: dialect}, nil
}

// Dialect returns the active SQL dialect
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Close closes the connection pool
func (db *DB) Close() error {
	return db.SQL.Close()
}

// Ping verifies database connectivity
func (db *DB) Ping(ctx context.Context) error {
	return db.SQL.PingContext(ctx)
}
