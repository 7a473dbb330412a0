package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/employee-sync/internal"
)

// initDB opens the gorm handle for the configured driver and verifies it.
func initDB(ctx context.Context, cfg internal.DatabaseConfig) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, internal.NewConfigError(fmt.Sprintf("database config: %v", err))
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.DriverSQLite:
		dialector = sqlite.Open(cfg.Source)
	default:
		dialector = postgres.Open(cfg.Source)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("database handle unavailable on close", "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("database close error", "error", err)
		return
	}
	logger.Debug("database connection closed")
}

// sqlDriverName maps the configured driver to its database/sql registration.
func sqlDriverName(driver string) string {
	if driver == internal.DriverSQLite {
		return "sqlite3"
	}
	return "pgx"
}

// initSQLX opens a plain sqlx handle for read-only checks.
func initSQLX(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, internal.NewConfigError(fmt.Sprintf("database config: %v", err))
	}

	dbConn, err := sqlx.Connect(sqlDriverName(cfg.Driver), cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	return dbConn, nil
}
