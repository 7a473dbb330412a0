package cmd

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/employee-sync/db/migrations"
	"github.com/frahmantamala/employee-sync/internal"
	"github.com/frahmantamala/employee-sync/pkg/logger"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "Apply the embedded employees schema migrations",
	}
	migrateRollback bool
	migrateStatus   bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "Roll back the latest migration")
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "Print migration status without applying anything")
}

// migrationDialect maps the configured driver to goose's dialect and the
// embedded directory holding that dialect's migrations.
func migrationDialect(driver string) (dialect, dir string) {
	if driver == internal.DriverSQLite {
		return "sqlite3", "sqlite"
	}
	return "postgres", "postgres"
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("goose: failed to get sql handle: %w", err)
	}

	dialect, dir := migrationDialect(cfg.Database.Driver)
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose: %w", err)
	}

	command := "up"
	switch {
	case migrateStatus:
		command = "status"
	case migrateRollback:
		command = "down"
	}

	log.Info("running migrations", "command", command, "dialect", dialect)
	if err := goose.RunContext(ctx, command, sqlDB, dir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
