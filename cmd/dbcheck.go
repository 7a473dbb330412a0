package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	employeePostgres "github.com/frahmantamala/employee-sync/internal/employee/postgres"
	"github.com/frahmantamala/employee-sync/pkg/logger"
)

var (
	dbCheckCmd = &cobra.Command{
		Use:   "dbcheck",
		Short: "Check store connectivity and print roster statistics",
		RunE:  runDBCheck,
	}
	dbCheckJSON bool
)

func init() {
	dbCheckCmd.Flags().BoolVar(&dbCheckJSON, "json", false, "Print statistics as JSON")
}

func runDBCheck(cmd *cobra.Command, _ []string) error {
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

	dbConn, err := initSQLX(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.Error("database close error", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stats, err := employeePostgres.NewStatsReader(dbConn).Stats(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dbCheckJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(out, "Store OK (%s)\n", cfg.Database.Driver)
	fmt.Fprintf(out, "- Employees: %d\n", stats.Total)
	fmt.Fprintf(out, "- Active: %d\n", stats.Active)
	fmt.Fprintf(out, "- Placeholder emails: %d\n", stats.Placeholders)
	for _, d := range stats.Departments {
		fmt.Fprintf(out, "  %s: %d\n", d.Department, d.Employees)
	}
	return nil
}
