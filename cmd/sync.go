package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/employee-sync/internal"
	"github.com/frahmantamala/employee-sync/internal/core/events"
	"github.com/frahmantamala/employee-sync/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-sync/internal/employee/postgres"
	"github.com/frahmantamala/employee-sync/internal/pipeline"
	"github.com/frahmantamala/employee-sync/pkg/logger"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the roster sync pipeline",
	Long: `Load the employee snapshot, clean and validate it, upsert accepted records
in atomic batches and write the weekly hours summary to the output directory.`,
	RunE: runSync,
}

var (
	syncInput         string
	syncOutDir        string
	syncBatchSize     int
	syncExpectedHours float64
	syncDryRun        bool
	syncXLSX          bool
)

func init() {
	syncCmd.Flags().StringVarP(&syncInput, "input", "i", "", "Input JSON file (overrides INPUT_FILE)")
	syncCmd.Flags().StringVarP(&syncOutDir, "out", "o", "", "Output directory (overrides OUT_DIR)")
	syncCmd.Flags().IntVar(&syncBatchSize, "batch-size", 0, "Records per atomic batch (overrides BATCH_SIZE)")
	syncCmd.Flags().Float64Var(&syncExpectedHours, "expected-hours", 0, "Expected weekly hours (overrides EXPECTED_WEEKLY_HOURS)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Skip all store writes (overrides DRY_RUN)")
	syncCmd.Flags().BoolVar(&syncXLSX, "xlsx", false, "Also write the weekly summary as XLSX (overrides REPORT_XLSX)")
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	applySyncFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.LoggerWrapper()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var repo employee.RepositoryAPI
	if !cfg.DryRun {
		db, err := initDB(ctx, cfg.Database)
		if err != nil {
			log.Error("failed to initialize database", "error", err)
			return err
		}
		defer closeDB(db, log)
		repo = employeePostgres.NewEmployeeRepository(db)
	}

	bus := events.NewEventBus(log)
	subscribeConsole(bus, cmd.OutOrStdout())
	bus.Subscribe(events.AllEvents, func(_ context.Context, e events.Event) error {
		log.Debug("run event",
			"event_type", e.EventType(),
			"event_id", e.EventID(),
			"run_id", e.RunID(),
			"at", e.OccurredAt())
		return nil
	})

	summary, err := pipeline.NewRunner(repo, bus, log).Run(ctx, pipeline.OptionsFromConfig(cfg))
	if err != nil {
		if summary != nil && summary.Loaded > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "run aborted after %d upserted record(s)\n", summary.Upserted)
		}
		return err
	}

	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

func applySyncFlags(cmd *cobra.Command, cfg *internal.Config) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input.File = syncInput
	}
	if flags.Changed("out") {
		cfg.Report.OutDir = syncOutDir
	}
	if flags.Changed("batch-size") {
		cfg.Batch.Size = syncBatchSize
	}
	if flags.Changed("expected-hours") {
		cfg.Report.ExpectedWeeklyHours = syncExpectedHours
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = syncDryRun
	}
	if flags.Changed("xlsx") {
		cfg.Report.XLSX = syncXLSX
	}
}

func subscribeConsole(bus *events.EventBus, w io.Writer) {
	bus.Subscribe(events.RunStartedEvent, func(_ context.Context, e events.Event) error {
		started, ok := e.(events.RunStarted)
		if !ok {
			return nil
		}
		mode := "apply"
		if started.DryRun {
			mode = "dry-run"
		}
		_, err := fmt.Fprintf(w, "Loaded %d record(s): %d valid, %d rejected; %d batch(es) [%s]\n",
			started.Loaded, started.Accepted, started.Rejected, started.Batches, mode)
		return err
	})

	bus.Subscribe(events.BatchCommittedEvent, func(_ context.Context, e events.Event) error {
		batch, ok := e.(events.BatchCommitted)
		if !ok {
			return nil
		}
		_, err := fmt.Fprintf(w, "- batch %d/%d committed: %d record(s) in %dms\n",
			batch.Index, batch.Total, batch.Records, batch.Elapsed.Milliseconds())
		return err
	})
}

func printSummary(w io.Writer, s *pipeline.RunSummary) {
	fmt.Fprintf(w, "Sync complete!\n")
	fmt.Fprintf(w, "- Loaded: %d\n", s.Loaded)
	fmt.Fprintf(w, "- Valid: %d\n", s.Accepted)
	fmt.Fprintf(w, "- Rejected: %d\n", s.Rejected)
	if s.UpsertSkipped {
		fmt.Fprintf(w, "- Upserted: 0 (skipped)\n")
	} else {
		fmt.Fprintf(w, "- Upserted: %d\n", s.Upserted)
	}
	fmt.Fprintf(w, "- Weekly: PASS=%d WARN=%d FAIL=%d\n", s.Tally.Pass, s.Tally.Warn, s.Tally.Fail)
	fmt.Fprintf(w, "- Summary: %s\n", s.SummaryPath)
	if s.XLSXPath != "" {
		fmt.Fprintf(w, "- Workbook: %s\n", s.XLSXPath)
	}
	if s.RejectionsPath != "" {
		fmt.Fprintf(w, "- Rejections: %s\n", s.RejectionsPath)
	}
}
