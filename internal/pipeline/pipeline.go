package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/employee-sync/internal"
	"github.com/frahmantamala/employee-sync/internal/core/events"
	"github.com/frahmantamala/employee-sync/internal/employee"
	"github.com/frahmantamala/employee-sync/internal/ingest"
	"github.com/frahmantamala/employee-sync/internal/report"
	"github.com/frahmantamala/employee-sync/pkg/logger"
)

type Options struct {
	InputFile     string
	OutDir        string
	BatchSize     int
	BatchTimeout  time.Duration
	ExpectedHours float64
	DryRun        bool
	XLSX          bool
}

// OptionsFromConfig maps the loaded configuration onto run options.
func OptionsFromConfig(cfg *internal.Config) Options {
	return Options{
		InputFile:     cfg.Input.File,
		OutDir:        cfg.Report.OutDir,
		BatchSize:     cfg.Batch.Size,
		BatchTimeout:  cfg.Batch.Timeout,
		ExpectedHours: cfg.Report.ExpectedWeeklyHours,
		DryRun:        cfg.DryRun,
		XLSX:          cfg.Report.XLSX,
	}
}

type RunSummary struct {
	RunID          string
	Loaded         int
	Accepted       int
	Rejected       int
	Batches        int
	Upserted       int
	UpsertSkipped  bool
	ProfilePath    string
	RejectionsPath string
	SummaryPath    string
	XLSXPath       string
	Entries        []report.WeeklyEntry
	Tally          report.Tally
}

// Runner executes one load→profile→normalize→validate→upsert→summarize pass.
// The repository is owned by the caller; Runner never closes it.
type Runner struct {
	repo   employee.RepositoryAPI
	bus    *events.EventBus
	logger *slog.Logger
	now    func() time.Time
}

func NewRunner(repo employee.RepositoryAPI, bus *events.EventBus, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if bus == nil {
		bus = events.NewEventBus(logger)
	}
	return &Runner{
		repo:   repo,
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for artifact timestamps.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Run returns the partially filled summary alongside any fatal error so the
// caller can report how far the run got.
func (r *Runner) Run(ctx context.Context, opts Options) (*RunSummary, error) {
	runID := uuid.NewString()
	ctx = internal.ContextWithRunID(ctx, runID)
	ctx = logger.WithLogger(ctx, r.logger.With("run_id", runID))
	log := logger.From(ctx)

	summary := &RunSummary{RunID: runID}

	payload, err := ingest.Load(opts.InputFile)
	if err != nil {
		log.Error("failed to load input", "path", opts.InputFile, "error", err)
		return summary, err
	}
	summary.Loaded = len(payload.Records)
	log.Info("input loaded", "path", opts.InputFile, "rows", len(payload.Records))

	if err := report.EnsureDir(opts.OutDir); err != nil {
		return summary, internal.NewInternalError("prepare output directory", err)
	}

	profilePath, err := report.WriteProfile(opts.OutDir, ingest.BuildProfile(payload.Items))
	if err != nil {
		return summary, internal.NewInternalError("write profile", err)
	}
	summary.ProfilePath = profilePath

	parts := employee.Partition(employee.NormalizeAll(payload.Records))
	summary.Accepted = len(parts.Accepted)
	summary.Rejected = len(parts.Rejected)

	stamp := report.RunStamp(r.now(), runID)
	if len(parts.Rejected) > 0 {
		path, err := report.WriteRejections(opts.OutDir, stamp, parts.Rejected)
		if err != nil {
			return summary, internal.NewInternalError("write rejections", err)
		}
		summary.RejectionsPath = path
		log.Warn("records rejected", "count", len(parts.Rejected), "path", path)
	}

	batches := Chunk(parts.Accepted, opts.BatchSize)
	summary.Batches = len(batches)

	r.publish(ctx, events.NewRunStarted(runID, summary.Loaded, summary.Accepted, summary.Rejected, len(batches), opts.DryRun))

	switch {
	case opts.DryRun:
		summary.UpsertSkipped = true
		log.Info("dry run, skipping upsert", "accepted", summary.Accepted)
	case len(parts.Accepted) == 0:
		summary.UpsertSkipped = true
		log.Info("no accepted records, skipping upsert")
	case r.repo == nil:
		return summary, internal.NewInternalError("no store configured for a non dry run", nil)
	default:
		svc := employee.NewService(r.repo, log)
		upserted, err := svc.UpsertAll(ctx, batches, opts.BatchTimeout, func(bc employee.BatchCommitted) {
			r.publish(ctx, events.NewBatchCommitted(runID, bc.Index, bc.Total, bc.Records, bc.Elapsed))
		})
		summary.Upserted = upserted
		if err != nil {
			return summary, err
		}
	}

	expected := opts.ExpectedHours
	if expected <= 0 {
		expected = report.DefaultExpectedHours
	}
	summary.Entries = report.Summarize(parts.Accepted, expected)
	summary.Tally = report.CountStatuses(summary.Entries)

	csvPath, err := report.WriteCSV(opts.OutDir, stamp, summary.Entries)
	if err != nil {
		return summary, internal.NewInternalError("write weekly summary", err)
	}
	summary.SummaryPath = csvPath

	if opts.XLSX {
		xlsxPath, err := report.WriteXLSX(opts.OutDir, stamp, summary.Entries)
		if err != nil {
			return summary, internal.NewInternalError("write weekly summary workbook", err)
		}
		summary.XLSXPath = xlsxPath
	}

	log.Info("run complete",
		"loaded", summary.Loaded,
		"accepted", summary.Accepted,
		"rejected", summary.Rejected,
		"upserted", summary.Upserted,
		"pass", summary.Tally.Pass,
		"warn", summary.Tally.Warn,
		"fail", summary.Tally.Fail,
		"summary", csvPath)

	r.publish(ctx, events.NewRunCompleted(runID, summary.Upserted, summary.Tally.Pass, summary.Tally.Warn, summary.Tally.Fail))
	return summary, nil
}

// publish never fails the run; progress output is best effort.
func (r *Runner) publish(ctx context.Context, event events.Event) {
	if err := r.bus.PublishSync(ctx, event); err != nil {
		logger.From(ctx).Warn("event subscriber failed", "event_type", event.EventType(), "error", err)
	}
}
