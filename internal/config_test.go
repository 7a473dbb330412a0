package internal_test

import (
	"context"
	"time"

	"github.com/frahmantamala/employee-sync/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validConfig() *internal.Config {
	return &internal.Config{
		Input:  internal.InputConfig{File: "data/employees.json"},
		Batch:  internal.BatchConfig{Size: 100, Timeout: time.Minute},
		Report: internal.ReportConfig{ExpectedWeeklyHours: 40, OutDir: "out"},
		Database: internal.DatabaseConfig{
			Driver:       internal.DriverPostgres,
			Source:       "postgres://localhost/roster",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Logging: internal.LoggingConfig{Level: "info", Format: "text"},
	}
}

var _ = Describe("Config", func() {
	It("accepts the defaults", func() {
		Expect(validConfig().Validate()).To(Succeed())
	})

	It("collects every problem into one config error", func() {
		cfg := validConfig()
		cfg.Input.File = " "
		cfg.Batch.Size = 0
		cfg.Report.ExpectedWeeklyHours = -1
		cfg.Logging.Format = "xml"

		err := cfg.Validate()
		Expect(internal.IsType(err, internal.ErrorTypeConfig)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("input config: file is required"))
		Expect(err.Error()).To(ContainSubstring("batch config: size must be a positive integer, got 0"))
		Expect(err.Error()).To(ContainSubstring("report config: expected_weekly_hours must be positive"))
		Expect(err.Error()).To(ContainSubstring("logging config: format must be json or text"))
	})

	It("does not require a database for the pipeline", func() {
		cfg := validConfig()
		cfg.Database = internal.DatabaseConfig{}
		Expect(cfg.Validate()).To(Succeed())
	})

	DescribeTable("database config",
		func(mutate func(*internal.DatabaseConfig), ok bool) {
			cfg := validConfig().Database
			mutate(&cfg)
			if ok {
				Expect(cfg.Validate()).To(Succeed())
			} else {
				Expect(cfg.Validate()).NotTo(Succeed())
			}
		},
		Entry("postgres", func(*internal.DatabaseConfig) {}, true),
		Entry("sqlite", func(c *internal.DatabaseConfig) { c.Driver = internal.DriverSQLite; c.Source = "roster.db" }, true),
		Entry("unknown driver", func(c *internal.DatabaseConfig) { c.Driver = "mysql" }, false),
		Entry("missing source", func(c *internal.DatabaseConfig) { c.Source = "" }, false),
		Entry("idle above open", func(c *internal.DatabaseConfig) { c.MaxIdleConns = 20 }, false),
	)

	It("binds every key to an environment variable", func() {
		envs := map[string]bool{}
		for _, d := range internal.Defaults {
			Expect(d.Env).NotTo(BeEmpty())
			envs[d.Env] = true
		}
		Expect(envs).To(HaveKey("INPUT_FILE"))
		Expect(envs).To(HaveKey("BATCH_SIZE"))
		Expect(envs).To(HaveKey("EXPECTED_WEEKLY_HOURS"))
		Expect(envs).To(HaveKey("DATABASE_URL"))
	})
})

var _ = Describe("WithTimeout", func() {
	It("falls back to the default for a non-positive duration", func() {
		ctx, cancel := internal.WithTimeout(context.Background(), 0)
		defer cancel()
		deadline, ok := ctx.Deadline()
		Expect(ok).To(BeTrue())
		Expect(time.Until(deadline)).To(BeNumerically(">", internal.DefaultBatchTimeout-time.Second))
	})

	It("carries the run id", func() {
		ctx := internal.ContextWithRunID(context.Background(), "run-1")
		Expect(internal.RunIDFromContext(ctx)).To(Equal("run-1"))
		Expect(internal.RunIDFromContext(context.Background())).To(BeEmpty())
	})
})
