package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Report   ReportConfig   `mapstructure:"report"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	DryRun   bool           `mapstructure:"dry_run"`
}

type InputConfig struct {
	File string `mapstructure:"file"`
}

type BatchConfig struct {
	Size    int           `mapstructure:"size"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ReportConfig struct {
	ExpectedWeeklyHours float64 `mapstructure:"expected_weekly_hours"`
	OutDir              string  `mapstructure:"out_dir"`
	XLSX                bool    `mapstructure:"xlsx"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Defaults maps every config key to its default and the environment variable it is read from.
var Defaults = []struct {
	Key   string
	Env   string
	Value any
}{
	{"input.file", "INPUT_FILE", "data/employees.json"},
	{"batch.size", "BATCH_SIZE", 100},
	{"batch.timeout", "BATCH_TIMEOUT", 60 * time.Second},
	{"report.expected_weekly_hours", "EXPECTED_WEEKLY_HOURS", 40.0},
	{"report.out_dir", "OUT_DIR", "out"},
	{"report.xlsx", "REPORT_XLSX", false},
	{"database.driver", "DB_DRIVER", DriverPostgres},
	{"database.source", "DATABASE_URL", ""},
	{"database.max_open_conns", "DB_MAX_OPEN_CONNS", 10},
	{"database.max_idle_conns", "DB_MAX_IDLE_CONNS", 5},
	{"database.conn_max_lifetime", "DB_CONN_MAX_LIFETIME", 30 * time.Minute},
	{"logging.level", "LOG_LEVEL", "info"},
	{"logging.format", "LOG_FORMAT", "text"},
	{"dry_run", "DRY_RUN", false},
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Input.File) == "" {
		errs = append(errs, "input config: file is required")
	}

	if err := c.Batch.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("batch config: %v", err))
	}

	if err := c.Report.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("report config: %v", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return NewConfigError(strings.Join(errs, "; "))
	}

	return nil
}

func (c *BatchConfig) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("size must be a positive integer, got %d", c.Size)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

func (c *ReportConfig) Validate() error {
	if c.ExpectedWeeklyHours <= 0 {
		return fmt.Errorf("expected_weekly_hours must be positive, got %v", c.ExpectedWeeklyHours)
	}
	if strings.TrimSpace(c.OutDir) == "" {
		return errors.New("out_dir is required")
	}
	return nil
}

// Validate is only called by commands that open the store.
func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("driver must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Driver)
	}
	if strings.TrimSpace(c.Source) == "" {
		return errors.New("source (DATABASE_URL) is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error; got %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text; got %q", c.Format)
	}
	return nil
}
