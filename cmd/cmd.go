package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/frahmantamala/employee-sync/internal"
)

var (
	configDir string
)

var rootCmd = &cobra.Command{
	Use:           "employee-sync",
	Short:         "Employee roster sync",
	Long:          `Loads an employee snapshot, upserts it into the roster store and writes a weekly hours report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appErr.Type, err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// loadDotEnv loads whichever of files exist. Variables already set in the
// environment win.
func loadDotEnv(files ...string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// loadConfig reads an optional config.yml from path, then the environment.
// Environment variables override the file.
func loadConfig(path string) (*internal.Config, error) {
	if _, err := loadDotEnv(".env", ".env.local"); err != nil {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	for _, d := range internal.Defaults {
		v.SetDefault(d.Key, d.Value)
		if err := v.BindEnv(d.Key, d.Env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", d.Env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, internal.NewConfigError("error unmarshaling config").WithCause(err)
	}

	return &cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding an optional config.yml")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(dbCheckCmd)
}
