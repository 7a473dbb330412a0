package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/employee-sync/internal"
)

var (
	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Write a sample employee snapshot",
		Long: `Write a sample employee snapshot to INPUT_FILE (or --input) for development
and testing. The sample mixes clean rows, rows that need normalizing and rows
that fail validation.`,
		RunE: runSeed,
	}
	seedInput string
	seedForce bool
)

func init() {
	seedCmd.Flags().StringVarP(&seedInput, "input", "i", "", "Target file (overrides INPUT_FILE)")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Overwrite an existing file")
}

// sampleEmployees keeps every row within the daily ceiling; weekly totals
// come from repeated rows for the same employee.
func sampleEmployees() []map[string]any {
	return []map[string]any{
		{"email": "ada@example.com", "employeeNum": "E001", "firstName": "Ada", "lastName": "Lovelace", "department": "Engineering", "role": "Lead", "hoursWorked": 24, "active": true},
		{"email": "  GRACE@Example.com ", "employeeNum": "E002", "firstName": " Grace ", "lastName": "Hopper", "department": "Engineering", "hoursWorked": "7.5", "active": "yes"},
		{"employeeNum": "E003", "firstName": "Alan", "lastName": "Turing", "department": "", "hoursWorked": 8, "active": 1},
		{"email": "ada@example.com", "firstName": "Ada", "lastName": "Lovelace", "hoursWorked": "16", "active": true},
		{"email": "linus@example.com", "firstName": "Linus", "lastName": "Torvalds", "department": "Platform", "role": "Staff", "hoursWorked": "abc", "active": "no"},
		{"firstName": "No", "lastName": "Key", "hoursWorked": 10},
		{"email": "barbara@example.com", "firstName": "", "lastName": "Liskov", "hoursWorked": 12},
		{"email": "ken@example.com", "employeeNum": "E007", "firstName": "Ken", "lastName": "Thompson", "hoursWorked": 12, "active": false},
		{"email": "dennis@example.com", "firstName": "Dennis", "lastName": "Ritchie", "hoursWorked": 9.5},
		{"email": "margaret@example.com", "firstName": "Margaret", "lastName": "Hamilton", "hoursWorked": -1},
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	target := cfg.Input.File
	if cmd.Flags().Changed("input") {
		target = seedInput
	}
	if target == "" {
		return internal.NewConfigError("input file is required")
	}

	if !seedForce {
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", target)
		}
	}

	data, err := json.MarshalIndent(sampleEmployees(), "", "  ")
	if err != nil {
		return internal.NewInternalError("encode sample", err)
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return internal.NewInternalError("create input directory", err)
		}
	}
	if err := os.WriteFile(target, append(data, '\n'), 0o644); err != nil {
		return internal.NewInternalError("write sample", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sample employee record(s) to %s\n", len(sampleEmployees()), target)
	return nil
}
