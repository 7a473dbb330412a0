package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"
)

var csvHeader = []string{"employeeKey", "total_hours", "expected_hours", "delta", "status"}

// WriteCSV writes dir/weekly-summary-<stamp>.csv and returns its path.
func WriteCSV(dir, stamp string, entries []WeeklyEntry) (string, error) {
	b, err := EncodeCSV(entries)
	if err != nil {
		return "", err
	}
	path := summaryPath(dir, stamp, "csv")
	if err := writeNew(path, b); err != nil {
		return "", err
	}
	return path, nil
}

func EncodeCSV(entries []WeeklyEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, e := range entries {
		row := []string{
			e.Key,
			formatHours(e.TotalHours),
			formatHours(e.ExpectedHours),
			formatHours(e.Delta),
			string(e.Status),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("csv row %s: %w", e.Key, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}

// formatHours prints at most two decimals without trailing zeros: 40, 25.5, 39.99.
func formatHours(f float64) string {
	return decimal.NewFromFloat(f).Round(2).String()
}
