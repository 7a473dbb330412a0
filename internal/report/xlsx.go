package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Weekly Summary"

// WriteXLSX writes the same rows as WriteCSV into dir/weekly-summary-<stamp>.xlsx.
func WriteXLSX(dir, stamp string, entries []WeeklyEntry) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range csvHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(summarySheet, cell, h)
	}

	for r, e := range entries {
		row := r + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(summarySheet, cell, v)
		}
		write(1, e.Key)
		write(2, e.TotalHours)
		write(3, e.ExpectedHours)
		write(4, e.Delta)
		write(5, string(e.Status))
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 32) // key
	_ = f.SetColWidth(summarySheet, "B", "D", 14) // hours
	_ = f.SetColWidth(summarySheet, "E", "E", 10) // status

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("xlsx write: %w", err)
	}

	path := summaryPath(dir, stamp, "xlsx")
	if err := writeNew(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}
