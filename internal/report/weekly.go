package report

import (
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/employee-sync/internal/employee"
)

type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

const DefaultExpectedHours = 40.0

// WeeklyEntry is one identity key's total for the reporting period.
type WeeklyEntry struct {
	Key           string  `json:"key"`
	TotalHours    float64 `json:"total_hours"`
	ExpectedHours float64 `json:"expected_hours"`
	Delta         float64 `json:"delta"`
	Status        Status  `json:"status"`
}

// Tally counts entries per status.
type Tally struct {
	Pass int `json:"pass"`
	Warn int `json:"warn"`
	Fail int `json:"fail"`
}

// Summarize groups accepted records by identity key, in first-seen order, and
// sums their hours. Repeated keys accumulate.
func Summarize(records []employee.Record, expected float64) []WeeklyEntry {
	order := make([]string, 0)
	totals := make(map[string]decimal.Decimal)
	for _, rec := range records {
		key := rec.Key()
		if _, ok := totals[key]; !ok {
			order = append(order, key)
			totals[key] = decimal.Zero
		}
		totals[key] = totals[key].Add(decimal.NewFromFloat(rec.HoursWorked))
	}

	exp := decimal.NewFromFloat(expected)
	entries := make([]WeeklyEntry, 0, len(order))
	for _, key := range order {
		total := totals[key]
		entries = append(entries, WeeklyEntry{
			Key:           key,
			TotalHours:    total.Round(2).InexactFloat64(),
			ExpectedHours: expected,
			Delta:         total.Sub(exp).Round(2).InexactFloat64(),
			Status:        classify(total, exp),
		})
	}
	return entries
}

// Classify applies the threshold policy: 0 is FAIL, under expected is WARN,
// expected or more is PASS. There is no separate overtime status.
func Classify(total, expected float64) Status {
	return classify(decimal.NewFromFloat(total), decimal.NewFromFloat(expected))
}

func classify(total, expected decimal.Decimal) Status {
	switch {
	case total.IsZero():
		return StatusFail
	case total.LessThan(expected):
		return StatusWarn
	default:
		return StatusPass
	}
}

func CountStatuses(entries []WeeklyEntry) Tally {
	var t Tally
	for _, e := range entries {
		switch e.Status {
		case StatusPass:
			t.Pass++
		case StatusWarn:
			t.Warn++
		case StatusFail:
			t.Fail++
		}
	}
	return t
}
