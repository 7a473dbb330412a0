package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/employee-sync/internal/employee"
)

// RosterStats is a read-only snapshot of the employees table.
type RosterStats struct {
	Total        int64             `db:"total" json:"total"`
	Active       int64             `db:"active" json:"active"`
	Placeholders int64             `db:"placeholders" json:"placeholders"`
	Departments  []DepartmentCount `json:"departments"`
}

type DepartmentCount struct {
	Department string `db:"department" json:"department"`
	Employees  int64  `db:"employees" json:"employees"`
}

// UnassignedDepartment labels rows with a NULL department.
const UnassignedDepartment = "(none)"

type StatsReader struct {
	db *sqlx.DB
}

func NewStatsReader(db *sqlx.DB) *StatsReader {
	return &StatsReader{db: db}
}

func (s *StatsReader) Stats(ctx context.Context) (*RosterStats, error) {
	var stats RosterStats
	query := s.db.Rebind(`
SELECT
  COUNT(*) AS total,
  COALESCE(SUM(CASE WHEN active THEN 1 ELSE 0 END), 0) AS active,
  COALESCE(SUM(CASE WHEN email LIKE ? THEN 1 ELSE 0 END), 0) AS placeholders
FROM employees
`)
	if err := s.db.GetContext(ctx, &stats, query, "%@"+employee.PlaceholderEmailDomain); err != nil {
		return nil, fmt.Errorf("stats query: %w", err)
	}

	depts := []DepartmentCount{}
	deptQuery := s.db.Rebind(`
SELECT COALESCE(department, ?) AS department, COUNT(*) AS employees
FROM employees
GROUP BY 1
ORDER BY employees DESC, department ASC
`)
	if err := s.db.SelectContext(ctx, &depts, deptQuery, UnassignedDepartment); err != nil {
		return nil, fmt.Errorf("department query: %w", err)
	}
	stats.Departments = depts

	return &stats, nil
}
