package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/employee-sync/internal"
	employeeDatamodel "github.com/frahmantamala/employee-sync/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-sync/internal/employee"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeRepository implements employee.RepositoryAPI using GORM. It works on
// both the postgres and sqlite dialects.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

var _ employee.RepositoryAPI = (*EmployeeRepository)(nil)

// columns rewritten on conflict, whichever key matched
var sharedUpdateColumns = []string{
	"first_name",
	"last_name",
	"department",
	"role",
	"hours_worked",
	"active",
	"updated_at",
}

// UpsertBatch runs every intent inside one transaction bounded by timeout.
// When the deadline is what broke the transaction, the returned error wraps
// context.DeadlineExceeded.
func (r *EmployeeRepository) UpsertBatch(ctx context.Context, intents []employee.UpsertIntent, timeout time.Duration) error {
	ctx, cancel := internal.WithTimeout(ctx, timeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, intent := range intents {
			if err := upsertOne(tx, intent); err != nil {
				return fmt.Errorf("upsert record %d (%s=%s): %w", i, intent.Key, intent.Record.Key(), err)
			}
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v", ctxErr, err)
		}
		return err
	}
	return nil
}

func upsertOne(tx *gorm.DB, intent employee.UpsertIntent) error {
	row, err := employee.ToDataModel(intent)
	if err != nil {
		return err
	}

	updates := append([]string(nil), sharedUpdateColumns...)
	target := "employee_num"
	if intent.Key == employee.KeyEmail {
		target = "email"
		// a record without employeeNum must not clear the stored one
		if row.EmployeeNum != nil {
			updates = append(updates, "employee_num")
		}
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: target}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(row).Error
}

// GetByEmail returns nil, nil when no row matches.
func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

// GetByEmployeeNum returns nil, nil when no row matches.
func (r *EmployeeRepository) GetByEmployeeNum(ctx context.Context, employeeNum string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where("employee_num = ?", employeeNum).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{}).Count(&n).Error
	return n, err
}
