package employee

import (
	"fmt"

	employeeDatamodel "github.com/frahmantamala/employee-sync/internal/core/datamodel/employee"
)

// RawRecord is one element of the input array exactly as decoded. Nothing about
// it is trusted until Normalize has run.
type RawRecord map[string]any

// Record is the canonical employee row. Department is nil for "no department";
// the other pointer fields are nil when the input omitted them.
type Record struct {
	Email       *string `json:"email,omitempty"`
	EmployeeNum *string `json:"employeeNum,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Department  *string `json:"department"`
	Role        string  `json:"role"`
	HoursWorked float64 `json:"hoursWorked"`
	Active      bool    `json:"active"`
}

const (
	DefaultRole            = "Staff"
	MaxDailyHours          = 24.0
	PlaceholderEmailDomain = "placeholder.local"
)

// Key is the identity used for aggregation: email when set, otherwise employeeNum.
func (r Record) Key() string {
	if r.HasEmail() {
		return *r.Email
	}
	if r.HasEmployeeNum() {
		return *r.EmployeeNum
	}
	return ""
}

func (r Record) HasEmail() bool {
	return r.Email != nil && *r.Email != ""
}

func (r Record) HasEmployeeNum() bool {
	return r.EmployeeNum != nil && *r.EmployeeNum != ""
}

type KeyPath string

const (
	KeyEmail       KeyPath = "email"
	KeyEmployeeNum KeyPath = "employee_num"
)

// UpsertIntent is one create-or-update request against the store.
type UpsertIntent struct {
	Key    KeyPath
	Record Record
}

// IntentFor picks the identity path for r. It returns false when r has neither key.
func IntentFor(r Record) (UpsertIntent, bool) {
	switch {
	case r.HasEmail():
		return UpsertIntent{Key: KeyEmail, Record: r}, true
	case r.HasEmployeeNum():
		return UpsertIntent{Key: KeyEmployeeNum, Record: r}, true
	default:
		return UpsertIntent{}, false
	}
}

func PlaceholderEmail(employeeNum string) string {
	return fmt.Sprintf("%s@%s", employeeNum, PlaceholderEmailDomain)
}

// ToDataModel builds the row inserted on create. For employee_num intents the
// email is a placeholder; the repository never writes it on update. It fails
// when the record lacks the key its intent names.
func ToDataModel(intent UpsertIntent) (*employeeDatamodel.Employee, error) {
	r := intent.Record

	row := &employeeDatamodel.Employee{
		FirstName:   deref(r.FirstName),
		LastName:    deref(r.LastName),
		Department:  r.Department,
		Role:        r.Role,
		HoursWorked: r.HoursWorked,
		Active:      r.Active,
	}

	if r.HasEmployeeNum() {
		num := *r.EmployeeNum
		row.EmployeeNum = &num
	}

	switch intent.Key {
	case KeyEmail:
		if !r.HasEmail() {
			return nil, fmt.Errorf("email intent without email")
		}
		row.Email = *r.Email
	case KeyEmployeeNum:
		if !r.HasEmployeeNum() {
			return nil, fmt.Errorf("employee_num intent without employeeNum")
		}
		row.Email = PlaceholderEmail(*r.EmployeeNum)
	default:
		return nil, fmt.Errorf("unknown key path %q", intent.Key)
	}

	return row, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
