package employee

import "time"

// Employee is the persisted roster row. Email and EmployeeNum are each unique;
// upserts key on one of them. Role, HoursWorked and Active must not get a gorm
// default tag: gorm skips zero values for such columns on insert.
type Employee struct {
	ID          int64     `gorm:"primaryKey"`
	Email       string    `gorm:"column:email;uniqueIndex;not null"`
	EmployeeNum *string   `gorm:"column:employee_num;uniqueIndex"`
	FirstName   string    `gorm:"column:first_name;not null"`
	LastName    string    `gorm:"column:last_name;not null"`
	Department  *string   `gorm:"column:department"`
	Role        string    `gorm:"column:role;not null"`
	HoursWorked float64   `gorm:"column:hours_worked;not null"`
	Active      bool      `gorm:"column:active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
