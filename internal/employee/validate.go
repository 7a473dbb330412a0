package employee

import (
	errors "github.com/frahmantamala/employee-sync/internal"
	"github.com/frahmantamala/employee-sync/internal/core/common/validation"
)

const MissingKeyMessage = "Missing unique key (email or employeeNum)"

// Validate returns the rule violations for rec in display order. An empty
// result means the record is accepted.
func Validate(rec Record) []string {
	appErr := check(rec)
	if appErr == nil {
		return nil
	}

	details, _ := appErr.Details.(errors.ValidationErrors)
	messages := make([]string, len(details.Errors))
	for i, e := range details.Errors {
		messages[i] = e.Message
	}
	return messages
}

// Partition splits records into accepted and rejected, keeping input order.
// Rejection indexes are positions in records.
func Partition(records []Record) Partitioned {
	var out Partitioned
	for i, rec := range records {
		if appErr := check(rec); appErr != nil {
			out.Rejected = append(out.Rejected, Rejection{
				Index: i,
				Error: appErr.GetDetailedMessage(),
			})
			continue
		}
		out.Accepted = append(out.Accepted, rec)
	}
	return out
}

func check(rec Record) *errors.AppError {
	v := validation.NewValidator()

	v.Field("email|employeeNum", rec).Custom(func(value interface{}) *errors.AppError {
		r := value.(Record)
		if !r.HasEmail() && !r.HasEmployeeNum() {
			return errors.NewValidationFieldError("email|employeeNum", MissingKeyMessage, errors.ErrCodeMissingKey)
		}
		return nil
	})
	v.Field("firstName", rec.FirstName).Required()
	v.Field("lastName", rec.LastName).Required()
	v.Field("hoursWorked", rec.HoursWorked).
		MinFloat(0, errors.ErrCodeHoursNegative).
		MaxFloat(MaxDailyHours, errors.ErrCodeHoursTooHigh)

	return v.Validate()
}
