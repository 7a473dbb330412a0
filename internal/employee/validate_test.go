package employee_test

import (
	"github.com/frahmantamala/employee-sync/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validRecord() employee.Record {
	return employee.Record{
		Email:       strPtr("ada@example.com"),
		FirstName:   strPtr("Ada"),
		LastName:    strPtr("Lovelace"),
		Role:        employee.DefaultRole,
		HoursWorked: 8,
		Active:      true,
	}
}

var _ = Describe("Validate", func() {
	It("accepts a complete record", func() {
		Expect(employee.Validate(validRecord())).To(BeEmpty())
	})

	It("accepts employeeNum as the only key", func() {
		rec := validRecord()
		rec.Email = nil
		rec.EmployeeNum = strPtr("E001")
		Expect(employee.Validate(rec)).To(BeEmpty())
	})

	It("rejects a record without any key", func() {
		rec := validRecord()
		rec.Email = nil
		Expect(employee.Validate(rec)).To(ConsistOf(employee.MissingKeyMessage))
	})

	It("treats empty keys as missing", func() {
		rec := validRecord()
		rec.Email = strPtr("")
		rec.EmployeeNum = strPtr("")
		Expect(employee.Validate(rec)).To(ConsistOf("Missing unique key (email or employeeNum)"))
	})

	It("requires non-empty names", func() {
		rec := validRecord()
		rec.FirstName = strPtr("")
		rec.LastName = nil
		Expect(employee.Validate(rec)).To(Equal([]string{"Missing firstName", "Missing lastName"}))
	})

	DescribeTable("hoursWorked bounds",
		func(hours float64, messages []string) {
			rec := validRecord()
			rec.HoursWorked = hours
			if messages == nil {
				Expect(employee.Validate(rec)).To(BeEmpty())
				return
			}
			Expect(employee.Validate(rec)).To(Equal(messages))
		},
		Entry("zero", 0.0, nil),
		Entry("upper bound", 24.0, nil),
		Entry("negative", -0.5, []string{"hoursWorked must not be negative"}),
		Entry("above bound", 24.01, []string{"hoursWorked must not exceed 24"}),
	)

	It("reports every violation in order", func() {
		rec := employee.Record{HoursWorked: -1}
		Expect(employee.Validate(rec)).To(Equal([]string{
			employee.MissingKeyMessage,
			"Missing firstName",
			"Missing lastName",
			"hoursWorked must not be negative",
		}))
	})
})

var _ = Describe("Partition", func() {
	It("splits records and keeps original indexes", func() {
		noKey := validRecord()
		noKey.Email = nil
		tooMany := validRecord()
		tooMany.HoursWorked = 30
		tooMany.FirstName = strPtr("")

		parts := employee.Partition([]employee.Record{validRecord(), noKey, validRecord(), tooMany})

		Expect(parts.Accepted).To(HaveLen(2))
		Expect(parts.Rejected).To(Equal([]employee.Rejection{
			{Index: 1, Error: employee.MissingKeyMessage},
			{Index: 3, Error: "Missing firstName; hoursWorked must not exceed 24"},
		}))
	})

	It("applies the 24 hour ceiling per record, not per week", func() {
		recs := employee.NormalizeAll([]employee.RawRecord{
			{"email": "a@x.com", "firstName": "A", "lastName": "B", "hoursWorked": "40"},
			{"email": "a@x.com", "firstName": "A", "lastName": "B", "hoursWorked": "16"},
			{"email": "a@x.com", "firstName": "A", "lastName": "B", "hoursWorked": "24"},
		})
		parts := employee.Partition(recs)

		Expect(parts.Rejected).To(Equal([]employee.Rejection{
			{Index: 0, Error: "hoursWorked must not exceed 24"},
		}))
		Expect(parts.Accepted).To(HaveLen(2))
	})

	It("returns nothing for no input", func() {
		parts := employee.Partition(nil)
		Expect(parts.Accepted).To(BeEmpty())
		Expect(parts.Rejected).To(BeEmpty())
	})

	It("rejects a raw record with no usable key after normalizing", func() {
		recs := employee.NormalizeAll([]employee.RawRecord{
			{"email": "  ", "firstName": "A", "lastName": "B"},
			{"employeeNum": "E9", "firstName": "C", "lastName": "D", "hoursWorked": "abc"},
		})
		parts := employee.Partition(recs)

		Expect(parts.Rejected).To(HaveLen(1))
		Expect(parts.Rejected[0].Index).To(Equal(0))
		Expect(parts.Accepted).To(HaveLen(1))
		Expect(parts.Accepted[0].HoursWorked).To(Equal(0.0))
	})
})

var _ = Describe("ToDataModel", func() {
	It("fails for an unknown key path", func() {
		_, err := employee.ToDataModel(employee.UpsertIntent{Key: "badge", Record: validRecord()})
		Expect(err).To(MatchError(ContainSubstring("unknown key path")))
	})

	It("fails for an employee_num intent without employeeNum", func() {
		_, err := employee.ToDataModel(employee.UpsertIntent{Key: employee.KeyEmployeeNum, Record: validRecord()})
		Expect(err).To(MatchError(ContainSubstring("without employeeNum")))
	})

	It("fails for an email intent with an empty email", func() {
		rec := validRecord()
		rec.Email = strPtr("")
		_, err := employee.ToDataModel(employee.UpsertIntent{Key: employee.KeyEmail, Record: rec})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("IntentFor", func() {
	It("prefers email", func() {
		rec := validRecord()
		rec.EmployeeNum = strPtr("E001")
		intent, ok := employee.IntentFor(rec)
		Expect(ok).To(BeTrue())
		Expect(intent.Key).To(Equal(employee.KeyEmail))
	})

	It("falls back to employeeNum with a placeholder email on create", func() {
		rec := validRecord()
		rec.Email = strPtr("")
		rec.EmployeeNum = strPtr("E001")
		intent, ok := employee.IntentFor(rec)
		Expect(ok).To(BeTrue())
		Expect(intent.Key).To(Equal(employee.KeyEmployeeNum))

		row, err := employee.ToDataModel(intent)
		Expect(err).NotTo(HaveOccurred())
		Expect(row.Email).To(Equal("E001@placeholder.local"))
		Expect(*row.EmployeeNum).To(Equal("E001"))
	})

	It("reports no intent without a key", func() {
		rec := validRecord()
		rec.Email = nil
		_, ok := employee.IntentFor(rec)
		Expect(ok).To(BeFalse())
	})

	It("leaves employee_num unset when the record has none", func() {
		intent, _ := employee.IntentFor(validRecord())
		row, err := employee.ToDataModel(intent)
		Expect(err).NotTo(HaveOccurred())
		Expect(row.EmployeeNum).To(BeNil())
		Expect(row.Role).To(Equal("Staff"))
	})
})
