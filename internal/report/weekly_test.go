package report_test

import (
	"github.com/frahmantamala/employee-sync/internal/employee"
	"github.com/frahmantamala/employee-sync/internal/report"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func rec(email, num string, hours float64) employee.Record {
	r := employee.Record{HoursWorked: hours}
	if email != "" {
		r.Email = &email
	}
	if num != "" {
		r.EmployeeNum = &num
	}
	return r
}

var _ = Describe("Weekly summary", func() {
	DescribeTable("Classify",
		func(total float64, expected report.Status) {
			Expect(report.Classify(total, 40)).To(Equal(expected))
		},
		Entry("at threshold", 40.0, report.StatusPass),
		Entry("overtime", 52.0, report.StatusPass),
		Entry("just under", 39.99, report.StatusWarn),
		Entry("small", 0.01, report.StatusWarn),
		Entry("zero", 0.0, report.StatusFail),
	)

	It("sums repeated keys in first-seen order", func() {
		entries := report.Summarize([]employee.Record{
			rec("b@example.com", "", 10),
			rec("a@example.com", "", 40),
			rec("b@example.com", "", 15),
			rec("", "E9", 0),
		}, 40)

		Expect(entries).To(Equal([]report.WeeklyEntry{
			{Key: "b@example.com", TotalHours: 25, ExpectedHours: 40, Delta: -15, Status: report.StatusWarn},
			{Key: "a@example.com", TotalHours: 40, ExpectedHours: 40, Delta: 0, Status: report.StatusPass},
			{Key: "E9", TotalHours: 0, ExpectedHours: 40, Delta: -40, Status: report.StatusFail},
		}))
	})

	It("keys on email even when employeeNum is present", func() {
		entries := report.Summarize([]employee.Record{
			rec("a@example.com", "E1", 20),
			rec("", "E1", 20),
		}, 40)

		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Key).To(Equal("a@example.com"))
		Expect(entries[1].Key).To(Equal("E1"))
	})

	It("avoids float drift when summing", func() {
		entries := report.Summarize([]employee.Record{
			rec("a@example.com", "", 0.1),
			rec("a@example.com", "", 0.2),
		}, 0.3)

		Expect(entries[0].TotalHours).To(Equal(0.3))
		Expect(entries[0].Status).To(Equal(report.StatusPass))
	})

	It("honours a custom expected threshold", func() {
		entries := report.Summarize([]employee.Record{rec("a@example.com", "", 30)}, 30)
		Expect(entries[0].Status).To(Equal(report.StatusPass))
		Expect(entries[0].ExpectedHours).To(Equal(30.0))
	})

	It("returns no entries for no records", func() {
		Expect(report.Summarize(nil, 40)).To(BeEmpty())
	})

	It("tallies statuses", func() {
		tally := report.CountStatuses([]report.WeeklyEntry{
			{Status: report.StatusPass},
			{Status: report.StatusWarn},
			{Status: report.StatusWarn},
			{Status: report.StatusFail},
		})
		Expect(tally).To(Equal(report.Tally{Pass: 1, Warn: 2, Fail: 1}))
	})
})
