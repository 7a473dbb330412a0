package ingest_test

import (
	"encoding/json"
	"os"
	"path/filepath"

	apperrors "github.com/frahmantamala/employee-sync/internal"
	"github.com/frahmantamala/employee-sync/internal/employee"
	"github.com/frahmantamala/employee-sync/internal/ingest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Loader", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	writeInput := func(content string) string {
		path := filepath.Join(dir, "employees.json")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	Describe("Load", func() {
		It("returns every element of the array", func() {
			path := writeInput(`[{"email":"a@example.com","hoursWorked":40},{"employeeNum":"E2"}]`)

			payload, err := ingest.Load(path)
			Expect(err).NotTo(HaveOccurred())
			records := payload.Records
			Expect(records).To(HaveLen(2))
			Expect(payload.Items).To(HaveLen(2))
			Expect(records[0]["email"]).To(Equal("a@example.com"))
			Expect(records[0]["hoursWorked"]).To(Equal(json.Number("40")))
			Expect(records[1]["employeeNum"]).To(Equal("E2"))
		})

		It("accepts an empty array", func() {
			payload, err := ingest.Load(writeInput(`[]`))
			Expect(err).NotTo(HaveOccurred())
			Expect(payload.Records).To(BeEmpty())
		})

		It("fails with INPUT_NOT_FOUND for a missing file", func() {
			_, err := ingest.Load(filepath.Join(dir, "missing.json"))
			Expect(apperrors.IsType(err, apperrors.ErrorTypeInputNotFound)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("missing.json"))
		})

		It("fails with INVALID_JSON for malformed content", func() {
			_, err := ingest.Load(writeInput(`[{"email": }`))
			Expect(apperrors.IsType(err, apperrors.ErrorTypeInvalidJSON)).To(BeTrue())
		})

		It("fails with INVALID_JSON for trailing content", func() {
			_, err := ingest.Load(writeInput(`[] []`))
			Expect(apperrors.IsType(err, apperrors.ErrorTypeInvalidJSON)).To(BeTrue())
		})

		It("fails with INVALID_JSON for an empty file", func() {
			_, err := ingest.Load(writeInput(``))
			Expect(apperrors.IsType(err, apperrors.ErrorTypeInvalidJSON)).To(BeTrue())
		})
	})

	Describe("Parse", func() {
		DescribeTable("rejects a top-level value that is not an array",
			func(content string) {
				_, err := ingest.Parse("input.json", []byte(content))
				Expect(apperrors.IsType(err, apperrors.ErrorTypeInvalidShape)).To(BeTrue())
			},
			Entry("object", `{"employees":[]}`),
			Entry("string", `"hello"`),
			Entry("number", `42`),
			Entry("null", `null`),
		)

		It("turns non-object elements into empty records", func() {
			payload, err := ingest.Parse("input.json", []byte(`[1, "x", null, [], {"email":"a@example.com"}]`))
			Expect(err).NotTo(HaveOccurred())
			records := payload.Records
			Expect(records).To(HaveLen(5))
			for _, rec := range records[:4] {
				Expect(rec).To(Equal(employee.RawRecord{}))
			}
			Expect(records[4]).To(HaveKeyWithValue("email", "a@example.com"))
		})
	})
})

var _ = Describe("Profile", func() {
	It("collects sorted column names and a bounded sample", func() {
		items := []any{
			map[string]any{"lastName": "A", "email": "a@example.com"},
			map[string]any{"firstName": "B"},
			map[string]any{}, map[string]any{}, map[string]any{}, map[string]any{},
			map[string]any{"zeta": true},
		}

		profile := ingest.BuildProfile(items)

		Expect(profile.Rows).To(Equal(7))
		Expect(profile.Cols).To(Equal([]string{"email", "firstName", "lastName", "zeta"}))
		Expect(profile.Sample).To(HaveLen(ingest.SampleSize))
		Expect(profile.Sample[0]).To(HaveKeyWithValue("lastName", "A"))
	})

	It("samples non-object elements verbatim", func() {
		payload, err := ingest.Parse("input.json", []byte(`[7, "x", null, {"email":"a@example.com"}]`))
		Expect(err).NotTo(HaveOccurred())

		profile := ingest.BuildProfile(payload.Items)

		Expect(profile.Rows).To(Equal(4))
		Expect(profile.Cols).To(Equal([]string{"email"}))
		Expect(profile.Sample).To(HaveLen(4))
		Expect(profile.Sample[0]).To(Equal(json.Number("7")))
		Expect(profile.Sample[1]).To(Equal("x"))
		Expect(profile.Sample[2]).To(BeNil())

		b, err := json.Marshal(profile.Sample)
		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(MatchJSON(`[7, "x", null, {"email":"a@example.com"}]`))
	})

	It("handles an empty payload", func() {
		profile := ingest.BuildProfile(nil)
		Expect(profile.Rows).To(Equal(0))
		Expect(profile.Cols).To(BeEmpty())
		Expect(profile.Sample).To(BeEmpty())
	})
})
