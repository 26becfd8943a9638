package validation_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
)

var _ = Describe("ValidationBuilder", func() {
	It("passes when every rule holds", func() {
		v := validation.NewValidator()
		v.Field("title", "Holiday").Required().MaxLength(10)
		v.Field("amount", money.Amount(100)).PositiveAmount()
		Expect(v.Validate()).To(BeNil())
	})

	It("treats whitespace as missing", func() {
		v := validation.NewValidator()
		v.Field("username", "   ").Required()

		err := v.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.Type).To(Equal(errors.ErrorTypeValidation))
		Expect(err.Message).To(Equal("username is required"))
	})

	It("collects one detail per failing field", func() {
		v := validation.NewValidator()
		v.Field("amount", money.Amount(0)).PositiveAmount()
		v.Field("email", "nope").Email()

		err := v.Validate()
		Expect(err).NotTo(BeNil())
		details, ok := err.Details.(errors.ValidationErrors)
		Expect(ok).To(BeTrue())
		Expect(details.Errors).To(HaveLen(2))
		Expect(details.Errors[0].Code).To(Equal(string(errors.ErrCodeInvalidAmount)))
		Expect(details.Errors[1].Field).To(Equal("email"))
	})
})

var _ = DescribeTable("LooksLikeEmail",
	func(in string, want bool) {
		Expect(validation.LooksLikeEmail(in)).To(Equal(want))
	},
	Entry("plain", "a@x.com", true),
	Entry("no at", "ax.com", false),
	Entry("empty local", "@x.com", false),
	Entry("empty domain", "a@", false),
	Entry("two ats", "a@b@c", false),
	Entry("spaces", "a b@x.com", false),
)

var _ = Describe("ParseDate", func() {
	It("accepts calendar dates and timestamps", func() {
		d, err := validation.ParseDate("date", "2024-03-01")
		Expect(err).To(BeNil())
		Expect(d).To(Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

		ts, err := validation.ParseDate("date", "2024-03-01T10:00:00+02:00")
		Expect(err).To(BeNil())
		Expect(ts.Hour()).To(Equal(8))
	})

	It("rejects anything else", func() {
		_, err := validation.ParseDate("deadline", "03/01/2024")
		Expect(err).NotTo(BeNil())
		Expect(err.Message).To(ContainSubstring("deadline"))
	})
})

var _ = It("normalizes names", func() {
	Expect(validation.NormalizeName("  Food ")).To(Equal("food"))
})
