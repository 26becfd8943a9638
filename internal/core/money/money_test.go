package money_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/finance-tracker/internal/core/money"
)

var _ = Describe("Amount", func() {
	DescribeTable("Parse",
		func(in string, want int64) {
			got, err := money.Parse(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Cents()).To(Equal(want))
		},
		Entry("integer", "12", int64(1200)),
		Entry("two decimals", "12.34", int64(1234)),
		Entry("comma separator", "12,34", int64(1234)),
		Entry("rounds down below five", "12.344", int64(1234)),
		Entry("rounds half up", "12.345", int64(1235)),
		Entry("single decimal", "0.5", int64(50)),
		Entry("leading dot", ".75", int64(75)),
		Entry("negative keeps sign", "-3", int64(-300)),
		Entry("zero", "0", int64(0)),
		Entry("sub-cent rounds to zero", "0.004", int64(0)),
		Entry("largest amount", "999999999999.99", int64(money.MaxAmount)),
		Entry("largest negative amount", "-999999999999.99", -int64(money.MaxAmount)),
	)

	DescribeTable("Parse rejects",
		func(in string) {
			_, err := money.Parse(in)
			Expect(err).To(MatchError(money.ErrInvalidAmount))
		},
		Entry("empty", ""),
		Entry("letters", "abc"),
		Entry("two dots", "1.2.3"),
		Entry("lone dot", "."),
		Entry("overflow", "999999999999999999999"),
		Entry("above the maximum", "1000000000000"),
		Entry("rounding past the maximum", "999999999999.995"),
		Entry("units near the int64 limit", "92233720368547758.99"),
		Entry("negative units near the int64 limit", "-92233720368547758.99"),
		Entry("non-ASCII fraction digit", "1.٣"),
		Entry("non-ASCII integer digit", "١٢"),
		Entry("fullwidth digit", "５"),
	)

	It("renders two decimals", func() {
		Expect(money.FromCents(1250).String()).To(Equal("12.50"))
		Expect(money.FromCents(-5).String()).To(Equal("-0.05"))
	})

	Describe("JSON", func() {
		type payload struct {
			Amount money.Amount `json:"amount"`
		}

		It("accepts numbers and strings", func() {
			var p payload
			Expect(json.Unmarshal([]byte(`{"amount": 12.5}`), &p)).To(Succeed())
			Expect(p.Amount.Cents()).To(Equal(int64(1250)))

			Expect(json.Unmarshal([]byte(`{"amount": "7.25"}`), &p)).To(Succeed())
			Expect(p.Amount.Cents()).To(Equal(int64(725)))
		})

		It("ignores null", func() {
			p := payload{Amount: 300}
			Expect(json.Unmarshal([]byte(`{"amount": null}`), &p)).To(Succeed())
			Expect(p.Amount.Cents()).To(Equal(int64(300)))
		})

		It("never turns a huge negative into a positive amount", func() {
			var p payload
			err := json.Unmarshal([]byte(`{"amount": -92233720368547758.99}`), &p)
			Expect(err).To(MatchError(money.ErrInvalidAmount))
			Expect(p.Amount.IsPositive()).To(BeFalse())
		})

		It("rejects exponent notation", func() {
			var p payload
			Expect(json.Unmarshal([]byte(`{"amount": 1e3}`), &p)).NotTo(Succeed())
		})

		It("marshals as a decimal number", func() {
			out, err := json.Marshal(payload{Amount: 1250})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal(`{"amount":12.50}`))
		})
	})
})
