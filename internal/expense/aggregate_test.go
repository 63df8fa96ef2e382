package expense

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func datePtr(s string) *string {
	return &s
}

var _ = Describe("aggregate", func() {
	var (
		expenses  []*Expense
		fixed     []*FixedExpense
		month     time.Month
		year      int
		breakdown *Breakdown
	)

	BeforeEach(func() {
		month = time.March
		year = 2025
	})

	JustBeforeEach(func() {
		breakdown = aggregate(expenses, fixed, month, year)
	})

	When("records span months and a fixed expense exists", func() {
		BeforeEach(func() {
			expenses = []*Expense{
				{Amount: 10, Category: "Dining", Date: datePtr("2025-03-05")},
				{Amount: 20, Category: "Dining", Date: datePtr("2025-04-01")},
			}
			fixed = []*FixedExpense{
				{Amount: 5, Category: "Rent", IsRecurring: true},
			}
		})

		It("should count only the matching month's one-time records", func() {
			Expect(breakdown.Totals["Dining"]).To(Equal(10.0))
		})

		It("should always count the fixed record", func() {
			Expect(breakdown.Totals["Rent"]).To(Equal(5.0))
		})

		It("should sum matched and fixed amounts into the grand total", func() {
			Expect(breakdown.GrandTotal).To(Equal(15.0))
		})

		It("should not create a bucket for the excluded month", func() {
			Expect(breakdown.Totals).To(HaveLen(2))
		})
	})

	When("a one-time record has an unparsable date", func() {
		BeforeEach(func() {
			expenses = []*Expense{
				{Amount: 10, Category: "Groceries", Date: datePtr("")},
				{Amount: 7, Category: "Groceries", Date: datePtr("not-a-date")},
			}
			fixed = nil
		})

		It("should exclude it from every month", func() {
			Expect(breakdown.Totals).To(BeEmpty())
			Expect(breakdown.GrandTotal).To(Equal(0.0))
		})
	})

	When("a one-time record has a null date", func() {
		BeforeEach(func() {
			expenses = []*Expense{
				{Amount: 10, Category: "Groceries", Date: nil},
			}
			fixed = nil
		})

		It("should exclude it from the breakdown", func() {
			Expect(breakdown.Totals).To(BeEmpty())
		})
	})

	When("year differs but month matches", func() {
		BeforeEach(func() {
			expenses = []*Expense{
				{Amount: 10, Category: "Dining", Date: datePtr("2024-03-05")},
			}
			fixed = nil
		})

		It("should exclude the record", func() {
			Expect(breakdown.Totals).To(BeEmpty())
		})
	})

	When("categories differ only in case", func() {
		BeforeEach(func() {
			expenses = []*Expense{
				{Amount: 10, Category: "Groceries", Date: datePtr("2025-03-05")},
				{Amount: 4, Category: "groceries", Date: datePtr("2025-03-06")},
			}
			fixed = nil
		})

		It("should keep them as distinct buckets", func() {
			Expect(breakdown.Totals["Groceries"]).To(Equal(10.0))
			Expect(breakdown.Totals["groceries"]).To(Equal(4.0))
		})
	})

	When("fixed records predate the queried month", func() {
		BeforeEach(func() {
			expenses = nil
			fixed = []*FixedExpense{
				{Amount: 900, Category: "Rent", CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
			}
		})

		It("should still count them", func() {
			Expect(breakdown.Totals["Rent"]).To(Equal(900.0))
			Expect(breakdown.GrandTotal).To(Equal(900.0))
		})
	})

	When("both collections are empty", func() {
		BeforeEach(func() {
			expenses = nil
			fixed = nil
		})

		It("should return an empty breakdown", func() {
			Expect(breakdown.Totals).To(BeEmpty())
			Expect(breakdown.GrandTotal).To(Equal(0.0))
		})
	})
})
