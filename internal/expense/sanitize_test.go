package expense

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smartexpense/tracker/internal/extraction"
)

var _ = Describe("Sanitize", func() {
	var (
		candidate extraction.Candidate
		result    Expense
	)

	JustBeforeEach(func() {
		result = Sanitize(candidate)
	})

	When("the candidate is fully valid", func() {
		BeforeEach(func() {
			candidate = extraction.Candidate{Amount: 12.5, Category: "Dining", Date: "2025-01-01"}
		})

		It("should pass the amount through unchanged", func() {
			Expect(result.Amount).To(Equal(12.5))
		})

		It("should pass the category through unchanged", func() {
			Expect(result.Category).To(Equal("Dining"))
		})

		It("should pass the date through unchanged", func() {
			Expect(result.Date).NotTo(BeNil())
			Expect(*result.Date).To(Equal("2025-01-01"))
		})
	})

	When("every field is wrong-typed", func() {
		BeforeEach(func() {
			candidate = extraction.Candidate{Amount: "free", Category: nil, Date: 7.0}
		})

		It("should default the amount to zero", func() {
			Expect(result.Amount).To(Equal(0.0))
		})

		It("should default the category to Other", func() {
			Expect(result.Category).To(Equal("Other"))
		})

		It("should default the date to null", func() {
			Expect(result.Date).To(BeNil())
		})
	})

	When("the candidate is empty", func() {
		BeforeEach(func() {
			candidate = extraction.Candidate{}
		})

		It("should produce the fully defaulted record", func() {
			Expect(result.Amount).To(Equal(0.0))
			Expect(result.Category).To(Equal("Other"))
			Expect(result.Date).To(BeNil())
		})
	})

	When("the amount is NaN", func() {
		BeforeEach(func() {
			candidate = extraction.Candidate{Amount: math.NaN()}
		})

		It("should default the amount to zero", func() {
			Expect(result.Amount).To(Equal(0.0))
		})
	})

	When("the amount is infinite", func() {
		BeforeEach(func() {
			candidate = extraction.Candidate{Amount: math.Inf(1)}
		})

		It("should default the amount to zero", func() {
			Expect(result.Amount).To(Equal(0.0))
		})
	})

	When("the category is a number", func() {
		BeforeEach(func() {
			candidate = extraction.Candidate{Amount: 3.0, Category: 42.0, Date: "2025-02-02"}
		})

		It("should default the category but keep the other fields", func() {
			Expect(result.Category).To(Equal("Other"))
			Expect(result.Amount).To(Equal(3.0))
			Expect(*result.Date).To(Equal("2025-02-02"))
		})
	})

	When("the date is a number", func() {
		BeforeEach(func() {
			candidate = extraction.Candidate{Date: 2025.0}
		})

		It("should default the date to null", func() {
			Expect(result.Date).To(BeNil())
		})
	})

	Describe("idempotence", func() {
		// Re-sanitizing any sanitized record must be a no-op
		inputs := []extraction.Candidate{
			{},
			{Amount: "abc"},
			{Amount: math.NaN()},
			{Category: 42.0},
			{Date: 2025.0},
			{Amount: 12.5, Category: "Dining", Date: "2025-01-01"},
		}

		It("should satisfy Sanitize(Sanitize(x)) == Sanitize(x)", func() {
			for _, c := range inputs {
				once := Sanitize(c)

				again := extraction.Candidate{Amount: once.Amount, Category: once.Category}
				if once.Date != nil {
					again.Date = *once.Date
				}
				twice := Sanitize(again)

				Expect(twice.Amount).To(Equal(once.Amount))
				Expect(twice.Category).To(Equal(once.Category))
				if once.Date == nil {
					Expect(twice.Date).To(BeNil())
				} else {
					Expect(*twice.Date).To(Equal(*once.Date))
				}
			}
		})
	})
})
