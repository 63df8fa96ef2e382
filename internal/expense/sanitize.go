package expense

import (
	"math"

	"github.com/smartexpense/tracker/internal/extraction"
)

// Sanitize converts an untrusted candidate into a valid expense. It is the
// single gate between extraction output and the store, and it is total: each
// field falls back independently instead of failing the record, since a
// zero-amount "Other" entry still beats losing the scan entirely.
//
//	amount   finite number  else 0
//	category string         else "Other"
//	date     string         else null
//
// The ID and CreatedAt fields are left zero; the store assigns them at
// persistence time.
func Sanitize(c extraction.Candidate) Expense {
	e := Expense{Category: "Other"}

	if amount, ok := c.Amount.(float64); ok && !math.IsNaN(amount) && !math.IsInf(amount, 0) {
		e.Amount = amount
	}
	if category, ok := c.Category.(string); ok {
		e.Category = category
	}
	if date, ok := c.Date.(string); ok {
		d := date
		e.Date = &d
	}

	return e
}
