package expense

import "time"

// aggregate computes per-category totals for one month. One-time expenses
// count only when their date parses and lands exactly in the requested
// month; records with an absent or unparsable date are silently excluded
// here but remain visible in unfiltered listings. Fixed expenses count
// unconditionally, whatever their creation time: a standing obligation is
// not a dated event.
//
// Category keys are case-sensitive and not normalized; the extraction prompt
// keeps them on a closed vocabulary in practice.
func aggregate(expenses []*Expense, fixed []*FixedExpense, month time.Month, year int) *Breakdown {
	breakdown := &Breakdown{Totals: make(map[string]float64)}

	for _, e := range expenses {
		if e.Date == nil {
			continue
		}
		date, err := time.Parse(DateLayout, *e.Date)
		if err != nil {
			continue
		}
		if date.Month() != month || date.Year() != year {
			continue
		}
		breakdown.Totals[e.Category] += e.Amount
		breakdown.GrandTotal += e.Amount
	}

	for _, f := range fixed {
		breakdown.Totals[f.Category] += f.Amount
		breakdown.GrandTotal += f.Amount
	}

	return breakdown
}
