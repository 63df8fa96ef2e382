package expense

import "time"

// DateLayout is the calendar-date form used by the `date` field.
const DateLayout = "2006-01-02"

// Expense is a persisted one-time expense. The JSON field names are the
// stored wire shape and must stay compatible with existing data.
type Expense struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      *string   `json:"date"` // YYYY-MM-DD, null when not determinable
	CreatedAt time.Time `json:"createdAt"`
}

// FixedExpense is a recurring monthly obligation. It carries no date and
// counts toward every month's breakdown unconditionally.
type FixedExpense struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	IsRecurring bool      `json:"isRecurring"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Breakdown holds per-category totals and the grand total for one month.
type Breakdown struct {
	Totals     map[string]float64 `json:"totals"`
	GrandTotal float64            `json:"grandTotal"`
}
