package record

import "github.com/shopspring/decimal"

// Expense is a unit expense booked against an explicit year and month rather
// than a date.
type Expense struct {
	Header
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
	Year   int             `json:"year"`
	Month  int             `json:"month"`
}

// Kind implements BusinessRecord
func (e Expense) Kind() Kind { return KindExpense }

// Meta implements BusinessRecord
func (e Expense) Meta() Header { return e.Header }

// Period implements BusinessRecord
func (e Expense) Period() (int, int, bool) {
	if e.Year <= 0 || e.Month < 1 || e.Month > 12 {
		return 0, 0, false
	}
	return e.Year, e.Month, true
}

// SearchLabels implements BusinessRecord
func (e Expense) SearchLabels() []string {
	return []string{e.Title, e.AssigneeName}
}
