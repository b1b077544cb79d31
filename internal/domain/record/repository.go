package record

import "context"

// Query narrows a record fetch. Zero fields impose no constraint.
//
// Expenses match Year and Month exactly. Dated records are prefiltered on
// the raw date text with PeriodPrefixes, so a store may return a superset;
// the core places them in periods with ParseDate. Month without Year does
// not narrow dated records.
type Query struct {
	UnitID *ID
	Kinds  []Kind
	Year   int
	Month  int
	// Limit caps the number of rows fetched per kind. Callers pass their
	// batch bound plus one to detect oversized batches.
	Limit int
}

// Wants reports whether kind k is requested
func (q Query) Wants(k Kind) bool {
	if len(q.Kinds) == 0 {
		return true
	}
	for _, want := range q.Kinds {
		if want == k {
			return true
		}
	}
	return false
}

// Repository loads business records and applies assignee renames
type Repository interface {
	// FindRecords returns sessions, contracts and daily reports
	FindRecords(ctx context.Context, q Query) ([]BusinessRecord, error)
	FindExpenses(ctx context.Context, q Query) ([]Expense, error)
	FindPaymentMethods(ctx context.Context) ([]PaymentMethod, error)
	FindUnits(ctx context.Context) ([]Unit, error)
	// RenameAssignee sets the assignee label of every target in one
	// transaction and returns the number of rows changed
	RenameAssignee(ctx context.Context, targets []Ref, newName string) (int64, error)
}
