package record

// ID identifies a record within its kind. Non-positive values mean the
// upstream row carried no usable identity.
type ID int64

// Known reports whether the ID can be used to establish identity
func (id ID) Known() bool {
	return id > 0
}

// Kind represents the type of business record
type Kind string

const (
	KindSession     Kind = "SESSION"      // teacher session (payroll)
	KindContract    Kind = "CONTRACT"     // sales contract and its payments
	KindDailyReport Kind = "DAILY_REPORT" // sales staff daily activity
	KindExpense     Kind = "EXPENSE"      // unit expense for a month
)

// IsValid checks if the Kind is a valid value
func (k Kind) IsValid() bool {
	switch k {
	case KindSession, KindContract, KindDailyReport, KindExpense:
		return true
	}
	return false
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// DisplayName returns a human readable name for the Kind
func (k Kind) DisplayName() string {
	switch k {
	case KindSession:
		return "Sessions"
	case KindContract:
		return "Contracts"
	case KindDailyReport:
		return "Daily reports"
	case KindExpense:
		return "Expenses"
	default:
		return string(k)
	}
}

// AllKinds returns all valid Kind values
func AllKinds() []Kind {
	return []Kind{KindSession, KindContract, KindDailyReport, KindExpense}
}

// Header holds the fields shared by every business record
type Header struct {
	ID     ID `json:"id"`
	UnitID ID `json:"unit_id"`
	// OccurredOn is the raw date as delivered upstream. It may be empty or
	// unparsable; see ParseDate.
	OccurredOn   string `json:"occurred_on"`
	AssigneeName string `json:"assignee_name"`
}

// Ref addresses a single record across kinds
type Ref struct {
	Kind Kind `json:"kind"`
	ID   ID   `json:"id"`
}

// BusinessRecord is implemented by Session, Contract, DailyReport and Expense.
// Implementations are value types; the core never mutates them.
type BusinessRecord interface {
	Kind() Kind
	Meta() Header
	// Period returns the calendar year and month (1-12) the record belongs to.
	// ok is false when no period can be derived.
	Period() (year, month int, ok bool)
	// SearchLabels returns the free-text fields free-text search looks at.
	SearchLabels() []string
}

// RefOf returns the cross-kind reference of r
func RefOf(r BusinessRecord) Ref {
	return Ref{Kind: r.Kind(), ID: r.Meta().ID}
}

// periodFromDate derives the period of a dated record
func periodFromDate(raw string) (int, int, bool) {
	t, ok := ParseDate(raw)
	if !ok {
		return 0, 0, false
	}
	return t.Year(), int(t.Month()), true
}
