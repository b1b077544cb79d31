package report

import (
	"github.com/erp/backoffice/internal/domain/filter"
	"github.com/erp/backoffice/internal/domain/record"
	"github.com/erp/backoffice/internal/domain/shared"
)

// PeriodQuery selects the records whose periods are listed
type PeriodQuery struct {
	UnitID *int64 `form:"unit_id" json:"unit_id,omitempty" binding:"omitempty,min=1"`
	Kind   string `form:"kind" json:"kind,omitempty" binding:"omitempty,oneof=SESSION CONTRACT DAILY_REPORT EXPENSE"`
}

// ReportQuery selects the unit, period and records of a report. Year and
// Month are independent; leaving both out covers all time.
type ReportQuery struct {
	UnitID         *int64 `form:"unit_id" json:"unit_id,omitempty" binding:"omitempty,min=1"`
	Year           *int   `form:"year" json:"year,omitempty" binding:"omitempty,min=1"`
	Month          *int   `form:"month" json:"month,omitempty" binding:"omitempty,min=1,max=12"`
	Assignee       string `form:"assignee" json:"assignee,omitempty" binding:"max=200"`
	Search         string `form:"search" json:"search,omitempty" binding:"max=200"`
	IncludeDetails bool   `form:"details" json:"details,omitempty"`
}

func (q ReportQuery) unitID() *record.ID {
	if q.UnitID == nil {
		return nil
	}
	id := record.ID(*q.UnitID)
	return &id
}

// period returns the selected year and month, zero when unset
func (q ReportQuery) period() (int, int) {
	return deref(q.Year), deref(q.Month)
}

// criteria returns the filter for dated records of kind; an empty kind
// keeps every kind
func (q ReportQuery) criteria(kind record.Kind) filter.Criteria {
	return filter.Criteria{
		UnitID:     q.unitID(),
		Kind:       kind,
		Year:       q.Year,
		Month:      q.Month,
		Assignee:   q.Assignee,
		SearchText: q.Search,
	}
}

// expenseFilter keeps expenses matching the assignee and search text. The
// period is already applied by the source.
func (q ReportQuery) expenseFilter() filter.Predicate {
	c := filter.Criteria{Assignee: q.Assignee, SearchText: q.Search}
	return filter.All(c.Predicates()...)
}

// MergeRequest renames an assignee label inside a scope. Year and Month
// narrow the scope when set.
type MergeRequest struct {
	UnitID  *int64 `json:"unit_id,omitempty" binding:"omitempty,min=1"`
	Year    *int   `json:"year,omitempty" binding:"omitempty,min=1"`
	Month   *int   `json:"month,omitempty" binding:"omitempty,min=1,max=12"`
	OldName string `json:"old_name" binding:"required,notblank,max=200"`
	NewName string `json:"new_name" binding:"required,notblank,max=200"`

	// Authorized is resolved by the caller; the service only checks it
	Authorized bool `json:"-"`
	// IdempotencyKey identifies one apply attempt across retries
	IdempotencyKey string `json:"-"`
}

func (r MergeRequest) criteria() filter.Criteria {
	c := filter.Criteria{Year: r.Year, Month: r.Month}
	if r.UnitID != nil {
		id := record.ID(*r.UnitID)
		c.UnitID = &id
	}
	return c
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func validKind(kind string) (record.Kind, error) {
	k := record.Kind(kind)
	if kind != "" && !k.IsValid() {
		return "", shared.NewValidationError("unknown record kind " + kind)
	}
	return k, nil
}
