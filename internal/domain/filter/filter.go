package filter

import (
	"fmt"
	"strings"

	"github.com/erp/backoffice/internal/domain/record"
	"github.com/erp/backoffice/internal/domain/shared"
	"golang.org/x/text/cases"
)

// Predicate decides whether a record passes a filter stage
type Predicate func(record.BusinessRecord) bool

// Criteria selects records. Every unset field imposes no constraint; set
// fields combine with AND.
type Criteria struct {
	UnitID   *record.ID  `json:"unit_id,omitempty"`
	Assignee string      `json:"assignee,omitempty"`
	Kind     record.Kind `json:"kind,omitempty"`
	// Year and Month match independently: giving only Month selects that
	// month in every year.
	Year       *int   `json:"year,omitempty"`
	Month      *int   `json:"month,omitempty"`
	SearchText string `json:"search_text,omitempty"`
}

// Validate checks the criteria for values no record could ever match
func (c Criteria) Validate() error {
	if c.Month != nil && (*c.Month < 1 || *c.Month > 12) {
		return shared.NewValidationError(fmt.Sprintf("month must be between 1 and 12, got %d", *c.Month))
	}
	if c.Year != nil && *c.Year <= 0 {
		return shared.NewValidationError(fmt.Sprintf("year must be positive, got %d", *c.Year))
	}
	if c.Kind != "" && !c.Kind.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("unknown record kind %q", c.Kind))
	}
	return nil
}

// IsEmpty reports whether the criteria select everything
func (c Criteria) IsEmpty() bool {
	return len(c.Predicates()) == 0
}

// Predicates returns the predicate chain for the set fields
func (c Criteria) Predicates() []Predicate {
	var preds []Predicate
	if c.UnitID != nil {
		preds = append(preds, ByUnit(*c.UnitID))
	}
	if c.Kind != "" {
		preds = append(preds, ByKind(c.Kind))
	}
	if key := record.NormalizeAssignee(c.Assignee); !key.IsEmpty() {
		preds = append(preds, ByAssignee(key))
	}
	if c.Year != nil {
		preds = append(preds, ByYear(*c.Year))
	}
	if c.Month != nil {
		preds = append(preds, ByMonth(*c.Month))
	}
	if strings.TrimSpace(c.SearchText) != "" {
		preds = append(preds, BySearch(c.SearchText))
	}
	return preds
}

// Apply returns the records matching criteria as a new slice, in input order
func Apply(records []record.BusinessRecord, c Criteria) []record.BusinessRecord {
	return Select(records, All(c.Predicates()...))
}

// Select returns the records for which keep returns true
func Select(records []record.BusinessRecord, keep Predicate) []record.BusinessRecord {
	out := make([]record.BusinessRecord, 0, len(records))
	for _, r := range records {
		if r != nil && keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// SelectTyped is Select for a typed slice
func SelectTyped[T record.BusinessRecord](items []T, keep Predicate) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// All combines predicates with AND. No predicates accepts everything.
func All(preds ...Predicate) Predicate {
	return func(r record.BusinessRecord) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// ByUnit keeps records of one unit
func ByUnit(unitID record.ID) Predicate {
	return func(r record.BusinessRecord) bool {
		return r.Meta().UnitID == unitID
	}
}

// ByKind keeps records of one kind
func ByKind(kind record.Kind) Predicate {
	return func(r record.BusinessRecord) bool {
		return r.Kind() == kind
	}
}

// ByAssignee keeps records attributed to the given assignee identity
func ByAssignee(key record.AssigneeKey) Predicate {
	return func(r record.BusinessRecord) bool {
		return record.AssigneeOf(r) == key
	}
}

// ByYear keeps records whose period falls in year. Records without a period
// never match.
func ByYear(year int) Predicate {
	return func(r record.BusinessRecord) bool {
		y, _, ok := r.Period()
		return ok && y == year
	}
}

// ByMonth keeps records whose period falls in month of any year
func ByMonth(month int) Predicate {
	return func(r record.BusinessRecord) bool {
		_, m, ok := r.Period()
		return ok && m == month
	}
}

// BySearch keeps records where any search label contains text, ignoring case
func BySearch(text string) Predicate {
	needle := fold(strings.TrimSpace(text))
	return func(r record.BusinessRecord) bool {
		for _, label := range r.SearchLabels() {
			if label == "" {
				continue
			}
			if strings.Contains(fold(label), needle) {
				return true
			}
		}
		return false
	}
}

// fold case-folds s. Casers carry state, so a fresh one is used per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
