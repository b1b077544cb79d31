package finance

import (
	"github.com/erp/backoffice/internal/domain/record"
	"github.com/shopspring/decimal"
)

// AssigneeStat is the payroll rollup of one teacher within a scope
type AssigneeStat struct {
	Key  record.AssigneeKey `json:"key"`
	Name string             `json:"name"`
	// LocationKind is the classification of the first session seen for the
	// assignee. Later sessions with another location do not change it.
	LocationKind record.LocationKind `json:"location_kind"`
	SessionCount int64               `json:"session_count"`
	TotalHours   decimal.Decimal     `json:"total_hours"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
}

// AggregateByAssignee rolls sessions up per assignee, in first-seen order.
// Non-session records are ignored.
func AggregateByAssignee(records []record.BusinessRecord) []AssigneeStat {
	index := make(map[record.AssigneeKey]int)
	var stats []AssigneeStat
	for _, s := range record.Sessions(record.Normalize(records)) {
		key := record.NormalizeAssignee(s.AssigneeName)
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, AssigneeStat{
				Key:          key,
				Name:         record.DisplayAssignee(s.AssigneeName),
				LocationKind: s.LocationKind,
			})
		}
		st := &stats[i]
		st.SessionCount++
		st.TotalHours = st.TotalHours.Add(s.DurationHours)
		st.TotalAmount = st.TotalAmount.Add(s.Amount())
	}
	return stats
}

// ExpenseStat totals the expenses booked against one assignee
type ExpenseStat struct {
	Key    record.AssigneeKey `json:"key"`
	Name   string             `json:"name"`
	Count  int64              `json:"count"`
	Amount decimal.Decimal    `json:"amount"`
}

// ExpensesByAssignee groups expenses per assignee in first-seen order.
// Unassigned expenses are grouped under the empty key.
func ExpensesByAssignee(expenses []record.Expense) []ExpenseStat {
	index := make(map[record.AssigneeKey]int)
	var stats []ExpenseStat
	for _, e := range record.NormalizeExpenses(expenses) {
		key := record.NormalizeAssignee(e.AssigneeName)
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, ExpenseStat{Key: key, Name: record.DisplayAssignee(e.AssigneeName)})
		}
		stats[i].Count++
		stats[i].Amount = stats[i].Amount.Add(e.Amount)
	}
	return stats
}
