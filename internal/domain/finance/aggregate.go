package finance

import (
	"github.com/erp/backoffice/internal/domain/record"
	"github.com/shopspring/decimal"
)

// AggregateTotals holds the money totals of one report scope.
// GrandTotal is always GrossInternal + GrossExternal + ExpensesTotal.
type AggregateTotals struct {
	GrossInternal decimal.Decimal `json:"gross_internal"`
	GrossExternal decimal.Decimal `json:"gross_external"`
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	NetTotal      decimal.Decimal `json:"net_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	// UnknownMethodPayments counts payments whose method could not be
	// resolved and were summed at their raw amount.
	UnknownMethodPayments int `json:"unknown_method_payments"`
	// UnclassifiedSessions counts sessions with a missing or unrecognized
	// location. Their amount is carried in GrossInternal.
	UnclassifiedSessions int `json:"unclassified_sessions"`
}

// Add returns the field-wise sum of two totals
func (t AggregateTotals) Add(other AggregateTotals) AggregateTotals {
	return AggregateTotals{
		GrossInternal:         t.GrossInternal.Add(other.GrossInternal),
		GrossExternal:         t.GrossExternal.Add(other.GrossExternal),
		ExpensesTotal:         t.ExpensesTotal.Add(other.ExpensesTotal),
		NetTotal:              t.NetTotal.Add(other.NetTotal),
		GrandTotal:            t.GrandTotal.Add(other.GrandTotal),
		UnknownMethodPayments: t.UnknownMethodPayments + other.UnknownMethodPayments,
		UnclassifiedSessions:  t.UnclassifiedSessions + other.UnclassifiedSessions,
	}
}

// Aggregate computes the totals of a record scope. Sessions feed the gross
// figures by location, unclassified ones counted and added to the internal
// gross; contracts feed NetTotal, expenses feed ExpensesTotal. Records and
// expenses are deduplicated first; the caller selects the period and unit.
func Aggregate(records []record.BusinessRecord, expenses []record.Expense, methods record.PaymentMethods) AggregateTotals {
	records = record.Normalize(records)

	var t AggregateTotals
	for _, s := range record.Sessions(records) {
		switch s.LocationKind {
		case record.LocationInternal:
			t.GrossInternal = t.GrossInternal.Add(s.Amount())
		case record.LocationExternal:
			t.GrossExternal = t.GrossExternal.Add(s.Amount())
		default:
			// still paid, so GrandTotal keeps covering every session
			t.GrossInternal = t.GrossInternal.Add(s.Amount())
			t.UnclassifiedSessions++
		}
	}

	t.NetTotal, t.UnknownMethodPayments = NetTotal(record.Contracts(records), methods)
	t.ExpensesTotal = SumExpenses(expenses)
	t.GrandTotal = t.GrossInternal.Add(t.GrossExternal).Add(t.ExpensesTotal)
	return t
}

// NetTotal sums the net amount of every payment of every contract. The net
// formula is applied per payment because rates differ per method. Payments
// with an unknown method contribute their raw amount and are counted.
func NetTotal(contracts []record.Contract, methods record.PaymentMethods) (decimal.Decimal, int) {
	total := decimal.Zero
	unknown := 0
	for _, c := range record.NormalizeContracts(contracts) {
		for _, p := range c.Payments {
			net, ok := PaymentNet(p, methods)
			if !ok {
				unknown++
			}
			total = total.Add(net)
		}
	}
	return total, unknown
}

// PaymentNet returns the net amount of a single payment and whether its
// payment method was known.
func PaymentNet(p record.Payment, methods record.PaymentMethods) (decimal.Decimal, bool) {
	m, ok := methods.Lookup(p.PaymentMethodID)
	if !ok {
		return p.Amount, false
	}
	return m.NetAmount(p.Amount), true
}

// SumExpenses totals deduplicated expenses
func SumExpenses(expenses []record.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range record.NormalizeExpenses(expenses) {
		total = total.Add(e.Amount)
	}
	return total
}
