package report

import (
	"cmp"
	"context"
	"slices"

	"github.com/erp/backoffice/internal/domain/filter"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/period"
	"github.com/erp/backoffice/internal/domain/record"
	"github.com/erp/backoffice/internal/domain/report"
	"github.com/erp/backoffice/internal/domain/shared"
)

// Report titles
const (
	TitlePayroll       = "Teacher payroll"
	TitleContracts     = "Contracts report"
	TitleActivity      = "Daily activity report"
	TitleComprehensive = "Comprehensive report"
)

// Statistics is the flat summary of a scope, without a report tree
type Statistics struct {
	PeriodLabel string                  `json:"period_label"`
	RecordCount int                     `json:"record_count"`
	Totals      finance.AggregateTotals `json:"totals"`
	Contracts   finance.ContractTotals  `json:"contracts"`
	Activity    finance.ActivityTotals  `json:"activity"`
	Assignees   []finance.AssigneeStat  `json:"assignees"`
	Staff       []finance.ActivityStat  `json:"staff"`
	Expenses    []finance.ExpenseStat   `json:"expenses"`
}

// AvailablePeriods lists the years and months records exist for
func (s *ReportService) AvailablePeriods(ctx context.Context, q PeriodQuery) (period.Available, error) {
	kind, err := validKind(q.Kind)
	if err != nil {
		return period.Available{}, err
	}
	var unitID *record.ID
	if q.UnitID != nil {
		id := record.ID(*q.UnitID)
		unitID = &id
	}

	var records []record.BusinessRecord
	if kind != record.KindExpense {
		kinds := []record.Kind{kind}
		if kind == "" {
			kinds = nil
		}
		if records, err = s.loadRecords(ctx, unitID, 0, 0, kinds...); err != nil {
			return period.Available{}, err
		}
		s.warnUndated("available_periods", records)
	}
	if kind == "" || kind == record.KindExpense {
		expenses, err := s.loadExpenses(ctx, unitID, 0, 0)
		if err != nil {
			return period.Available{}, err
		}
		records = append(records, record.Of(expenses)...)
	}
	return period.AvailableYearsAndMonths(records), nil
}

// SessionPayroll builds the payroll report of one unit: teacher totals by
// location plus the unit's expenses
func (s *ReportService) SessionPayroll(ctx context.Context, q ReportQuery) (*report.Node, error) {
	rc, err := s.singleUnit(ctx, "session_payroll", q, record.KindSession, TitlePayroll, true)
	if err != nil {
		return nil, err
	}
	return report.Build(rc), nil
}

// ContractReport builds the contract report of one unit
func (s *ReportService) ContractReport(ctx context.Context, q ReportQuery) (*report.Node, error) {
	rc, err := s.singleUnit(ctx, "contract_report", q, record.KindContract, TitleContracts, false)
	if err != nil {
		return nil, err
	}
	return report.Build(rc), nil
}

// ActivityReport builds the daily activity report of one unit
func (s *ReportService) ActivityReport(ctx context.Context, q ReportQuery) (*report.Node, error) {
	rc, err := s.singleUnit(ctx, "activity_report", q, record.KindDailyReport, TitleActivity, false)
	if err != nil {
		return nil, err
	}
	return report.Build(rc), nil
}

func (s *ReportService) singleUnit(ctx context.Context, op string, q ReportQuery, kind record.Kind, title string, withExpenses bool) (report.Context, error) {
	if q.UnitID == nil {
		return report.Context{}, shared.NewValidationError("unit_id is required")
	}
	crit := q.criteria(kind)
	if err := crit.Validate(); err != nil {
		return report.Context{}, err
	}
	unitID := record.ID(*q.UnitID)
	year, month := q.period()

	records, err := s.loadRecords(ctx, &unitID, year, month, kind)
	if err != nil {
		return report.Context{}, err
	}
	s.warnUndated(op, records)

	var expenses []record.Expense
	if withExpenses {
		if expenses, err = s.loadExpenses(ctx, &unitID, year, month); err != nil {
			return report.Context{}, err
		}
		expenses = filter.SelectTyped(expenses, q.expenseFilter())
	}

	var methods record.PaymentMethods
	if kind == record.KindContract {
		if methods, err = s.loadMethods(ctx); err != nil {
			return report.Context{}, err
		}
	}
	units, err := s.loadUnits(ctx)
	if err != nil {
		return report.Context{}, err
	}

	// crit keeps only the unit and kind, so every group belongs to the report
	groups := period.GroupByUnitAndMonth(filter.Apply(records, crit), period.WithLocale(s.opts.Locale))

	rc := s.compile(op, unitID, record.NewUnitNames(units).Name(unitID), q, groups, expenses, methods)
	rc.Title = title
	rc.Kind = kind
	switch kind {
	case record.KindContract:
		if rc.Contracts == nil {
			rc.Contracts = &finance.ContractTotals{}
		}
	case record.KindDailyReport:
		if rc.Activity == nil {
			rc.Activity = &finance.ActivityTotals{}
		}
	}
	return rc, nil
}

// Comprehensive builds one section per unit with records in the period,
// followed by the overall totals. Without a unit every unit is included.
func (s *ReportService) Comprehensive(ctx context.Context, q ReportQuery) (*report.Node, error) {
	const op = "comprehensive"
	crit := q.criteria("")
	if err := crit.Validate(); err != nil {
		return nil, err
	}

	scoped, expenses, methods, units, err := s.loadScope(ctx, op, q, crit)
	if err != nil {
		return nil, err
	}
	groups := period.GroupByUnitAndMonth(scoped, period.WithLocale(s.opts.Locale))

	names := record.NewUnitNames(units)
	var contexts []report.Context
	for _, id := range unitOrder(units, groups, expenses, q.unitID()) {
		var unitGroups []period.Group
		for _, g := range groups {
			if g.UnitID == id {
				unitGroups = append(unitGroups, g)
			}
		}
		unitExpenses := filter.SelectTyped(expenses, filter.ByUnit(id))
		rc := s.compile(op, id, names.Name(id), q, unitGroups, unitExpenses, methods)
		contexts = append(contexts, rc)
	}

	return report.BuildComprehensive(TitleComprehensive, contexts), nil
}

// Statistics summarizes a period across one or all units without building
// a tree
func (s *ReportService) Statistics(ctx context.Context, q ReportQuery) (*Statistics, error) {
	const op = "statistics"
	crit := q.criteria("")
	if err := crit.Validate(); err != nil {
		return nil, err
	}

	scoped, expenses, methods, _, err := s.loadScope(ctx, op, q, crit)
	if err != nil {
		return nil, err
	}
	scoped = record.Normalize(scoped)
	expenses = record.NormalizeExpenses(expenses)

	totals := finance.Aggregate(scoped, expenses, methods)
	s.warnTotals(op, totals)
	reports := record.DailyReports(scoped)

	return &Statistics{
		PeriodLabel: period.ScopeLabel(s.opts.Locale, q.Year, q.Month),
		RecordCount: len(scoped) + len(expenses),
		Totals:      totals,
		Contracts:   finance.SummarizeContracts(record.Contracts(scoped), methods),
		Activity:    finance.AggregateActivity(reports),
		Assignees:   finance.AggregateByAssignee(scoped),
		Staff:       finance.ActivityByAssignee(reports),
		Expenses:    finance.ExpensesByAssignee(expenses),
	}, nil
}

// loadScope fetches every kind for the query and applies its filter
func (s *ReportService) loadScope(ctx context.Context, op string, q ReportQuery, crit filter.Criteria) ([]record.BusinessRecord, []record.Expense, record.PaymentMethods, []record.Unit, error) {
	var methods record.PaymentMethods
	year, month := q.period()
	records, err := s.loadRecords(ctx, q.unitID(), year, month, record.KindSession, record.KindContract, record.KindDailyReport)
	if err != nil {
		return nil, nil, methods, nil, err
	}
	s.warnUndated(op, records)

	expenses, err := s.loadExpenses(ctx, q.unitID(), year, month)
	if err != nil {
		return nil, nil, methods, nil, err
	}
	if methods, err = s.loadMethods(ctx); err != nil {
		return nil, nil, methods, nil, err
	}
	units, err := s.loadUnits(ctx)
	if err != nil {
		return nil, nil, methods, nil, err
	}

	return filter.Apply(records, crit), filter.SelectTyped(expenses, q.expenseFilter()), methods, units, nil
}

// compile runs the domain core over one unit's groups and expenses
func (s *ReportService) compile(op string, unitID record.ID, unitName string, q ReportQuery, groups []period.Group, expenses []record.Expense, methods record.PaymentMethods) report.Context {
	records := period.Records(groups)
	rc := report.Context{
		Title:          unitName,
		UnitID:         unitID,
		UnitName:       unitName,
		PeriodLabel:    period.ScopeLabel(s.opts.Locale, q.Year, q.Month),
		Groups:         groups,
		Totals:         finance.Aggregate(records, expenses, methods),
		Assignees:      finance.AggregateByAssignee(records),
		Expenses:       record.NormalizeExpenses(expenses),
		IncludeDetails: q.IncludeDetails,
	}
	s.warnTotals(op, rc.Totals)

	if contracts := record.Contracts(records); len(contracts) > 0 {
		ct := finance.SummarizeContracts(contracts, methods)
		rc.Contracts = &ct
	}
	if reports := record.DailyReports(records); len(reports) > 0 {
		at := finance.AggregateActivity(reports)
		rc.Activity = &at
		rc.Staff = finance.ActivityByAssignee(reports)
	}
	return rc
}

// unitOrder lists the units of a comprehensive report: known units by ID,
// then IDs that only appear in the data. only restricts the list to one unit.
func unitOrder(units []record.Unit, groups []period.Group, expenses []record.Expense, only *record.ID) []record.ID {
	seen := make(map[record.ID]struct{})
	var ids []record.ID
	add := func(id record.ID) {
		if only != nil && id != *only {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	sorted := slices.Clone(units)
	slices.SortFunc(sorted, func(a, b record.Unit) int { return cmp.Compare(a.ID, b.ID) })
	for _, u := range sorted {
		add(u.ID)
	}

	var extra []record.ID
	for _, id := range period.Units(groups) {
		if _, ok := seen[id]; !ok {
			extra = append(extra, id)
		}
	}
	for _, e := range expenses {
		if _, ok := seen[e.UnitID]; !ok && !slices.Contains(extra, e.UnitID) {
			extra = append(extra, e.UnitID)
		}
	}
	slices.Sort(extra)
	for _, id := range extra {
		add(id)
	}
	return ids
}
