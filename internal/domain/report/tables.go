package report

import (
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/period"
	"github.com/erp/backoffice/internal/domain/record"
	"github.com/shopspring/decimal"
)

var (
	assigneeColumns = []Column{
		{Key: "name", Title: "Name", Kind: CellLabel},
		{Key: "location", Title: "Location", Kind: CellLabel},
		{Key: "sessions", Title: "Sessions", Kind: CellCount},
		{Key: "hours", Title: "Hours", Kind: CellQuantity},
		{Key: "amount", Title: "Amount", Kind: CellCurrency},
	}
	staffColumns = []Column{
		{Key: "name", Title: "Name", Kind: CellLabel},
		{Key: "reports", Title: "Reports", Kind: CellCount},
		{Key: "calls", Title: "Calls", Kind: CellCount},
		{Key: "hot_calls", Title: "Hot calls", Kind: CellCount},
		{Key: "walk_ins", Title: "Walk-ins", Kind: CellCount},
		{Key: "leads", Title: "Leads", Kind: CellCount},
		{Key: "visits", Title: "Visits", Kind: CellCount},
	}
	expenseColumns = []Column{
		{Key: "title", Title: "Title", Kind: CellLabel},
		{Key: "assignee", Title: "Assignee", Kind: CellLabel},
		{Key: "amount", Title: "Amount", Kind: CellCurrency},
	}
	sessionColumns = []Column{
		{Key: "date", Title: "Date", Kind: CellDate},
		{Key: "assignee", Title: "Teacher", Kind: CellLabel},
		{Key: "student", Title: "Student", Kind: CellLabel},
		{Key: "location", Title: "Location", Kind: CellLabel},
		{Key: "hours", Title: "Hours", Kind: CellQuantity},
		{Key: "rate", Title: "Rate", Kind: CellCurrency},
		{Key: "amount", Title: "Amount", Kind: CellCurrency},
	}
	contractColumns = []Column{
		{Key: "date", Title: "Date", Kind: CellDate},
		{Key: "number", Title: "Contract", Kind: CellLabel},
		{Key: "assignee", Title: "Sales", Kind: CellLabel},
		{Key: "customer", Title: "Customer", Kind: CellLabel},
		{Key: "kind", Title: "Type", Kind: CellLabel},
		{Key: "total", Title: "Total", Kind: CellCurrency},
		{Key: "paid", Title: "Paid", Kind: CellCurrency},
		{Key: "remaining", Title: "Remaining", Kind: CellCurrency},
	}
	dailyReportColumns = []Column{
		{Key: "date", Title: "Date", Kind: CellDate},
		{Key: "assignee", Title: "Staff", Kind: CellLabel},
		{Key: "calls", Title: "Calls", Kind: CellCount},
		{Key: "hot_calls", Title: "Hot calls", Kind: CellCount},
		{Key: "walk_ins", Title: "Walk-ins", Kind: CellCount},
		{Key: "leads", Title: "Leads", Kind: CellCount},
		{Key: "visits", Title: "Visits", Kind: CellCount},
	}
)

func assigneeTable(stats []finance.AssigneeStat) *Node {
	rows := make([]Row, 0, len(stats)+1)
	var sessions int64
	hours, amount := decimal.Zero, decimal.Zero
	for _, s := range stats {
		rows = append(rows, Row{
			LabelCell(s.Name),
			LabelCell(s.LocationKind.DisplayName()),
			CountCell(s.SessionCount),
			QuantityCell(s.TotalHours),
			CurrencyCell(s.TotalAmount),
		})
		sessions += s.SessionCount
		hours = hours.Add(s.TotalHours)
		amount = amount.Add(s.TotalAmount)
	}
	rows = append(rows, Row{LabelCell("Total"), LabelCell(""), CountCell(sessions), QuantityCell(hours), CurrencyCell(amount)})
	return table("Teachers", assigneeColumns, rows)
}

func staffTable(stats []finance.ActivityStat) *Node {
	rows := make([]Row, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, Row{
			LabelCell(s.Name),
			CountCell(s.Reports),
			CountCell(s.Calls),
			CountCell(s.HotCalls),
			CountCell(s.WalkIns),
			CountCell(s.TotalLeads()),
			CountCell(s.Visits),
		})
	}
	return table("Staff activity", staffColumns, rows)
}

func expenseTable(expenses []record.Expense) *Node {
	expenses = record.NormalizeExpenses(expenses)
	rows := make([]Row, 0, len(expenses)+1)
	for _, e := range expenses {
		rows = append(rows, Row{LabelCell(e.Title), LabelCell(record.DisplayAssignee(e.AssigneeName)), CurrencyCell(e.Amount)})
	}
	rows = append(rows, Row{LabelCell("Total"), LabelCell(""), CurrencyCell(finance.SumExpenses(expenses))})
	return table("Expenses", expenseColumns, rows)
}

func detailTable(g period.Group) *Node {
	title := g.Kind.DisplayName() + " - " + g.Label
	switch g.Kind {
	case record.KindSession:
		return table(title, sessionColumns, sessionRows(record.Sessions(g.Records)))
	case record.KindContract:
		return table(title, contractColumns, contractRows(record.Contracts(g.Records)))
	case record.KindDailyReport:
		return table(title, dailyReportColumns, dailyReportRows(record.DailyReports(g.Records)))
	default:
		return table(title, expenseColumns, expenseDetailRows(record.Expenses(g.Records)))
	}
}

func sessionRows(sessions []record.Session) []Row {
	rows := make([]Row, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, Row{
			DateCell(s.OccurredOn),
			LabelCell(record.DisplayAssignee(s.AssigneeName)),
			LabelCell(s.StudentName),
			LabelCell(s.LocationKind.DisplayName()),
			QuantityCell(s.DurationHours),
			CurrencyCell(s.HourlyRate),
			CurrencyCell(s.Amount()),
		})
	}
	return rows
}

func contractRows(contracts []record.Contract) []Row {
	rows := make([]Row, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, Row{
			DateCell(c.OccurredOn),
			LabelCell(c.ContractNumber),
			LabelCell(record.DisplayAssignee(c.AssigneeName)),
			LabelCell(c.CustomerName),
			LabelCell(c.ContractKind.DisplayName()),
			CurrencyCell(c.TotalAmount),
			CurrencyCell(c.PaidAmount),
			CurrencyCell(c.RemainingAmount),
		})
	}
	return rows
}

func dailyReportRows(reports []record.DailyReport) []Row {
	rows := make([]Row, 0, len(reports))
	for _, d := range reports {
		rows = append(rows, Row{
			DateCell(d.OccurredOn),
			LabelCell(record.DisplayAssignee(d.AssigneeName)),
			CountCell(d.Calls),
			CountCell(d.HotCalls),
			CountCell(d.WalkIns),
			CountCell(d.TotalLeads()),
			CountCell(d.TotalVisits()),
		})
	}
	return rows
}

func expenseDetailRows(expenses []record.Expense) []Row {
	rows := make([]Row, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, Row{LabelCell(e.Title), LabelCell(record.DisplayAssignee(e.AssigneeName)), CurrencyCell(e.Amount)})
	}
	return rows
}
