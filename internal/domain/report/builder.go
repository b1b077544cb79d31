package report

import (
	"fmt"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/period"
	"github.com/erp/backoffice/internal/domain/record"
)

// SignatureRoles are the attestation placeholders closing every report
var SignatureRoles = []string{"Prepared by", "Reviewed by", "Unit manager", "Finance manager"}

// Context bundles everything needed to build the report of one unit and
// period. Optional parts are omitted from the tree when nil or empty.
type Context struct {
	Title       string      `json:"title"`
	UnitID      record.ID   `json:"unit_id"`
	UnitName    string      `json:"unit_name"`
	PeriodLabel string      `json:"period_label"`
	Kind        record.Kind `json:"kind,omitempty"`

	Groups []period.Group          `json:"groups"`
	Totals finance.AggregateTotals `json:"totals"`

	Assignees []finance.AssigneeStat  `json:"assignees,omitempty"`
	Contracts *finance.ContractTotals `json:"contracts,omitempty"`
	Activity  *finance.ActivityTotals `json:"activity,omitempty"`
	Staff     []finance.ActivityStat  `json:"staff,omitempty"`
	Expenses  []record.Expense        `json:"expenses,omitempty"`

	// IncludeDetails appends one detail table per group
	IncludeDetails bool `json:"include_details"`
}

// RecordCount returns the number of records in the context's groups plus
// its expenses
func (c Context) RecordCount() int {
	n := len(c.Expenses)
	for _, g := range c.Groups {
		n += g.Len()
	}
	return n
}

// IsEmpty reports whether the context has no records at all
func (c Context) IsEmpty() bool {
	return c.RecordCount() == 0
}

func (c Context) unitLabel() string {
	if c.UnitName != "" {
		return c.UnitName
	}
	return fmt.Sprintf("Unit %d", c.UnitID)
}

// Build assembles the report tree of a single context. The root section
// holds, in order: the header block, the totals block, the breakdown tables
// and the signature block.
func Build(ctx Context) *Node {
	root := &Node{Kind: NodeSection, Title: ctx.Title}
	root.Children = append(root.Children, body(ctx)...)
	root.Children = append(root.Children, signatureBlock())
	return root
}

// BuildComprehensive assembles a multi-unit report. Units without records
// are skipped; every emitted unit section after the first starts on a new
// page. An overall totals block and the signature block close the report.
func BuildComprehensive(title string, units []Context) *Node {
	root := &Node{Kind: NodeSection, Title: title}

	var overall finance.AggregateTotals
	var records int64
	emitted := 0
	for _, u := range units {
		if u.IsEmpty() {
			continue
		}
		section := &Node{
			Kind:            NodeSection,
			Title:           u.unitLabel(),
			PageBreakBefore: emitted > 0,
			Children:        body(u),
		}
		root.Children = append(root.Children, section)
		overall = overall.Add(u.Totals)
		records += int64(u.RecordCount())
		emitted++
	}

	summary := totalsBlock("Overall totals", overall)
	summary.Rows = append([]Row{
		stat("Units", CountCell(int64(emitted))),
		stat("Records", CountCell(records)),
	}, summary.Rows...)
	summary.PageBreakBefore = emitted > 0
	root.Children = append(root.Children, summary, signatureBlock())
	return root
}

func body(ctx Context) []*Node {
	nodes := []*Node{headerBlock(ctx), aggregateBlock(ctx)}
	if len(ctx.Assignees) > 0 {
		nodes = append(nodes, assigneeTable(ctx.Assignees))
	}
	if len(ctx.Staff) > 0 {
		nodes = append(nodes, staffTable(ctx.Staff))
	}
	if len(ctx.Expenses) > 0 {
		nodes = append(nodes, expenseTable(ctx.Expenses))
	}
	if ctx.IncludeDetails {
		for _, g := range ctx.Groups {
			if g.IsEmpty() {
				continue
			}
			nodes = append(nodes, detailTable(g))
		}
	}
	return nodes
}

func headerBlock(ctx Context) *Node {
	rows := []Row{
		stat("Unit", LabelCell(ctx.unitLabel())),
		stat("Period", LabelCell(ctx.PeriodLabel)),
	}
	if ctx.Kind != "" {
		rows = append(rows, stat("Report", LabelCell(ctx.Kind.DisplayName())))
	}
	rows = append(rows, stat("Records", CountCell(int64(ctx.RecordCount()))))
	return statBlock("Report details", rows...)
}

func totalsBlock(title string, t finance.AggregateTotals) *Node {
	rows := []Row{
		stat("Gross internal", CurrencyCell(t.GrossInternal)),
		stat("Gross external", CurrencyCell(t.GrossExternal)),
		stat("Expenses", CurrencyCell(t.ExpensesTotal)),
		stat("Grand total", CurrencyCell(t.GrandTotal)),
		stat("Net collected", CurrencyCell(t.NetTotal)),
	}
	if t.UnknownMethodPayments > 0 {
		rows = append(rows, stat("Payments without method", CountCell(int64(t.UnknownMethodPayments))))
	}
	if t.UnclassifiedSessions > 0 {
		rows = append(rows, stat("Sessions without location", CountCell(int64(t.UnclassifiedSessions))))
	}
	return statBlock(title, rows...)
}

func aggregateBlock(ctx Context) *Node {
	block := totalsBlock("Totals", ctx.Totals)
	if c := ctx.Contracts; c != nil {
		for _, k := range c.ByKind {
			block.Rows = append(block.Rows, stat(k.Kind.DisplayName()+" contracts", CountCell(k.Count)))
		}
		block.Rows = append(block.Rows,
			stat("Cancelled", CountCell(c.Cancelled)),
			stat("Sales total", CurrencyCell(c.SalesTotal)),
			stat("Collected", CurrencyCell(c.CollectedAmount)),
			stat("Remaining", CurrencyCell(c.RemainingAmount)),
			stat("Contract net", CurrencyCell(c.NetAmount)),
		)
	}
	if a := ctx.Activity; a != nil {
		block.Rows = append(block.Rows,
			stat("Daily reports", CountCell(a.Reports)),
			stat("Calls", CountCell(a.Calls)),
			stat("Hot calls", CountCell(a.HotCalls)),
			stat("Walk-ins", CountCell(a.WalkIns)),
			stat("Leads", CountCell(a.TotalLeads())),
			stat("Visits", CountCell(a.Visits)),
		)
	}
	return block
}

func signatureBlock() *Node {
	rows := make([]Row, 0, len(SignatureRoles))
	for _, role := range SignatureRoles {
		rows = append(rows, Row{LabelCell(role), LabelCell("")})
	}
	return &Node{Kind: NodeSignatureBlock, Title: "Signatures", Rows: rows}
}
