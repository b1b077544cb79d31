package report

import (
	"github.com/erp/backoffice/internal/domain/record"
	"github.com/shopspring/decimal"
)

// NodeKind tags a document node so renderers know how to lay it out
type NodeKind string

const (
	NodeSection        NodeKind = "section"
	NodeStatBlock      NodeKind = "statBlock"
	NodeTable          NodeKind = "table"
	NodeSignatureBlock NodeKind = "signatureBlock"
)

// CellKind tells the renderer how to format a cell value
type CellKind string

const (
	CellCurrency CellKind = "currency"
	CellCount    CellKind = "count"
	CellQuantity CellKind = "quantity" // hours and other non-money decimals
	CellLabel    CellKind = "label"
	CellDate     CellKind = "date"
)

// Cell is one table or stat value. Numeric cells carry the raw decimal in
// Value and leave formatting to the renderer; label and date cells use Text.
type Cell struct {
	Kind  CellKind        `json:"kind"`
	Text  string          `json:"text,omitempty"`
	Value decimal.Decimal `json:"value"`
}

// Row is an ordered list of cells
type Row []Cell

// Column describes one table column
type Column struct {
	Key   string   `json:"key"`
	Title string   `json:"title"`
	Kind  CellKind `json:"kind"`
}

// Node is a renderer-agnostic document node.
//
// Stat blocks hold two-cell rows (label, value). Tables hold Columns and
// Rows. Sections hold Children. Signature blocks hold one row per
// placeholder. PageBreakBefore asks paginated renderers to start the node on
// a new page.
type Node struct {
	Kind            NodeKind `json:"kind"`
	Title           string   `json:"title,omitempty"`
	PageBreakBefore bool     `json:"page_break_before,omitempty"`
	Columns         []Column `json:"columns,omitempty"`
	Rows            []Row    `json:"rows,omitempty"`
	Children        []*Node  `json:"children,omitempty"`
}

// Walk visits n and its descendants depth-first in document order. When
// visit returns false the children of that node are skipped.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// Collect returns every node of the given kind in document order
func Collect(n *Node, kind NodeKind) []*Node {
	var found []*Node
	Walk(n, func(node *Node) bool {
		if node.Kind == kind {
			found = append(found, node)
		}
		return true
	})
	return found
}

// LabelCell returns a text cell
func LabelCell(text string) Cell {
	return Cell{Kind: CellLabel, Text: text}
}

// CurrencyCell returns a money cell
func CurrencyCell(v decimal.Decimal) Cell {
	return Cell{Kind: CellCurrency, Value: v}
}

// QuantityCell returns a non-money decimal cell
func QuantityCell(v decimal.Decimal) Cell {
	return Cell{Kind: CellQuantity, Value: v}
}

// CountCell returns an integer cell
func CountCell(n int64) Cell {
	return Cell{Kind: CellCount, Value: decimal.NewFromInt(n)}
}

// DateCell returns a date cell. Parsable dates are rendered as YYYY-MM-DD,
// anything else is passed through as delivered.
func DateCell(raw string) Cell {
	if t, ok := record.ParseDate(raw); ok {
		return Cell{Kind: CellDate, Text: t.Format("2006-01-02")}
	}
	return Cell{Kind: CellDate, Text: raw}
}

func statBlock(title string, rows ...Row) *Node {
	return &Node{Kind: NodeStatBlock, Title: title, Rows: rows}
}

func stat(label string, value Cell) Row {
	return Row{LabelCell(label), value}
}

func table(title string, columns []Column, rows []Row) *Node {
	return &Node{Kind: NodeTable, Title: title, Columns: columns, Rows: rows}
}
