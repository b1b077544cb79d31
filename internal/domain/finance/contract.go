package finance

import (
	"github.com/erp/backoffice/internal/domain/record"
	"github.com/shopspring/decimal"
)

// KindCount counts contracts of one kind
type KindCount struct {
	Kind  record.ContractKind `json:"kind"`
	Count int64               `json:"count"`
}

// ContractTotals summarizes a set of contracts along their cancellation
// chains. A CANCELLATION record voids its parent; both are left out of the
// money figures and counted in Cancelled instead.
type ContractTotals struct {
	ByKind          []KindCount     `json:"by_kind"`
	Cancelled       int64           `json:"cancelled"`
	SalesTotal      decimal.Decimal `json:"sales_total"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	// UnknownMethodPayments counts payments summed at their raw amount
	UnknownMethodPayments int `json:"unknown_method_payments"`
}

// SummarizeContracts computes contract totals. SalesTotal and
// RemainingAmount cover sale kinds only; CollectedAmount and NetAmount cover
// every live contract including old-payment installments.
func SummarizeContracts(contracts []record.Contract, methods record.PaymentMethods) ContractTotals {
	contracts = record.NormalizeContracts(contracts)

	voided := make(map[record.ID]struct{})
	for _, c := range contracts {
		if c.ContractKind == record.ContractCancellation && c.ParentContractID != nil {
			voided[*c.ParentContractID] = struct{}{}
		}
	}

	counts := make(map[record.ContractKind]int64)
	var t ContractTotals
	var live []record.Contract
	for _, c := range contracts {
		counts[c.ContractKind]++
		if c.ContractKind == record.ContractCancellation {
			t.Cancelled++
			continue
		}
		if _, ok := voided[c.ID]; ok && c.ID.Known() {
			continue
		}
		live = append(live, c)
		if c.ContractKind.IsSale() {
			t.SalesTotal = t.SalesTotal.Add(c.TotalAmount)
			t.RemainingAmount = t.RemainingAmount.Add(c.RemainingAmount)
		}
		t.CollectedAmount = t.CollectedAmount.Add(c.PaidAmount)
	}

	for _, k := range record.AllContractKinds() {
		if n := counts[k]; n > 0 {
			t.ByKind = append(t.ByKind, KindCount{Kind: k, Count: n})
		}
	}
	t.NetAmount, t.UnknownMethodPayments = NetTotal(live, methods)
	return t
}
