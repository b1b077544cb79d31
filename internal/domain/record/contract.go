package record

import "github.com/shopspring/decimal"

// ContractKind represents how a contract entered the books
type ContractKind string

const (
	ContractNew            ContractKind = "NEW"
	ContractShared         ContractKind = "SHARED"           // shared with another unit
	ContractSharedSameUnit ContractKind = "SHARED_SAME_UNIT" // shared between staff of one unit
	ContractOldPayment     ContractKind = "OLD_PAYMENT"      // installment on an earlier contract
	ContractCancellation   ContractKind = "CANCELLATION"     // voids ParentContractID
)

// IsValid checks if the ContractKind is a valid value
func (k ContractKind) IsValid() bool {
	switch k {
	case ContractNew, ContractShared, ContractSharedSameUnit, ContractOldPayment, ContractCancellation:
		return true
	}
	return false
}

// String returns the string representation of ContractKind
func (k ContractKind) String() string {
	return string(k)
}

// DisplayName returns a human readable name for the ContractKind
func (k ContractKind) DisplayName() string {
	switch k {
	case ContractNew:
		return "New"
	case ContractShared:
		return "Shared"
	case ContractSharedSameUnit:
		return "Shared (same unit)"
	case ContractOldPayment:
		return "Old payment"
	case ContractCancellation:
		return "Cancellation"
	default:
		return string(k)
	}
}

// IsSale reports whether the kind books new sales volume
func (k ContractKind) IsSale() bool {
	return k == ContractNew || k == ContractShared || k == ContractSharedSameUnit
}

// AllContractKinds returns all valid ContractKind values
func AllContractKinds() []ContractKind {
	return []ContractKind{ContractNew, ContractShared, ContractSharedSameUnit, ContractOldPayment, ContractCancellation}
}

// Payment is a single installment received against a contract
type Payment struct {
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethodID ID              `json:"payment_method_id"`
	Reference       string          `json:"reference,omitempty"`
}

// Contract is a sales contract. Amount fields are trusted as delivered;
// RemainingAmount is never re-derived here.
type Contract struct {
	Header
	ContractNumber   string          `json:"contract_number"`
	CustomerName     string          `json:"customer_name,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	RemainingAmount  decimal.Decimal `json:"remaining_amount"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	ContractKind     ContractKind    `json:"contract_kind"`
	ParentContractID *ID             `json:"parent_contract_id,omitempty"`
	Payments         []Payment       `json:"payments,omitempty"`
}

// Kind implements BusinessRecord
func (c Contract) Kind() Kind { return KindContract }

// Meta implements BusinessRecord
func (c Contract) Meta() Header { return c.Header }

// Period implements BusinessRecord
func (c Contract) Period() (int, int, bool) { return periodFromDate(c.OccurredOn) }

// SearchLabels implements BusinessRecord
func (c Contract) SearchLabels() []string {
	return []string{c.ContractNumber, c.AssigneeName, c.CustomerName, c.Phone}
}
