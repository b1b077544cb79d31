package record

import "github.com/shopspring/decimal"

// PaymentMethod carries the tax and discount rates applied to payments made
// through it. Rates are fractions in [0, 1].
type PaymentMethod struct {
	ID                 ID              `json:"id"`
	Name               string          `json:"name"`
	TaxPercentage      decimal.Decimal `json:"tax_percentage"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// NetAmount applies amount/(1+tax) - amount*discount to a single payment
func (m PaymentMethod) NetAmount(amount decimal.Decimal) decimal.Decimal {
	gross := amount.Div(decimal.NewFromInt(1).Add(m.TaxPercentage))
	return gross.Sub(amount.Mul(m.DiscountPercentage))
}

// PaymentMethods is a lookup of payment methods by ID
type PaymentMethods struct {
	byID map[ID]PaymentMethod
}

// NewPaymentMethods builds a lookup. When IDs repeat the first entry wins.
func NewPaymentMethods(methods []PaymentMethod) PaymentMethods {
	byID := make(map[ID]PaymentMethod, len(methods))
	for _, m := range methods {
		if _, exists := byID[m.ID]; exists {
			continue
		}
		byID[m.ID] = m
	}
	return PaymentMethods{byID: byID}
}

// Lookup returns the payment method with the given ID
func (p PaymentMethods) Lookup(id ID) (PaymentMethod, bool) {
	m, ok := p.byID[id]
	return m, ok
}

// Len returns the number of known payment methods
func (p PaymentMethods) Len() int {
	return len(p.byID)
}
