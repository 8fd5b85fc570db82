// Package types - Itemized charge breakdowns
package types

import "github.com/shopspring/decimal"

// ChargeComponent is a single named line item in a charge breakdown
type ChargeComponent struct {
	// Name is the component name, unique within a breakdown
	Name string `json:"name"`

	// Amount is the monetary amount; negative for incentives
	Amount decimal.Decimal `json:"amount"`
}

// ChargeBreakdown is the itemized result of rating one utility.
// Component insertion order is preserved for display.
type ChargeBreakdown struct {
	// Utility is the utility kind this breakdown covers
	Utility UtilityKind `json:"utility"`

	// Provider is the provider key the breakdown was computed from
	Provider string `json:"provider"`

	// Currency is the breakdown currency
	Currency Currency `json:"currency"`

	// Components are the named line items in insertion order
	Components []ChargeComponent `json:"components"`

	// Total is the sum of all components
	Total decimal.Decimal `json:"total"`
}

// NewChargeBreakdown creates an empty breakdown for a provider
func NewChargeBreakdown(utility UtilityKind, provider string, currency Currency) *ChargeBreakdown {
	return &ChargeBreakdown{
		Utility:  utility,
		Provider: provider,
		Currency: currency,
		Total:    decimal.Zero,
	}
}

// Add appends a named component, merging into an existing component of the
// same name so names stay unique.
func (b *ChargeBreakdown) Add(name string, amount decimal.Decimal) {
	for i := range b.Components {
		if b.Components[i].Name == name {
			b.Components[i].Amount = b.Components[i].Amount.Add(amount)
			b.Total = b.Total.Add(amount)
			return
		}
	}
	b.Components = append(b.Components, ChargeComponent{Name: name, Amount: amount})
	b.Total = b.Total.Add(amount)
}

// Component returns the amount for a named component
func (b *ChargeBreakdown) Component(name string) (decimal.Decimal, bool) {
	for _, c := range b.Components {
		if c.Name == name {
			return c.Amount, true
		}
	}
	return decimal.Zero, false
}

// ComponentSum returns the sum of all components
func (b *ChargeBreakdown) ComponentSum() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range b.Components {
		sum = sum.Add(c.Amount)
	}
	return sum
}

// Consistent reports whether the stored total matches the component sum
// within half a cent.
func (b *ChargeBreakdown) Consistent() bool {
	return WithinTolerance(b.Total, b.ComponentSum(), BreakdownTolerance)
}
