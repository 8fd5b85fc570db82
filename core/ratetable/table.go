// Package ratetable - Versioned tariff data for utility providers.
// Tables are pure data: tier boundaries, per-tier rates, flat fees, tax
// rules, and incentive schedules. Behavior lives in core/tariff.
package ratetable

import (
	"github.com/shopspring/decimal"

	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

// Family selects the tariff shape a provider bills under
type Family string

const (
	// FamilyProgressiveTier walks ordered usage brackets (electricity,
	// most water providers)
	FamilyProgressiveTier Family = "progressive_tier"

	// FamilyFreeAllocation grants a free usage allowance before the
	// progressive walk (some water providers)
	FamilyFreeAllocation Family = "free_allocation"

	// FamilyFlatFee bills a single monthly fee regardless of usage
	// (internet)
	FamilyFlatFee Family = "flat_fee"
)

// Valid reports whether the family is a known tariff shape
func (f Family) Valid() bool {
	return f == FamilyProgressiveTier || f == FamilyFreeAllocation || f == FamilyFlatFee
}

// Tier is one usage bracket in progressive billing
type Tier struct {
	// UpperBound is the exclusive upper usage bound. Nil means unbounded
	// and is only legal on the last tier.
	UpperBound *decimal.Decimal `json:"upper_bound,omitempty"`

	// Rate is the per-unit rate within this bracket
	Rate decimal.Decimal `json:"rate"`
}

// FlatFee is a fixed monthly charge independent of usage
type FlatFee struct {
	// Name is the display name for the fee component
	Name string `json:"name"`

	// Amount is the monthly amount
	Amount decimal.Decimal `json:"amount"`
}

// TaxRule is a usage-gated tax applied after all tier and fee components
// are summed into a subtotal.
type TaxRule struct {
	// Name is the display name for the tax component
	Name string `json:"name"`

	// ThresholdUsage gates the rule: it contributes only when usage
	// exceeds this quantity.
	ThresholdUsage decimal.Decimal `json:"threshold_usage"`

	// Rate is the tax rate (e.g. 0.08 for 8%)
	Rate decimal.Decimal `json:"rate"`

	// AppliesToSubtotal picks the tax base. True taxes the full subtotal;
	// false taxes only the cost of usage above the threshold, recomputed
	// through the tiers restricted to that excess.
	AppliesToSubtotal bool `json:"applies_to_subtotal"`
}

// IncentiveTier is one bracket of an incentive schedule. Rates are
// negative so the walk produces a cost reduction.
type IncentiveTier struct {
	// LowerBound is the inclusive lower usage bound
	LowerBound decimal.Decimal `json:"lower_bound"`

	// UpperBound is the exclusive upper usage bound. Nil means unbounded.
	UpperBound *decimal.Decimal `json:"upper_bound,omitempty"`

	// Rate is the per-unit incentive rate, normally negative
	Rate decimal.Decimal `json:"rate"`
}

// IncentiveSchedule is an all-or-nothing rebate active below a usage
// ceiling. Once usage exceeds the ceiling the whole incentive is zero;
// it is a cliff, not a phase-out.
type IncentiveSchedule struct {
	// Ceiling is the inclusive usage limit for incentive eligibility
	Ceiling decimal.Decimal `json:"ceiling"`

	// Tiers are the incentive brackets in ascending order
	Tiers []IncentiveTier `json:"tiers"`
}

// RateTable is the immutable tariff definition for one provider
type RateTable struct {
	// Provider is the unique provider key (e.g. "tnb")
	Provider string `json:"provider"`

	// Name is the human-readable provider name
	Name string `json:"name"`

	// Utility is the utility kind this table rates
	Utility types.UtilityKind `json:"utility"`

	// Family selects the tariff shape
	Family Family `json:"family"`

	// ServiceAreas lists the jurisdictions the provider serves
	ServiceAreas []string `json:"service_areas,omitempty"`

	// Currency is the table currency
	Currency types.Currency `json:"currency"`

	// Tiers are the progressive usage brackets in ascending order
	Tiers []Tier `json:"tiers,omitempty"`

	// FreeAllowance is the free usage granted before tiering
	// (free_allocation family only)
	FreeAllowance decimal.Decimal `json:"free_allowance"`

	// FlatFees are fixed monthly charges
	FlatFees []FlatFee `json:"flat_fees,omitempty"`

	// TaxRules are usage-gated taxes applied to the subtotal
	TaxRules []TaxRule `json:"tax_rules,omitempty"`

	// Incentive is the optional rebate schedule
	Incentive *IncentiveSchedule `json:"incentive,omitempty"`
}

// Validate checks the structural invariants of the table. A table that
// fails validation must block calculation; the engine never substitutes
// defaults that could under- or over-bill.
func (t *RateTable) Validate() error {
	if t.Provider == "" {
		return errors.Config("rate table has no provider key")
	}
	if !t.Utility.Valid() {
		return errors.Configf("provider %s: unknown utility kind %q", t.Provider, t.Utility)
	}
	if !t.Family.Valid() {
		return errors.Configf("provider %s: unknown tariff family %q", t.Provider, t.Family)
	}

	switch t.Family {
	case FamilyFlatFee:
		if len(t.FlatFees) == 0 {
			return errors.Configf("provider %s: flat_fee family requires at least one flat fee", t.Provider)
		}
	case FamilyProgressiveTier, FamilyFreeAllocation:
		if err := t.validateTiers(); err != nil {
			return err
		}
		if t.Family == FamilyFreeAllocation && t.FreeAllowance.IsNegative() {
			return errors.Configf("provider %s: free allowance must not be negative", t.Provider)
		}
	}

	for _, rule := range t.TaxRules {
		if rule.ThresholdUsage.IsNegative() {
			return errors.Configf("provider %s: tax %q has negative threshold", t.Provider, rule.Name)
		}
	}

	if t.Incentive != nil {
		if err := t.validateIncentive(); err != nil {
			return err
		}
	}
	return nil
}

// validateTiers enforces contiguity, strictly increasing upper bounds,
// and an unbounded final tier.
func (t *RateTable) validateTiers() error {
	if len(t.Tiers) == 0 {
		return errors.Configf("provider %s: %s family requires at least one tier", t.Provider, t.Family)
	}
	prev := decimal.Zero
	for i, tier := range t.Tiers {
		last := i == len(t.Tiers)-1
		if tier.UpperBound == nil {
			if !last {
				return errors.Configf("provider %s: tier %d is unbounded but not last", t.Provider, i)
			}
			continue
		}
		if last {
			return errors.Configf("provider %s: last tier must be unbounded", t.Provider)
		}
		if tier.UpperBound.LessThanOrEqual(prev) {
			return errors.Configf("provider %s: tier %d upper bound %s does not increase", t.Provider, i, tier.UpperBound)
		}
		prev = *tier.UpperBound
	}
	return nil
}

func (t *RateTable) validateIncentive() error {
	inc := t.Incentive
	if inc.Ceiling.LessThanOrEqual(decimal.Zero) {
		return errors.Configf("provider %s: incentive ceiling must be positive", t.Provider)
	}
	if len(inc.Tiers) == 0 {
		return errors.Configf("provider %s: incentive schedule has no tiers", t.Provider)
	}
	prev := decimal.Zero
	for i, tier := range inc.Tiers {
		if !tier.LowerBound.Equal(prev) {
			return errors.Configf("provider %s: incentive tier %d lower bound %s breaks contiguity", t.Provider, i, tier.LowerBound)
		}
		if tier.UpperBound == nil {
			if i != len(inc.Tiers)-1 {
				return errors.Configf("provider %s: incentive tier %d is unbounded but not last", t.Provider, i)
			}
			continue
		}
		if tier.UpperBound.LessThanOrEqual(tier.LowerBound) {
			return errors.Configf("provider %s: incentive tier %d upper bound %s does not increase", t.Provider, i, tier.UpperBound)
		}
		prev = *tier.UpperBound
	}
	return nil
}
