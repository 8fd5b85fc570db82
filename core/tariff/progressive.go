// Package tariff - Progressive-tier calculator
// Used by all electricity providers and most water providers.
package tariff

import (
	"github.com/shopspring/decimal"

	"rentsplit/core/ratetable"
	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

func init() {
	RegisterCalculator(&progressiveCalculator{})
}

type progressiveCalculator struct{}

func (c *progressiveCalculator) Family() ratetable.Family {
	return ratetable.FamilyProgressiveTier
}

func (c *progressiveCalculator) Compute(table *ratetable.RateTable, usage decimal.Decimal) (*types.ChargeBreakdown, error) {
	if len(table.Tiers) == 0 {
		return nil, errors.Configf("provider %s: progressive tariff has no tiers", table.Provider)
	}
	usage = clampUsage(usage)

	breakdown := types.NewChargeBreakdown(table.Utility, table.Provider, table.Currency)
	breakdown.Add(ComponentUsage, walkTiers(table.Tiers, usage))

	for _, fee := range table.FlatFees {
		breakdown.Add(fee.Name, fee.Amount)
	}

	// Taxes see the gross subtotal of usage and fee components; the
	// incentive is applied after taxation.
	subtotal := breakdown.Total
	for _, rule := range table.TaxRules {
		amount := taxAmount(table, rule, usage, subtotal)
		if !amount.IsZero() {
			breakdown.Add(rule.Name, amount)
		}
	}

	if incentive := incentiveAmount(table, usage); !incentive.IsZero() {
		breakdown.Add(ComponentIncentive, incentive)
	}

	return breakdown, nil
}

// taxAmount applies one usage-gated tax rule. The rule contributes only
// when usage strictly exceeds its threshold. Full-subtotal rules tax the
// whole subtotal; excess-portion rules tax only the marginal cost of the
// usage above the threshold.
func taxAmount(table *ratetable.RateTable, rule ratetable.TaxRule, usage, subtotal decimal.Decimal) decimal.Decimal {
	if usage.LessThanOrEqual(rule.ThresholdUsage) {
		return decimal.Zero
	}
	if rule.AppliesToSubtotal {
		return subtotal.Mul(rule.Rate)
	}
	return walkTiersAbove(table.Tiers, usage, rule.ThresholdUsage).Mul(rule.Rate)
}

// incentiveAmount computes the rebate for a usage quantity. Eligibility
// is a cliff: usage at or below the ceiling earns the full bracket walk,
// one unit above earns nothing.
func incentiveAmount(table *ratetable.RateTable, usage decimal.Decimal) decimal.Decimal {
	inc := table.Incentive
	if inc == nil {
		return decimal.Zero
	}
	if usage.GreaterThan(inc.Ceiling) {
		return decimal.Zero
	}
	return walkIncentiveTiers(inc.Tiers, usage)
}
