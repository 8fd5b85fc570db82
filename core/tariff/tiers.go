// Package tariff - Progressive tier walk
package tariff

import (
	"github.com/shopspring/decimal"

	"rentsplit/core/ratetable"
)

// walkTiers computes the cost of a usage quantity across ordered brackets.
// Each bracket absorbs min(remaining, bracket width) units at its rate;
// the unbounded last bracket absorbs whatever remains.
func walkTiers(tiers []ratetable.Tier, usage decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	remaining := usage
	previousBound := decimal.Zero

	for _, tier := range tiers {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		var tierQuantity decimal.Decimal
		if tier.UpperBound == nil {
			tierQuantity = remaining
		} else {
			width := tier.UpperBound.Sub(previousBound)
			if remaining.LessThan(width) {
				tierQuantity = remaining
			} else {
				tierQuantity = width
			}
			previousBound = *tier.UpperBound
		}

		total = total.Add(tierQuantity.Mul(tier.Rate))
		remaining = remaining.Sub(tierQuantity)
	}

	return total
}

// walkTiersAbove computes the marginal cost of the usage portion above a
// threshold: the full walk minus the walk up to the threshold. The excess
// is costed at the blended marginal rates it actually spans, not at a
// single reference rate.
func walkTiersAbove(tiers []ratetable.Tier, usage, threshold decimal.Decimal) decimal.Decimal {
	if usage.LessThanOrEqual(threshold) {
		return decimal.Zero
	}
	return walkTiers(tiers, usage).Sub(walkTiers(tiers, threshold))
}

// walkIncentiveTiers computes the incentive amount for a usage quantity.
// Incentive brackets carry explicit lower and upper bounds; each bracket
// contributes rate × (covered units within the bracket). Rates are
// negative, so the result reduces cost.
func walkIncentiveTiers(tiers []ratetable.IncentiveTier, usage decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, tier := range tiers {
		if usage.LessThanOrEqual(tier.LowerBound) {
			break
		}
		covered := usage
		if tier.UpperBound != nil && covered.GreaterThan(*tier.UpperBound) {
			covered = *tier.UpperBound
		}
		total = total.Add(covered.Sub(tier.LowerBound).Mul(tier.Rate))
	}
	return total
}
