// Package tariff - Free-allocation calculator
// Some water providers grant a free usage allowance before tiering; only
// usage beyond the allowance enters the progressive walk.
package tariff

import (
	"github.com/shopspring/decimal"

	"rentsplit/core/ratetable"
	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

func init() {
	RegisterCalculator(&freeAllocationCalculator{})
}

type freeAllocationCalculator struct{}

func (c *freeAllocationCalculator) Family() ratetable.Family {
	return ratetable.FamilyFreeAllocation
}

func (c *freeAllocationCalculator) Compute(table *ratetable.RateTable, usage decimal.Decimal) (*types.ChargeBreakdown, error) {
	if len(table.Tiers) == 0 {
		return nil, errors.Configf("provider %s: free-allocation tariff has no tiers", table.Provider)
	}
	usage = clampUsage(usage)

	billable := usage.Sub(table.FreeAllowance)
	if billable.IsNegative() {
		billable = decimal.Zero
	}

	breakdown := types.NewChargeBreakdown(table.Utility, table.Provider, table.Currency)
	breakdown.Add(ComponentUsage, walkTiers(table.Tiers, billable))

	for _, fee := range table.FlatFees {
		breakdown.Add(fee.Name, fee.Amount)
	}

	subtotal := breakdown.Total
	for _, rule := range table.TaxRules {
		amount := taxAmount(table, rule, billable, subtotal)
		if !amount.IsZero() {
			breakdown.Add(rule.Name, amount)
		}
	}

	if incentive := incentiveAmount(table, billable); !incentive.IsZero() {
		breakdown.Add(ComponentIncentive, incentive)
	}

	return breakdown, nil
}
