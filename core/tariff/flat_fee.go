// Package tariff - Flat-fee calculator (internet and similar)
package tariff

import (
	"github.com/shopspring/decimal"

	"rentsplit/core/ratetable"
	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

func init() {
	RegisterCalculator(&flatFeeCalculator{})
}

type flatFeeCalculator struct{}

func (c *flatFeeCalculator) Family() ratetable.Family {
	return ratetable.FamilyFlatFee
}

// Compute ignores usage entirely: the breakdown is the provider's flat
// monthly fees, taxed by any zero-threshold subtotal rules.
func (c *flatFeeCalculator) Compute(table *ratetable.RateTable, usage decimal.Decimal) (*types.ChargeBreakdown, error) {
	if len(table.FlatFees) == 0 {
		return nil, errors.Configf("provider %s: flat-fee tariff has no fees", table.Provider)
	}

	breakdown := types.NewChargeBreakdown(table.Utility, table.Provider, table.Currency)
	if len(table.FlatFees) == 1 {
		breakdown.Add(ComponentMonthlyFee, table.FlatFees[0].Amount)
	} else {
		for _, fee := range table.FlatFees {
			breakdown.Add(fee.Name, fee.Amount)
		}
	}

	subtotal := breakdown.Total
	for _, rule := range table.TaxRules {
		if rule.AppliesToSubtotal && rule.ThresholdUsage.IsZero() {
			breakdown.Add(rule.Name, subtotal.Mul(rule.Rate))
		}
	}

	return breakdown, nil
}
