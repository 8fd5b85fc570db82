// Package allocation - Layered-precise strategy
package allocation

import (
	"github.com/shopspring/decimal"

	"rentsplit/core/reconcile"
	"rentsplit/core/tariff"
	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

func init() {
	RegisterStrategy(&layeredPrecise{})
}

// layeredPrecise splits shared pools equally but bills each tenant's own
// AC usage at (near-)actual cost. Tiered billing is non-linear, so the
// AC costing runs in one of two modes: when an authoritative total bill
// amount and total kWh are both known, tenants pay the proportional
// average cost per kWh; otherwise each tenant's usage is fed through the
// tier formula in isolation.
type layeredPrecise struct{}

func (s *layeredPrecise) Method() types.AllocationMethod {
	return types.MethodLayeredPrecise
}

func (s *layeredPrecise) Allocate(in *Input) (*types.AllocationResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	n := len(in.Tenants)
	b := in.Bill
	exp := in.Expense

	var anomalies []types.Anomaly

	usages := make([]decimal.Decimal, n)
	sumAC := decimal.Zero
	for i, tenant := range in.Tenants {
		usage, anomaly := tenant.Usage()
		if anomaly != nil {
			anomalies = append(anomalies, *anomaly)
		}
		usages[i] = usage
		sumAC = sumAC.Add(usage)
	}

	totalKWh := exp.TotalElectricityKWh
	if totalKWh.IsNegative() {
		totalKWh = decimal.Zero
	}

	commonUsage := totalKWh.Sub(sumAC)
	if commonUsage.IsNegative() {
		// Tenant-reported AC exceeds the metered total. Surface the
		// excess for review instead of propagating negative usage.
		anomalies = append(anomalies, types.Anomaly{
			Kind:   types.AnomalyExcessACUsage,
			Detail: "sum of tenant AC usage exceeds total metered usage; common usage clamped to zero",
			Value:  commonUsage.Neg(),
		})
		commonUsage = decimal.Zero
	}

	acCosts, commonCost, err := s.costElectricity(in, usages, totalKWh, commonUsage)
	if err != nil {
		return nil, err
	}

	rent := types.SplitEven(b.Rent, n)
	internet := types.SplitEven(b.Internet, n)
	water := types.SplitEven(b.Water, n)
	common := types.SplitEven(commonCost, n)
	misc := types.SplitEven(b.Miscellaneous, n)

	result := &types.AllocationResult{
		Method:      types.MethodLayeredPrecise,
		Currency:    b.Currency,
		TenantCount: n,
		Allocations: make([]types.TenantAllocation, n),
		Anomalies:   anomalies,
	}

	for i, tenant := range in.Tenants {
		a := types.TenantAllocation{
			TenantID:          tenant.TenantID,
			TenantName:        tenant.TenantName,
			Rent:              rent[i],
			Internet:          internet[i],
			Water:             water[i],
			CommonElectricity: common[i],
			IndividualAC:      acCosts[i],
			Miscellaneous:     misc[i],
		}
		a.TotalAmount = a.ShareSum()
		result.Allocations[i] = a
	}

	// The authoritative total is the sum of pools actually allocated;
	// in tier mode the electricity pool is recomputed from usage and can
	// differ from the assembled bill.
	result.TotalAmount = b.Rent.
		Add(b.Internet).
		Add(b.Water).
		Add(b.Miscellaneous).
		Add(types.RoundCents(commonCost)).
		Add(sumDecimals(acCosts))

	reconcile.MustReconcile(result)
	return result, nil
}

// costElectricity prices each tenant's AC usage and the common-area
// usage, returning rounded per-tenant costs and the common pool.
func (s *layeredPrecise) costElectricity(in *Input, usages []decimal.Decimal, totalKWh, commonUsage decimal.Decimal) ([]decimal.Decimal, decimal.Decimal, error) {
	acCosts := make([]decimal.Decimal, len(usages))

	if known := in.Expense.KnownElectricityTotal; known != nil {
		knownTotal := types.RoundCents(*known)
		if !totalKWh.IsPositive() {
			// No usage context to apportion by; the whole bill is common.
			for i := range acCosts {
				acCosts[i] = decimal.Zero
			}
			return acCosts, knownTotal, nil
		}

		avgRate := knownTotal.Div(totalKWh)
		sumAC := decimal.Zero
		for i, usage := range usages {
			acCosts[i] = types.RoundCents(usage.Mul(avgRate))
			sumAC = sumAC.Add(acCosts[i])
		}

		// Common pool absorbs the unrounded remainder so the electricity
		// pools reconcile against the authoritative bill amount.
		commonCost := knownTotal.Sub(sumAC)
		if commonCost.IsNegative() {
			commonCost = decimal.Zero
		}
		return acCosts, commonCost, nil
	}

	if in.ElectricityTable == nil {
		return nil, decimal.Zero, errors.Config(
			"layered precise allocation requires an electricity rate table when no authoritative bill total is supplied")
	}

	for i, usage := range usages {
		breakdown, err := tariff.Compute(in.ElectricityTable, usage)
		if err != nil {
			return nil, decimal.Zero, err
		}
		acCosts[i] = types.RoundCents(breakdown.Total)
	}

	breakdown, err := tariff.Compute(in.ElectricityTable, commonUsage)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return acCosts, types.RoundCents(breakdown.Total), nil
}

func sumDecimals(ds []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range ds {
		sum = sum.Add(d)
	}
	return sum
}
