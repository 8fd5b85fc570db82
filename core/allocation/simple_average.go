// Package allocation - Simple-average strategy
package allocation

import (
	"rentsplit/core/reconcile"
	"rentsplit/core/types"
)

func init() {
	RegisterStrategy(&simpleAverage{})
}

// simpleAverage splits every pool equally across tenants. Individual AC
// usage is ignored; electricity is shared flat like everything else.
type simpleAverage struct{}

func (s *simpleAverage) Method() types.AllocationMethod {
	return types.MethodSimpleAverage
}

func (s *simpleAverage) Allocate(in *Input) (*types.AllocationResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	n := len(in.Tenants)
	b := in.Bill

	rent := types.SplitEven(b.Rent, n)
	internet := types.SplitEven(b.Internet, n)
	water := types.SplitEven(b.Water, n)
	electricity := types.SplitEven(b.Electricity, n)
	misc := types.SplitEven(b.Miscellaneous, n)

	result := &types.AllocationResult{
		Method:      types.MethodSimpleAverage,
		Currency:    b.Currency,
		TotalAmount: b.Total,
		TenantCount: n,
		Allocations: make([]types.TenantAllocation, n),
	}

	for i, tenant := range in.Tenants {
		a := types.TenantAllocation{
			TenantID:          tenant.TenantID,
			TenantName:        tenant.TenantName,
			Rent:              rent[i],
			Internet:          internet[i],
			Water:             water[i],
			CommonElectricity: electricity[i],
			Miscellaneous:     misc[i],
		}
		a.TotalAmount = a.ShareSum()
		result.Allocations[i] = a
	}

	reconcile.MustReconcile(result)
	return result, nil
}
