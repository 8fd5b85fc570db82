// Package types - Allocation results
package types

import "github.com/shopspring/decimal"

// AllocationMethod selects the splitting strategy
type AllocationMethod string

const (
	// MethodSimpleAverage splits the pooled total equally, ignoring AC usage
	MethodSimpleAverage AllocationMethod = "simple_average"

	// MethodLayeredPrecise splits shared costs equally and bills each
	// tenant's AC usage at (near-)actual cost
	MethodLayeredPrecise AllocationMethod = "layered_precise"
)

// String returns the string representation
func (m AllocationMethod) String() string {
	return string(m)
}

// Valid reports whether the method is a known strategy
func (m AllocationMethod) Valid() bool {
	return m == MethodSimpleAverage || m == MethodLayeredPrecise
}

// TenantAllocation is one tenant's share of a period's costs
type TenantAllocation struct {
	// TenantID identifies the tenant
	TenantID string `json:"tenant_id"`

	// TenantName is the display name
	TenantName string `json:"tenant_name"`

	// Rent is the tenant's rent share
	Rent decimal.Decimal `json:"rent"`

	// Internet is the tenant's internet share
	Internet decimal.Decimal `json:"internet"`

	// Water is the tenant's water share
	Water decimal.Decimal `json:"water"`

	// CommonElectricity is the tenant's share of common-area electricity
	CommonElectricity decimal.Decimal `json:"common_electricity"`

	// IndividualAC is the cost of the tenant's own AC usage
	IndividualAC decimal.Decimal `json:"individual_ac"`

	// Miscellaneous is the tenant's miscellaneous share
	Miscellaneous decimal.Decimal `json:"miscellaneous"`

	// TotalAmount is the sum of all shares
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ShareSum returns the sum of the named shares
func (a TenantAllocation) ShareSum() decimal.Decimal {
	return a.Rent.
		Add(a.Internet).
		Add(a.Water).
		Add(a.CommonElectricity).
		Add(a.IndividualAC).
		Add(a.Miscellaneous)
}

// AllocationResult is the full per-tenant split for one period
type AllocationResult struct {
	// Method is the strategy that produced this result
	Method AllocationMethod `json:"method"`

	// Currency is the result currency
	Currency Currency `json:"currency"`

	// TotalAmount is the authoritative pooled total
	TotalAmount decimal.Decimal `json:"total_amount"`

	// TenantCount is the number of tenants included
	TenantCount int `json:"tenant_count"`

	// Allocations holds one entry per tenant in input order
	Allocations []TenantAllocation `json:"allocations"`

	// Anomalies lists usage anomalies surfaced during allocation
	Anomalies []Anomaly `json:"anomalies,omitempty"`
}

// AllocatedSum returns the sum of the per-tenant totals
func (r *AllocationResult) AllocatedSum() decimal.Decimal {
	sum := decimal.Zero
	for _, a := range r.Allocations {
		sum = sum.Add(a.TotalAmount)
	}
	return sum
}
