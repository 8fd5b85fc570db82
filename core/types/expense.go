// Package types - Monthly expense and tenant usage records
package types

import "github.com/shopspring/decimal"

// MiscellaneousItem is an ad-hoc expense line (repairs, cleaning, etc.)
type MiscellaneousItem struct {
	// Name describes the expense
	Name string `json:"name"`

	// Amount is the monetary amount
	Amount decimal.Decimal `json:"amount"`
}

// Expense holds the raw monthly figures for one property and period.
// It is supplied by the caller (wizard/storage); the engine never persists it.
type Expense struct {
	// PropertyID identifies the property
	PropertyID string `json:"property_id"`

	// Period is the billing month
	Period Period `json:"period"`

	// BaseRent is the monthly rent pooled across tenants
	BaseRent decimal.Decimal `json:"base_rent"`

	// InternetFee is the flat monthly internet fee
	InternetFee decimal.Decimal `json:"internet_fee"`

	// WaterCharge is the water bill amount for the period
	WaterCharge decimal.Decimal `json:"water_charge"`

	// Miscellaneous lists ad-hoc expense items for the period
	Miscellaneous []MiscellaneousItem `json:"miscellaneous,omitempty"`

	// SplitMiscellaneous controls whether miscellaneous items join the
	// shared pool. When false they are excluded entirely.
	SplitMiscellaneous bool `json:"split_miscellaneous"`

	// TotalElectricityKWh is the metered usage for the whole property
	TotalElectricityKWh decimal.Decimal `json:"total_electricity_kwh"`

	// KnownElectricityTotal is the authoritative electricity bill amount
	// when one exists. Nil means only usage is known and charges must be
	// computed from the rate table.
	KnownElectricityTotal *decimal.Decimal `json:"known_electricity_total,omitempty"`
}

// MiscellaneousTotal sums the miscellaneous items
func (e *Expense) MiscellaneousTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range e.Miscellaneous {
		sum = sum.Add(item.Amount)
	}
	return sum
}

// TenantUsageRecord holds one tenant's AC meter readings for a period
type TenantUsageRecord struct {
	// TenantID identifies the tenant
	TenantID string `json:"tenant_id"`

	// TenantName is the display name
	TenantName string `json:"tenant_name"`

	// PreviousReading is the meter reading at the start of the period
	PreviousReading decimal.Decimal `json:"previous_reading"`

	// CurrentReading is the meter reading at the end of the period
	CurrentReading decimal.Decimal `json:"current_reading"`
}

// Usage returns the derived kWh usage, clamped to zero. A negative delta
// (meter reset or entry error) yields zero usage and a reported anomaly.
func (r TenantUsageRecord) Usage() (decimal.Decimal, *Anomaly) {
	delta := r.CurrentReading.Sub(r.PreviousReading)
	if delta.IsNegative() {
		return decimal.Zero, &Anomaly{
			Kind:     AnomalyNegativeUsage,
			TenantID: r.TenantID,
			Detail:   "current meter reading is below previous reading; usage clamped to zero",
			Value:    delta,
		}
	}
	return delta, nil
}

// AnomalyKind classifies a usage anomaly
type AnomalyKind string

const (
	// AnomalyNegativeUsage flags a meter delta below zero
	AnomalyNegativeUsage AnomalyKind = "negative_usage"

	// AnomalyExcessACUsage flags tenant AC usage exceeding the metered total
	AnomalyExcessACUsage AnomalyKind = "excess_ac_usage"
)

// Anomaly is a recoverable data-entry problem surfaced alongside a normal
// result. Anomalies are warnings for user review, never errors.
type Anomaly struct {
	// Kind classifies the anomaly
	Kind AnomalyKind `json:"kind"`

	// TenantID identifies the tenant involved, if any
	TenantID string `json:"tenant_id,omitempty"`

	// Detail is a human-readable explanation
	Detail string `json:"detail"`

	// Value is the offending quantity
	Value decimal.Decimal `json:"value"`
}
