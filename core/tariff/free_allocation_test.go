package tariff

import (
	"testing"

	"rentsplit/core/ratetable"
	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

func waterTable(t *testing.T) *ratetable.RateTable {
	return &ratetable.RateTable{
		Provider:      "sains",
		Utility:       types.UtilityWater,
		Family:        ratetable.FamilyFreeAllocation,
		Currency:      types.CurrencyMYR,
		FreeAllowance: d(t, "10"),
		Tiers: []ratetable.Tier{
			{UpperBound: dp(t, "25"), Rate: d(t, "1.00")},
			{Rate: d(t, "2.00")},
		},
		FlatFees: []ratetable.FlatFee{
			{Name: "meter rental", Amount: d(t, "2.50")},
		},
	}
}

func TestFreeAllocationWithinAllowance(t *testing.T) {
	breakdown, err := Compute(waterTable(t), d(t, "8"))
	if err != nil {
		t.Fatal(err)
	}
	usage, _ := breakdown.Component(ComponentUsage)
	if !usage.IsZero() {
		t.Errorf("usage charge = %s, want 0 within allowance", usage)
	}
	// Flat fee is still due.
	if !breakdown.Total.Equal(d(t, "2.50")) {
		t.Errorf("total = %s, want 2.50", breakdown.Total)
	}
}

func TestFreeAllocationBeyondAllowance(t *testing.T) {
	// 40 m3 - 10 free = 30 billable: 25 @ 1.00 + 5 @ 2.00 = 35.00,
	// plus meter rental.
	breakdown, err := Compute(waterTable(t), d(t, "40"))
	if err != nil {
		t.Fatal(err)
	}
	usage, _ := breakdown.Component(ComponentUsage)
	if !usage.Equal(d(t, "35.00")) {
		t.Errorf("usage charge = %s, want 35.00", usage)
	}
	if !breakdown.Total.Equal(d(t, "37.50")) {
		t.Errorf("total = %s, want 37.50", breakdown.Total)
	}
}

func TestFreeAllocationRequiresTiers(t *testing.T) {
	table := waterTable(t)
	table.Tiers = nil
	if _, err := Compute(table, d(t, "5")); !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
}
