package tariff

import (
	"testing"

	"rentsplit/core/ratetable"
	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

func internetTable(t *testing.T) *ratetable.RateTable {
	return &ratetable.RateTable{
		Provider: "unifi",
		Utility:  types.UtilityInternet,
		Family:   ratetable.FamilyFlatFee,
		Currency: types.CurrencyMYR,
		FlatFees: []ratetable.FlatFee{
			{Name: "broadband", Amount: d(t, "129.00")},
		},
	}
}

func TestFlatFeeIgnoresUsage(t *testing.T) {
	table := internetTable(t)
	for _, usage := range []string{"0", "500", "-10"} {
		breakdown, err := Compute(table, d(t, usage))
		if err != nil {
			t.Fatalf("usage %s: %v", usage, err)
		}
		fee, ok := breakdown.Component(ComponentMonthlyFee)
		if !ok || !fee.Equal(d(t, "129.00")) {
			t.Errorf("usage %s: monthly fee = %s, want 129.00", usage, fee)
		}
		if !breakdown.Total.Equal(d(t, "129.00")) {
			t.Errorf("usage %s: total = %s, want 129.00", usage, breakdown.Total)
		}
	}
}

func TestFlatFeeSubtotalTax(t *testing.T) {
	table := internetTable(t)
	table.TaxRules = []ratetable.TaxRule{
		{Name: "service tax", Rate: d(t, "0.06"), AppliesToSubtotal: true},
	}

	breakdown, err := Compute(table, d(t, "0"))
	if err != nil {
		t.Fatal(err)
	}
	tax, ok := breakdown.Component("service tax")
	if !ok || !tax.Equal(d(t, "7.74")) {
		t.Errorf("tax = %s, want 7.74", tax)
	}
	if !breakdown.Total.Equal(d(t, "136.74")) {
		t.Errorf("total = %s, want 136.74", breakdown.Total)
	}
}

func TestFlatFeeMultipleFeesKeepNames(t *testing.T) {
	table := internetTable(t)
	table.FlatFees = append(table.FlatFees, ratetable.FlatFee{Name: "router rental", Amount: d(t, "10.00")})

	breakdown, err := Compute(table, d(t, "0"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := breakdown.Component("broadband"); !ok {
		t.Error("expected per-fee component names when multiple fees exist")
	}
	if !breakdown.Total.Equal(d(t, "139.00")) {
		t.Errorf("total = %s, want 139.00", breakdown.Total)
	}
}

func TestFlatFeeRequiresFees(t *testing.T) {
	table := internetTable(t)
	table.FlatFees = nil
	if _, err := Compute(table, d(t, "0")); !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
}
