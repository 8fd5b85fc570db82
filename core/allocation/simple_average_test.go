package allocation

import (
	"testing"

	"github.com/shopspring/decimal"

	"rentsplit/core/bill"
	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return v
}

func tenants(n int) []types.TenantUsageRecord {
	names := []string{"alice", "bala", "chen", "devi", "erik", "farah", "gopal"}
	out := make([]types.TenantUsageRecord, n)
	for i := range out {
		out[i] = types.TenantUsageRecord{
			TenantID:   names[i],
			TenantName: names[i],
		}
	}
	return out
}

func assembled(t *testing.T, expense *types.Expense) *bill.AssembledBill {
	t.Helper()
	b, err := bill.Assemble(expense)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSimpleAverageWorkedExample(t *testing.T) {
	known := d(t, "89.25")
	expense := &types.Expense{
		PropertyID:            "prop-1",
		Period:                types.Period{Month: 8, Year: 2026},
		TotalElectricityKWh:   d(t, "350"),
		KnownElectricityTotal: &known,
	}

	result, err := Allocate(types.MethodSimpleAverage, &Input{
		Bill:    assembled(t, expense),
		Expense: expense,
		Tenants: tenants(3),
	})
	if err != nil {
		t.Fatal(err)
	}

	for i, a := range result.Allocations {
		if !a.TotalAmount.Equal(d(t, "29.75")) {
			t.Errorf("tenant %d total = %s, want 29.75", i, a.TotalAmount)
		}
		if !a.IndividualAC.IsZero() {
			t.Errorf("tenant %d: simple average must not bill individual AC", i)
		}
	}
	if !result.AllocatedSum().Equal(d(t, "89.25")) {
		t.Errorf("allocated sum = %s, want exactly 89.25", result.AllocatedSum())
	}
}

func TestSimpleAverageConservation(t *testing.T) {
	expense := &types.Expense{
		PropertyID:  "prop-1",
		Period:      types.Period{Month: 1, Year: 2026},
		BaseRent:    d(t, "1000.01"),
		InternetFee: d(t, "129.00"),
		WaterCharge: d(t, "45.53"),
		Miscellaneous: []types.MiscellaneousItem{
			{Name: "cleaning", Amount: d(t, "77.77")},
		},
		SplitMiscellaneous: true,
	}
	b := assembled(t, expense)

	for _, n := range []int{1, 2, 3, 7} {
		result, err := Allocate(types.MethodSimpleAverage, &Input{
			Bill:    b,
			Expense: expense,
			Tenants: tenants(n),
		})
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if !result.AllocatedSum().Equal(b.Total) {
			t.Errorf("n=%d: allocated sum %s != total %s", n, result.AllocatedSum(), b.Total)
		}
		for i, a := range result.Allocations {
			if !a.TotalAmount.Equal(a.ShareSum()) {
				t.Errorf("n=%d tenant %d: total %s != share sum %s", n, i, a.TotalAmount, a.ShareSum())
			}
		}
	}
}

func TestSimpleAverageDeterministic(t *testing.T) {
	expense := &types.Expense{
		PropertyID: "prop-1",
		Period:     types.Period{Month: 3, Year: 2026},
		BaseRent:   d(t, "123.47"),
	}
	b := assembled(t, expense)
	in := &Input{Bill: b, Expense: expense, Tenants: tenants(7)}

	first, err := Allocate(types.MethodSimpleAverage, in)
	if err != nil {
		t.Fatal(err)
	}
	for run := 0; run < 5; run++ {
		again, err := Allocate(types.MethodSimpleAverage, in)
		if err != nil {
			t.Fatal(err)
		}
		for i := range first.Allocations {
			if !first.Allocations[i].TotalAmount.Equal(again.Allocations[i].TotalAmount) {
				t.Fatalf("run %d: tenant %d amount changed", run, i)
			}
		}
	}
}

func TestSimpleAverageNoTenants(t *testing.T) {
	expense := &types.Expense{
		PropertyID: "prop-1",
		Period:     types.Period{Month: 1, Year: 2026},
		BaseRent:   d(t, "100"),
	}
	_, err := Allocate(types.MethodSimpleAverage, &Input{
		Bill:    assembled(t, expense),
		Expense: expense,
	})
	if !errors.IsType(err, errors.TypeNoActiveTenants) {
		t.Fatalf("expected NO_ACTIVE_TENANTS, got %v", err)
	}
}

func TestAllocateUnknownMethod(t *testing.T) {
	_, err := Allocate(types.AllocationMethod("nonsense"), &Input{})
	if !errors.IsType(err, errors.TypeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
