package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return v
}

func TestRoundCentsHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.004", "1"},
		{"1.005", "1.01"},
		{"1.015", "1.02"},
		{"25.4999", "25.5"},
		{"0", "0"},
	}
	for _, tc := range cases {
		got := RoundCents(d(t, tc.in))
		if !got.Equal(d(t, tc.want)) {
			t.Errorf("RoundCents(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestCentsRoundTrip(t *testing.T) {
	if got := Cents(d(t, "89.25")); got != 8925 {
		t.Fatalf("Cents(89.25) = %d, want 8925", got)
	}
	if got := FromCents(8925); !got.Equal(d(t, "89.25")) {
		t.Fatalf("FromCents(8925) = %s, want 89.25", got)
	}
}

func TestSplitEvenExactSum(t *testing.T) {
	cases := []struct {
		total string
		n     int
		want  []string
	}{
		{"89.25", 3, []string{"29.75", "29.75", "29.75"}},
		{"100.00", 3, []string{"33.34", "33.33", "33.33"}},
		{"0.05", 4, []string{"0.02", "0.01", "0.01", "0.01"}},
		{"10.00", 1, []string{"10.00"}},
		{"0", 3, []string{"0", "0", "0"}},
	}
	for _, tc := range cases {
		parts := SplitEven(d(t, tc.total), tc.n)
		if len(parts) != tc.n {
			t.Fatalf("SplitEven(%s, %d): got %d parts", tc.total, tc.n, len(parts))
		}
		sum := decimal.Zero
		for i, p := range parts {
			if !p.Equal(d(t, tc.want[i])) {
				t.Errorf("SplitEven(%s, %d)[%d] = %s, want %s", tc.total, tc.n, i, p, tc.want[i])
			}
			sum = sum.Add(p)
		}
		if !sum.Equal(RoundCents(d(t, tc.total))) {
			t.Errorf("SplitEven(%s, %d) parts sum to %s", tc.total, tc.n, sum)
		}
	}
}

func TestSplitEvenNegativeTotal(t *testing.T) {
	parts := SplitEven(d(t, "-0.07"), 3)
	sum := decimal.Zero
	for _, p := range parts {
		sum = sum.Add(p)
	}
	if !sum.Equal(d(t, "-0.07")) {
		t.Fatalf("negative split sums to %s, want -0.07", sum)
	}
}

func TestSplitEvenDeterministic(t *testing.T) {
	first := SplitEven(d(t, "123.47"), 7)
	for run := 0; run < 10; run++ {
		again := SplitEven(d(t, "123.47"), 7)
		for i := range first {
			if !first[i].Equal(again[i]) {
				t.Fatalf("run %d: part %d changed from %s to %s", run, i, first[i], again[i])
			}
		}
	}
}

func TestSplitEvenZeroParties(t *testing.T) {
	if parts := SplitEven(d(t, "10"), 0); parts != nil {
		t.Fatalf("SplitEven with n=0 should return nil, got %v", parts)
	}
}
