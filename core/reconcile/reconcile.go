// Package reconcile - Allocation reconciliation
// Verifies that per-tenant shares sum to the authoritative total. A
// mismatch beyond one cent is a programming error in the engine, never a
// user-facing condition, so the assertion form panics.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

// Validate reports whether the allocated shares sum to the result total
// within one smallest-currency-unit, plus the signed delta for diagnostics.
func Validate(result *types.AllocationResult) (bool, decimal.Decimal) {
	delta := result.AllocatedSum().Sub(result.TotalAmount)
	return delta.Abs().LessThanOrEqual(types.ReconcileTolerance), delta
}

// Check returns a typed error describing the mismatch, or nil
func Check(result *types.AllocationResult) error {
	ok, delta := Validate(result)
	if ok {
		return nil
	}
	return errors.Newf(errors.TypeReconciliation,
		"allocated shares sum to %s but total is %s (delta %s)",
		result.AllocatedSum(), result.TotalAmount, delta).
		WithContext("method", result.Method.String()).
		WithContext("tenant_count", result.TenantCount)
}

// MustReconcile panics if the result does not reconcile. Strategies call
// this before returning any result to a caller.
func MustReconcile(result *types.AllocationResult) {
	if ok, delta := Validate(result); !ok {
		panic(fmt.Sprintf("RECONCILIATION FAILED: shares sum to %s, total is %s (delta %s, method %s)",
			result.AllocatedSum(), result.TotalAmount, delta, result.Method))
	}
}
