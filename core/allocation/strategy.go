// Package allocation - Cost-allocation strategies
// Two pure strategies implement the same interface: simple average and
// layered precise. Every returned result reconciles exactly against its
// own total before the caller sees it.
package allocation

import (
	"fmt"
	"sync"

	"rentsplit/core/bill"
	"rentsplit/core/ratetable"
	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

// Input carries everything a strategy needs for one allocation run.
// The engine never retains the input after a call returns.
type Input struct {
	// Bill is the assembled pooled total for the period
	Bill *bill.AssembledBill

	// Expense is the raw expense the bill was assembled from
	Expense *types.Expense

	// Tenants are the active tenants with their AC meter readings,
	// in a stable caller-chosen order
	Tenants []types.TenantUsageRecord

	// ElectricityTable is the provider table used to cost individual AC
	// usage when no authoritative total bill amount is known. May be nil
	// for the simple-average strategy or when a known total is supplied.
	ElectricityTable *ratetable.RateTable
}

func (in *Input) validate() error {
	if in == nil || in.Bill == nil || in.Expense == nil {
		return errors.Input("allocation requires an assembled bill and its expense")
	}
	if len(in.Tenants) == 0 {
		return errors.NoActiveTenants()
	}
	return nil
}

// Strategy splits an assembled bill across tenants
type Strategy interface {
	// Method returns the method identifier this strategy implements
	Method() types.AllocationMethod

	// Allocate produces the per-tenant split
	Allocate(in *Input) (*types.AllocationResult, error)
}

var (
	strategiesMu sync.RWMutex
	strategies   = make(map[types.AllocationMethod]Strategy)
)

// RegisterStrategy registers a strategy for a method.
// Called from init() in each strategy file; panics on duplicates.
func RegisterStrategy(s Strategy) {
	strategiesMu.Lock()
	defer strategiesMu.Unlock()

	method := s.Method()
	if _, exists := strategies[method]; exists {
		panic(fmt.Sprintf("allocation: strategy already registered for method %q", method))
	}
	strategies[method] = s
}

// For returns the strategy for a method
func For(method types.AllocationMethod) (Strategy, error) {
	strategiesMu.RLock()
	defer strategiesMu.RUnlock()

	s, ok := strategies[method]
	if !ok {
		return nil, errors.NotFound("allocation strategy", method.String())
	}
	return s, nil
}

// Allocate runs the strategy selected by method over the input
func Allocate(method types.AllocationMethod, in *Input) (*types.AllocationResult, error) {
	s, err := For(method)
	if err != nil {
		return nil, err
	}
	return s.Allocate(in)
}
