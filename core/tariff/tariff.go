// Package tariff - Tariff calculators
// One calculator per tariff family, selected by the table's family tag.
// Calculators are pure: same table and usage always produce the same
// breakdown, with no clock or global state involved.
package tariff

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"rentsplit/core/ratetable"
	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

// Component names shared by the calculator families
const (
	// ComponentUsage is the tiered usage charge
	ComponentUsage = "usage charge"

	// ComponentMonthlyFee is the flat-fee family's single component
	ComponentMonthlyFee = "monthly fee"

	// ComponentIncentive is the negative rebate component
	ComponentIncentive = "incentive"
)

// Calculator rates one tariff family
type Calculator interface {
	// Family returns the tariff family this calculator handles
	Family() ratetable.Family

	// Compute rates a usage quantity against a table of this family.
	// Negative usage is clamped to zero.
	Compute(table *ratetable.RateTable, usage decimal.Decimal) (*types.ChargeBreakdown, error)
}

var (
	calculatorsMu sync.RWMutex
	calculators   = make(map[ratetable.Family]Calculator)
)

// RegisterCalculator registers a calculator for a family.
// Called from init() in each calculator file; panics on duplicates.
func RegisterCalculator(c Calculator) {
	calculatorsMu.Lock()
	defer calculatorsMu.Unlock()

	family := c.Family()
	if _, exists := calculators[family]; exists {
		panic(fmt.Sprintf("tariff: calculator already registered for family %q", family))
	}
	calculators[family] = c
}

// For returns the calculator for a table's family
func For(table *ratetable.RateTable) (Calculator, error) {
	calculatorsMu.RLock()
	defer calculatorsMu.RUnlock()

	c, ok := calculators[table.Family]
	if !ok {
		return nil, errors.Configf("no calculator for tariff family %q", table.Family)
	}
	return c, nil
}

// Compute rates a usage quantity against a provider's table, dispatching
// on the table's tariff family.
func Compute(table *ratetable.RateTable, usage decimal.Decimal) (*types.ChargeBreakdown, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	c, err := For(table)
	if err != nil {
		return nil, err
	}
	return c.Compute(table, usage)
}

// clampUsage rejects negative usage by clamping it to zero
func clampUsage(usage decimal.Decimal) decimal.Decimal {
	if usage.IsNegative() {
		return decimal.Zero
	}
	return usage
}
