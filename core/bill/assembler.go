// Package bill - Bill assembler
// Combines per-utility charge breakdowns and the raw expense figures for
// a period into a single pooled total with itemized provenance. Pure
// value-in, value-out; nothing is persisted.
package bill

import (
	"github.com/shopspring/decimal"

	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

// AssembledBill is the pooled expense total for one property-period
type AssembledBill struct {
	// PropertyID identifies the property
	PropertyID string `json:"property_id"`

	// Period is the billing month
	Period types.Period `json:"period"`

	// Currency is the bill currency
	Currency types.Currency `json:"currency"`

	// Rent is the base rent pool
	Rent decimal.Decimal `json:"rent"`

	// Internet is the internet pool
	Internet decimal.Decimal `json:"internet"`

	// Water is the water pool
	Water decimal.Decimal `json:"water"`

	// Electricity is the electricity pool (common area plus tenant AC)
	Electricity decimal.Decimal `json:"electricity"`

	// Miscellaneous is the miscellaneous pool; zero when the expense
	// excludes miscellaneous from sharing
	Miscellaneous decimal.Decimal `json:"miscellaneous"`

	// Total is the sum of all pools
	Total decimal.Decimal `json:"total"`

	// Breakdowns keeps the per-utility provenance that fed the pools
	Breakdowns []*types.ChargeBreakdown `json:"breakdowns,omitempty"`
}

// Assemble pools an expense and its per-utility breakdowns. Breakdowns
// take precedence over the expense's raw figures for their utility; an
// authoritative known electricity total overrides a computed breakdown.
// Every pool is rounded to cents so the total is exact in cents.
func Assemble(expense *types.Expense, breakdowns ...*types.ChargeBreakdown) (*AssembledBill, error) {
	if expense == nil {
		return nil, errors.Input("assemble requires an expense")
	}
	if !expense.Period.Valid() {
		return nil, errors.Newf(errors.TypeInput, "invalid billing period %s", expense.Period)
	}

	b := &AssembledBill{
		PropertyID: expense.PropertyID,
		Period:     expense.Period,
		Currency:   types.CurrencyMYR,
		Internet:   expense.InternetFee,
		Water:      expense.WaterCharge,
		Rent:       expense.BaseRent,
	}

	for _, breakdown := range breakdowns {
		if breakdown == nil {
			continue
		}
		if !breakdown.Consistent() {
			return nil, errors.Newf(errors.TypeInternal,
				"breakdown for %s/%s is internally inconsistent", breakdown.Provider, breakdown.Utility)
		}
		b.Currency = breakdown.Currency
		switch breakdown.Utility {
		case types.UtilityElectricity:
			b.Electricity = breakdown.Total
		case types.UtilityWater, types.UtilitySewerage:
			b.Water = breakdown.Total
		case types.UtilityInternet:
			b.Internet = breakdown.Total
		default:
			b.Miscellaneous = b.Miscellaneous.Add(breakdown.Total)
		}
		b.Breakdowns = append(b.Breakdowns, breakdown)
	}

	if expense.KnownElectricityTotal != nil {
		b.Electricity = *expense.KnownElectricityTotal
	}

	if expense.SplitMiscellaneous {
		b.Miscellaneous = b.Miscellaneous.Add(expense.MiscellaneousTotal())
	} else {
		b.Miscellaneous = decimal.Zero
	}

	b.Rent = types.RoundCents(b.Rent)
	b.Internet = types.RoundCents(b.Internet)
	b.Water = types.RoundCents(b.Water)
	b.Electricity = types.RoundCents(b.Electricity)
	b.Miscellaneous = types.RoundCents(b.Miscellaneous)

	b.Total = b.Rent.
		Add(b.Internet).
		Add(b.Water).
		Add(b.Electricity).
		Add(b.Miscellaneous)

	return b, nil
}
