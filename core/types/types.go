// Package types - Shared engine types
package types

import "fmt"

// Currency represents a currency code
type Currency string

const (
	CurrencyMYR Currency = "MYR"
	CurrencyUSD Currency = "USD"
	CurrencySGD Currency = "SGD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// UtilityKind identifies the kind of metered or billed utility
type UtilityKind string

const (
	UtilityElectricity UtilityKind = "electricity"
	UtilityWater       UtilityKind = "water"
	UtilityGas         UtilityKind = "gas"
	UtilityInternet    UtilityKind = "internet"
	UtilitySewerage    UtilityKind = "sewerage"
	UtilityWaste       UtilityKind = "waste"
)

// String returns the string representation
func (u UtilityKind) String() string {
	return string(u)
}

// Valid reports whether the utility kind is one of the known kinds
func (u UtilityKind) Valid() bool {
	switch u {
	case UtilityElectricity, UtilityWater, UtilityGas, UtilityInternet, UtilitySewerage, UtilityWaste:
		return true
	}
	return false
}

// Period identifies a single billing month
type Period struct {
	// Month is the calendar month (1-12)
	Month int `json:"month"`

	// Year is the calendar year
	Year int `json:"year"`
}

// String returns the period as "YYYY-MM"
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Valid reports whether the period identifies a real calendar month
func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year >= 1970
}
