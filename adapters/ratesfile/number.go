// Package ratesfile - Safe CTY attribute conversion
// Rates are money; numbers are taken from CTY through their exact
// big-float text form so nothing passes through binary floating point.
package ratesfile

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"rentsplit/internal/errors"
)

// decimalFromCty converts a cty number to a decimal without a float64
// round trip.
func decimalFromCty(val cty.Value) (decimal.Decimal, error) {
	if !val.IsKnown() || val.IsNull() {
		return decimal.Zero, errors.Config("number attribute is unknown or null")
	}
	if val.Type() != cty.Number {
		return decimal.Zero, errors.Configf("expected number, got %s", val.Type().FriendlyName())
	}
	d, err := decimal.NewFromString(val.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Zero, errors.Wrap(errors.TypeParsing, "invalid number literal", err)
	}
	return d, nil
}

func attrDecimal(attrs hcl.Attributes, name string) (decimal.Decimal, bool, error) {
	attr, ok := attrs[name]
	if !ok {
		return decimal.Zero, false, nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return decimal.Zero, false, errors.Parsing("evaluating attribute "+name, diags)
	}
	d, err := decimalFromCty(val)
	if err != nil {
		return decimal.Zero, false, err
	}
	return d, true, nil
}

func attrString(attrs hcl.Attributes, name string) (string, bool, error) {
	attr, ok := attrs[name]
	if !ok {
		return "", false, nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", false, errors.Parsing("evaluating attribute "+name, diags)
	}
	if !val.IsKnown() || val.IsNull() || val.Type() != cty.String {
		return "", false, errors.Configf("attribute %s must be a string", name)
	}
	return val.AsString(), true, nil
}

func attrBool(attrs hcl.Attributes, name string) (bool, bool, error) {
	attr, ok := attrs[name]
	if !ok {
		return false, false, nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return false, false, errors.Parsing("evaluating attribute "+name, diags)
	}
	if !val.IsKnown() || val.IsNull() || val.Type() != cty.Bool {
		return false, false, errors.Configf("attribute %s must be a bool", name)
	}
	return val.True(), true, nil
}

func attrStringList(attrs hcl.Attributes, name string) ([]string, error) {
	attr, ok := attrs[name]
	if !ok {
		return nil, nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, errors.Parsing("evaluating attribute "+name, diags)
	}
	if !val.IsKnown() || val.IsNull() || !val.CanIterateElements() {
		return nil, errors.Configf("attribute %s must be a list of strings", name)
	}

	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.Type() != cty.String {
			return nil, errors.Configf("attribute %s must contain only strings", name)
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}
