// Package ratesfile loads provider rate tables from HCL schedule files.
// A schedule file holds one or more provider blocks; the loader builds a
// validated read-only registry from a directory of them.
package ratesfile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap"

	"rentsplit/core/ratetable"
	"rentsplit/core/types"
	"rentsplit/internal/errors"
	"rentsplit/internal/logging"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "provider", LabelNames: []string{"key"}},
	},
}

var providerSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name"},
		{Name: "utility", Required: true},
		{Name: "family", Required: true},
		{Name: "currency"},
		{Name: "service_areas"},
		{Name: "free_allowance"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "tier"},
		{Type: "flat_fee"},
		{Type: "tax"},
		{Type: "incentive"},
	},
}

var tierSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "up_to"},
		{Name: "rate", Required: true},
	},
}

var flatFeeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name", Required: true},
		{Name: "amount", Required: true},
	},
}

var taxSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name", Required: true},
		{Name: "threshold"},
		{Name: "rate", Required: true},
		{Name: "applies_to_subtotal"},
	},
}

var incentiveSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "ceiling", Required: true},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "tier"},
	},
}

var incentiveTierSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "from", Required: true},
		{Name: "up_to"},
		{Name: "rate", Required: true},
	},
}

// LoadDir parses every .hcl schedule under dir and returns a registry of
// the providers they define.
func LoadDir(dir string) (*ratetable.Registry, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".hcl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "scanning schedule directory", err)
	}
	sort.Strings(files)

	registry := ratetable.NewRegistry()
	parser := hclparse.NewParser()
	for _, path := range files {
		tables, err := parseFile(parser, path)
		if err != nil {
			return nil, err
		}
		for _, table := range tables {
			if err := registry.Register(table); err != nil {
				return nil, err
			}
		}
	}

	logging.Info("loaded rate schedules",
		zap.Int("files", len(files)),
		zap.Int("providers", registry.Len()),
		zap.String("dir", dir))
	return registry, nil
}

// LoadFile parses a single schedule file into rate tables
func LoadFile(path string) ([]*ratetable.RateTable, error) {
	return parseFile(hclparse.NewParser(), path)
}

func parseFile(parser *hclparse.Parser, path string) ([]*ratetable.RateTable, error) {
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Parsing("parsing schedule file "+path, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("reading schedule file "+path, diags)
	}

	var tables []*ratetable.RateTable
	for _, block := range content.Blocks {
		table, err := parseProvider(block)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func parseProvider(block *hcl.Block) (*ratetable.RateTable, error) {
	content, diags := block.Body.Content(providerSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("reading provider block "+block.Labels[0], diags)
	}
	attrs := content.Attributes

	table := &ratetable.RateTable{
		Provider: block.Labels[0],
		Currency: types.CurrencyMYR,
	}

	if name, ok, err := attrString(attrs, "name"); err != nil {
		return nil, err
	} else if ok {
		table.Name = name
	}
	utility, _, err := attrString(attrs, "utility")
	if err != nil {
		return nil, err
	}
	table.Utility = types.UtilityKind(utility)

	family, _, err := attrString(attrs, "family")
	if err != nil {
		return nil, err
	}
	table.Family = ratetable.Family(family)

	if currency, ok, err := attrString(attrs, "currency"); err != nil {
		return nil, err
	} else if ok {
		table.Currency = types.Currency(currency)
	}

	if areas, err := attrStringList(attrs, "service_areas"); err != nil {
		return nil, err
	} else {
		table.ServiceAreas = areas
	}

	if allowance, ok, err := attrDecimal(attrs, "free_allowance"); err != nil {
		return nil, err
	} else if ok {
		table.FreeAllowance = allowance
	}

	for _, inner := range content.Blocks {
		switch inner.Type {
		case "tier":
			tier, err := parseTier(inner)
			if err != nil {
				return nil, err
			}
			table.Tiers = append(table.Tiers, tier)
		case "flat_fee":
			fee, err := parseFlatFee(inner)
			if err != nil {
				return nil, err
			}
			table.FlatFees = append(table.FlatFees, fee)
		case "tax":
			rule, err := parseTax(inner)
			if err != nil {
				return nil, err
			}
			table.TaxRules = append(table.TaxRules, rule)
		case "incentive":
			if table.Incentive != nil {
				return nil, errors.Configf("provider %s: multiple incentive blocks", table.Provider)
			}
			incentive, err := parseIncentive(inner)
			if err != nil {
				return nil, err
			}
			table.Incentive = incentive
		}
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func parseTier(block *hcl.Block) (ratetable.Tier, error) {
	content, diags := block.Body.Content(tierSchema)
	if diags.HasErrors() {
		return ratetable.Tier{}, errors.Parsing("reading tier block", diags)
	}

	var tier ratetable.Tier
	if upTo, ok, err := attrDecimal(content.Attributes, "up_to"); err != nil {
		return ratetable.Tier{}, err
	} else if ok {
		tier.UpperBound = &upTo
	}
	rate, _, err := attrDecimal(content.Attributes, "rate")
	if err != nil {
		return ratetable.Tier{}, err
	}
	tier.Rate = rate
	return tier, nil
}

func parseFlatFee(block *hcl.Block) (ratetable.FlatFee, error) {
	content, diags := block.Body.Content(flatFeeSchema)
	if diags.HasErrors() {
		return ratetable.FlatFee{}, errors.Parsing("reading flat_fee block", diags)
	}

	name, _, err := attrString(content.Attributes, "name")
	if err != nil {
		return ratetable.FlatFee{}, err
	}
	amount, _, err := attrDecimal(content.Attributes, "amount")
	if err != nil {
		return ratetable.FlatFee{}, err
	}
	return ratetable.FlatFee{Name: name, Amount: amount}, nil
}

func parseTax(block *hcl.Block) (ratetable.TaxRule, error) {
	content, diags := block.Body.Content(taxSchema)
	if diags.HasErrors() {
		return ratetable.TaxRule{}, errors.Parsing("reading tax block", diags)
	}
	attrs := content.Attributes

	var rule ratetable.TaxRule
	name, _, err := attrString(attrs, "name")
	if err != nil {
		return ratetable.TaxRule{}, err
	}
	rule.Name = name

	if threshold, ok, err := attrDecimal(attrs, "threshold"); err != nil {
		return ratetable.TaxRule{}, err
	} else if ok {
		rule.ThresholdUsage = threshold
	}

	rate, _, err := attrDecimal(attrs, "rate")
	if err != nil {
		return ratetable.TaxRule{}, err
	}
	rule.Rate = rate

	if toSubtotal, ok, err := attrBool(attrs, "applies_to_subtotal"); err != nil {
		return ratetable.TaxRule{}, err
	} else if ok {
		rule.AppliesToSubtotal = toSubtotal
	}
	return rule, nil
}

func parseIncentive(block *hcl.Block) (*ratetable.IncentiveSchedule, error) {
	content, diags := block.Body.Content(incentiveSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("reading incentive block", diags)
	}

	ceiling, _, err := attrDecimal(content.Attributes, "ceiling")
	if err != nil {
		return nil, err
	}
	schedule := &ratetable.IncentiveSchedule{Ceiling: ceiling}

	for _, inner := range content.Blocks {
		tierContent, diags := inner.Body.Content(incentiveTierSchema)
		if diags.HasErrors() {
			return nil, errors.Parsing("reading incentive tier block", diags)
		}
		attrs := tierContent.Attributes

		var tier ratetable.IncentiveTier
		from, _, err := attrDecimal(attrs, "from")
		if err != nil {
			return nil, err
		}
		tier.LowerBound = from

		if upTo, ok, err := attrDecimal(attrs, "up_to"); err != nil {
			return nil, err
		} else if ok {
			tier.UpperBound = &upTo
		}

		rate, _, err := attrDecimal(attrs, "rate")
		if err != nil {
			return nil, err
		}
		tier.Rate = rate
		schedule.Tiers = append(schedule.Tiers, tier)
	}
	return schedule, nil
}
