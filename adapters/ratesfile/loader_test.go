package ratesfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"rentsplit/core/ratetable"
	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

const sampleSchedule = `
provider "tnb" {
  name          = "Tenaga Nasional"
  utility       = "electricity"
  family        = "progressive_tier"
  currency      = "MYR"
  service_areas = ["peninsular"]

  tier {
    up_to = 200
    rate  = 0.218
  }
  tier {
    rate = 0.571
  }

  tax {
    name                = "service tax"
    threshold           = 600
    rate                = 0.08
    applies_to_subtotal = false
  }

  incentive {
    ceiling = 1000
    tier {
      from  = 0
      up_to = 200
      rate  = -0.25
    }
    tier {
      from  = 200
      rate  = -0.05
    }
  }
}

provider "unifi" {
  utility = "internet"
  family  = "flat_fee"

  flat_fee {
    name   = "monthly fee"
    amount = 129.00
  }
}
`

func writeSchedule(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadDirBuildsRegistry(t *testing.T) {
	dir := writeSchedule(t, "schedule.hcl", sampleSchedule)

	registry, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if registry.Len() != 2 {
		t.Fatalf("expected 2 providers, got %d", registry.Len())
	}

	table, err := registry.Get("tnb")
	if err != nil {
		t.Fatal(err)
	}
	if table.Utility != types.UtilityElectricity || table.Family != ratetable.FamilyProgressiveTier {
		t.Errorf("tnb parsed as %s/%s", table.Utility, table.Family)
	}
	if len(table.Tiers) != 2 {
		t.Fatalf("tnb tiers = %d, want 2", len(table.Tiers))
	}

	// Rates must survive parsing exactly, with no float64 round trip.
	wantRate, _ := decimal.NewFromString("0.218")
	if !table.Tiers[0].Rate.Equal(wantRate) {
		t.Errorf("tier rate = %s, want exactly 0.218", table.Tiers[0].Rate)
	}
	if table.Tiers[0].UpperBound == nil || !table.Tiers[0].UpperBound.Equal(decimal.NewFromInt(200)) {
		t.Errorf("tier bound = %v, want 200", table.Tiers[0].UpperBound)
	}
	if table.Tiers[1].UpperBound != nil {
		t.Error("last tier must parse as unbounded")
	}

	if len(table.TaxRules) != 1 {
		t.Fatalf("tax rules = %d, want 1", len(table.TaxRules))
	}
	rule := table.TaxRules[0]
	if rule.AppliesToSubtotal {
		t.Error("applies_to_subtotal=false must parse as excess-portion rule")
	}
	if !rule.ThresholdUsage.Equal(decimal.NewFromInt(600)) {
		t.Errorf("tax threshold = %s, want 600", rule.ThresholdUsage)
	}

	if table.Incentive == nil || len(table.Incentive.Tiers) != 2 {
		t.Fatalf("incentive not parsed: %+v", table.Incentive)
	}
	if !table.Incentive.Ceiling.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("incentive ceiling = %s, want 1000", table.Incentive.Ceiling)
	}

	internet, err := registry.Get("unifi")
	if err != nil {
		t.Fatal(err)
	}
	if internet.Currency != types.CurrencyMYR {
		t.Errorf("default currency = %s, want MYR", internet.Currency)
	}
}

func TestLoadDirRejectsInvalidFamily(t *testing.T) {
	dir := writeSchedule(t, "bad.hcl", `
provider "x" {
  utility = "electricity"
  family  = "mystery"
  tier {
    rate = 0.2
  }
}
`)
	if _, err := LoadDir(dir); !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
}

func TestLoadDirRejectsMalformedHCL(t *testing.T) {
	dir := writeSchedule(t, "broken.hcl", `provider "x" {`)
	if _, err := LoadDir(dir); !errors.IsType(err, errors.TypeParsing) {
		t.Fatalf("expected PARSING_ERROR, got %v", err)
	}
}

func TestLoadFileFreeAllocation(t *testing.T) {
	dir := writeSchedule(t, "water.hcl", `
provider "sains" {
  utility        = "water"
  family         = "free_allocation"
  free_allowance = 10

  tier {
    up_to = 25
    rate  = 0.99
  }
  tier {
    rate = 1.99
  }
}
`)
	tables, err := LoadFile(filepath.Join(dir, "water.hcl"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if !tables[0].FreeAllowance.Equal(decimal.NewFromInt(10)) {
		t.Errorf("free allowance = %s, want 10", tables[0].FreeAllowance)
	}
}
