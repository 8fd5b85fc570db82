// Package cmd - rate command
package cmd

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"rentsplit/adapters/ratesfile"
	"rentsplit/core/output"
	"rentsplit/core/ratetable"
	"rentsplit/core/tariff"
	"rentsplit/internal/config"
)

var (
	rateProvider string
	rateUsage    string
	rateRatesDir string
	rateFormat   string
)

// rateCmd computes a single provider charge breakdown
var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Compute a charge breakdown for one provider and usage quantity",
	Long: `Rate a usage quantity against a provider's tariff schedule and
print the itemized charge breakdown.

Examples:
  rentsplit rate --provider tnb --usage 350
  rentsplit rate --provider air_selangor --usage 24.5 --format json`,
	RunE: runRate,
}

func init() {
	rateCmd.Flags().StringVarP(&rateProvider, "provider", "p", "", "provider key (required)")
	rateCmd.Flags().StringVarP(&rateUsage, "usage", "u", "0", "usage quantity (kWh, m3)")
	rateCmd.Flags().StringVar(&rateRatesDir, "rates", "", "rate schedule directory (defaults to config)")
	rateCmd.Flags().StringVarP(&rateFormat, "format", "f", "", "output format (cli, json)")
	_ = rateCmd.MarkFlagRequired("provider")
}

func runRate(cmd *cobra.Command, args []string) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	table, err := registry.Get(rateProvider)
	if err != nil {
		return err
	}

	usage, err := decimal.NewFromString(rateUsage)
	if err != nil {
		return fmt.Errorf("invalid usage quantity %q: %w", rateUsage, err)
	}

	breakdown, err := tariff.Compute(table, usage)
	if err != nil {
		return err
	}

	formatter, err := outputFormatter(rateFormat)
	if err != nil {
		return err
	}
	return formatter.RenderBreakdown(os.Stdout, breakdown)
}

// loadRegistry builds the provider registry from the flag or configured
// schedule directory.
func loadRegistry() (*ratetable.Registry, error) {
	dir := rateRatesDir
	if dir == "" {
		dir = allocRatesDir
	}
	if dir == "" {
		dir = config.Get().Rates.ScheduleDir
	}
	return ratesfile.LoadDir(dir)
}

func outputFormatter(format string) (output.Formatter, error) {
	if format == "" {
		format = config.Get().Output.DefaultFormat
	}
	return output.New(output.Format(format))
}
