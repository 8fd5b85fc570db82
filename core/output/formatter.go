// Package output provides output formatting for engine results.
// This package produces human and machine-readable renderings; it never
// feeds back into the calculation.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"rentsplit/core/types"
	"rentsplit/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter renders engine results in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderBreakdown renders an itemized charge breakdown
	RenderBreakdown(w io.Writer, breakdown *types.ChargeBreakdown) error

	// RenderAllocation renders a per-tenant allocation result
	RenderAllocation(w io.Writer, result *types.AllocationResult) error
}

// New returns the formatter for a format name
func New(format Format) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return &cliFormatter{}, nil
	case FormatJSON:
		return &jsonFormatter{}, nil
	default:
		return nil, errors.Newf(errors.TypeInput, "unknown output format %q", format)
	}
}

type cliFormatter struct{}

func (f *cliFormatter) Format() Format { return FormatCLI }

func (f *cliFormatter) RenderBreakdown(w io.Writer, breakdown *types.ChargeBreakdown) error {
	fmt.Fprintf(w, "%s (%s)\n", breakdown.Provider, breakdown.Utility)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, c := range breakdown.Components {
		fmt.Fprintf(tw, "  %s\t%s %s\n", c.Name, breakdown.Currency, c.Amount.StringFixed(2))
	}
	fmt.Fprintf(tw, "  total\t%s %s\n", breakdown.Currency, breakdown.Total.StringFixed(2))
	return tw.Flush()
}

func (f *cliFormatter) RenderAllocation(w io.Writer, result *types.AllocationResult) error {
	fmt.Fprintf(w, "allocation (%s), %d tenants, total %s %s\n",
		result.Method, result.TenantCount, result.Currency, result.TotalAmount.StringFixed(2))

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  tenant\trent\tinternet\twater\tcommon elec\tAC\tmisc\ttotal")
	for _, a := range result.Allocations {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.TenantName,
			a.Rent.StringFixed(2),
			a.Internet.StringFixed(2),
			a.Water.StringFixed(2),
			a.CommonElectricity.StringFixed(2),
			a.IndividualAC.StringFixed(2),
			a.Miscellaneous.StringFixed(2),
			a.TotalAmount.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, anomaly := range result.Anomalies {
		fmt.Fprintf(w, "  warning: %s", anomaly.Detail)
		if anomaly.TenantID != "" {
			fmt.Fprintf(w, " (tenant %s)", anomaly.TenantID)
		}
		fmt.Fprintln(w)
	}
	return nil
}

type jsonFormatter struct{}

func (f *jsonFormatter) Format() Format { return FormatJSON }

func (f *jsonFormatter) RenderBreakdown(w io.Writer, breakdown *types.ChargeBreakdown) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(breakdown)
}

func (f *jsonFormatter) RenderAllocation(w io.Writer, result *types.AllocationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
