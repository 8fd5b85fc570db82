// Package cmd - providers command
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// providersCmd lists the loaded rate tables
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List providers from the loaded rate schedules",
	RunE:  runProviders,
}

func init() {
	providersCmd.Flags().StringVar(&rateRatesDir, "rates", "", "rate schedule directory (defaults to config)")
}

func runProviders(cmd *cobra.Command, args []string) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "key\tname\tutility\tfamily\tcurrency")
	for _, key := range registry.List() {
		table, err := registry.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			table.Provider, table.Name, table.Utility, table.Family, table.Currency)
	}
	return tw.Flush()
}
