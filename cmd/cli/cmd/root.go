// Package cmd provides the CLI commands for rentsplit.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rentsplit/internal/config"
	"rentsplit/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rentsplit",
	Short: "Rate utility usage and split shared costs across tenants",
	Long: `rentsplit rates raw monthly consumption against provider tariff
schedules and allocates the resulting cost pool across tenants.

Examples:
  rentsplit rate --provider tnb --usage 350
  rentsplit allocate --method layered_precise period.json
  rentsplit providers --rates ./schedules`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rentsplit.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("rentsplit version 0.1.0")
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		fmt.Printf("schedule dir:     %s\n", cfg.Rates.ScheduleDir)
		fmt.Printf("default currency: %s\n", cfg.Rates.DefaultCurrency)
		fmt.Printf("output format:    %s\n", cfg.Output.DefaultFormat)
		fmt.Printf("log level:        %s\n", cfg.Logging.Level)
		return nil
	},
}
