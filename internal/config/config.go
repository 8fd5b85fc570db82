// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"rentsplit/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Rates contains rate schedule configuration
	Rates RatesConfig `json:"rates"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// RatesConfig contains rate schedule settings
type RatesConfig struct {
	// ScheduleDir is the directory holding provider schedule files (.hcl)
	ScheduleDir string `json:"schedule_dir"`

	// DefaultCurrency is the currency assumed when a schedule omits one
	DefaultCurrency string `json:"default_currency"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowDetails shows itemized charge components
	ShowDetails bool `json:"show_details"`

	// ShowAnomalies shows usage anomaly warnings in output
	ShowAnomalies bool `json:"show_anomalies"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	scheduleDir := filepath.Join(homeDir, ".rentsplit", "schedules")

	return &Config{
		Version: "1.0",
		Rates: RatesConfig{
			ScheduleDir:     scheduleDir,
			DefaultCurrency: "MYR",
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   true,
			ShowAnomalies: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
