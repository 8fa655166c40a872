// Package config defines the paysheet configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers a YAML file and PAYSHEET_* environment variables on top.
// - External errors are wrapped with this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// OutputSuffix is appended to the --output name when writing a report.
	OutputSuffix string `koanf:"output_suffix"`

	// RateAliases lists the header names accepted for the hourly rate column.
	RateAliases []string `koanf:"rate_aliases"`

	// MetricsEnabled toggles Prometheus recording.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsFile, when set, receives the registry in text exposition format
	// at the end of every run.
	MetricsFile string `koanf:"metrics_file"`
}

// DefaultRateAliases are the rate column names accepted out of the box.
func DefaultRateAliases() []string {
	return []string{"hourly_rate", "rate", "salary"}
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		OutputSuffix:   ".csv",
		RateAliases:    DefaultRateAliases(),
		MetricsEnabled: true,
	}
}
