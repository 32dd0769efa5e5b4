// =============================================================================
// Listing Toolkit - Configuration Module
// =============================================================================
//
// This module loads the application configuration.
//
// SOURCES (lowest to highest precedence):
//   1. Built-in defaults (setDefaults)
//   2. The config file (config.yaml by default, optional)
//   3. A .env file in the working directory (optional)
//   4. Environment variables prefixed with LUSH_
//
// Nested keys map to env vars with "." replaced by "_":
//   listing_defaults.condition -> LUSH_LISTING_DEFAULTS_CONDITION
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/lush-listing-kit/internal/export"
	"github.com/ginjaninja78/lush-listing-kit/internal/listing"
	"github.com/ginjaninja78/lush-listing-kit/internal/validation"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "LUSH"

// Default values.
const (
	DefaultInputDir        = "./input"
	DefaultOutputDir       = "./output"
	DefaultInputArchiveDir = "./input_archive"
	DefaultLogLevel        = "info"
	DefaultMaxConcurrency  = 4
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the global application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned by `process` for *.txt paste files.
	InputDir string `yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir receives every saved export and zip.
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`

	// InputArchiveDir receives paste files after they were processed.
	InputArchiveDir string `yaml:"input_archive_dir" mapstructure:"input_archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is an extra log destination. Empty logs to stderr only.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// ExportFormat is "csv" or "xlsx".
	ExportFormat string `yaml:"export_format" mapstructure:"export_format"`

	// MaxConcurrency bounds how many paste files `process` converts at once.
	MaxConcurrency int `yaml:"max_concurrency" mapstructure:"max_concurrency"`

	// ContinueOnError keeps `process` going after a file fails.
	ContinueOnError bool `yaml:"continue_on_error" mapstructure:"continue_on_error"`

	// CheckSKU warns about records without a trailing (SKU).
	CheckSKU bool `yaml:"check_sku" mapstructure:"check_sku"`

	// CheckCost warns about records that fell back to the default cost.
	CheckCost bool `yaml:"check_cost" mapstructure:"check_cost"`

	// ListingDefaults are the constant columns of every exported row.
	ListingDefaults listing.BusinessFields `yaml:"listing_defaults" mapstructure:"listing_defaults"`
}

// Format returns the parsed export format.
func (c *Config) Format() export.Format {
	f, _ := export.ParseFormat(c.ExportFormat)
	return f
}

// Checks returns the record checks enabled by the configuration.
func (c *Config) Checks() validation.Options {
	return validation.Options{SkipSKU: !c.CheckSKU, SkipCost: !c.CheckCost}
}

// =============================================================================
// LOADING
// =============================================================================

// Load builds the configuration from defaults, the optional config file,
// an optional .env file and LUSH_* environment variables.
//
// PARAMETERS:
//   - configPath: Path to the config file. A missing file is not an error.
//
// RETURNS:
//   - A validated configuration.
//   - An error if the file exists but cannot be parsed, or validation fails.
func Load(configPath string) (*Config, error) {
	// .env is optional; existing env vars win over it.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	cfg.ContinueOnError = true
	cfg.CheckSKU = true
	cfg.CheckCost = true
	return &cfg
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input_dir", DefaultInputDir)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("input_archive_dir", DefaultInputArchiveDir)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("export_format", string(export.FormatCSV))
	v.SetDefault("max_concurrency", DefaultMaxConcurrency)
	v.SetDefault("continue_on_error", true)
	v.SetDefault("check_sku", true)
	v.SetDefault("check_cost", true)

	// Every nested key needs a default for AutomaticEnv to see it.
	d := listing.DefaultBusinessFields()
	v.SetDefault("listing_defaults.category", d.Category)
	v.SetDefault("listing_defaults.sub_category", d.SubCategory)
	v.SetDefault("listing_defaults.description", d.Description)
	v.SetDefault("listing_defaults.quantity", d.Quantity)
	v.SetDefault("listing_defaults.type", d.Type)
	v.SetDefault("listing_defaults.price", d.Price)
	v.SetDefault("listing_defaults.shipping_profile", d.ShippingProfile)
	v.SetDefault("listing_defaults.offerable", d.Offerable)
	v.SetDefault("listing_defaults.hazmat", d.Hazmat)
	v.SetDefault("listing_defaults.condition", d.Condition)
}

// applyDefaults fills zero values. The boolean settings have no zero-value
// default here because false is a legitimate setting.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = DefaultInputDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = DefaultInputArchiveDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.ExportFormat == "" {
		cfg.ExportFormat = string(export.FormatCSV)
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = DefaultMaxConcurrency
	}
	cfg.ListingDefaults = cfg.ListingDefaults.WithDefaults()
}

func validate(cfg *Config) error {
	if _, err := export.ParseFormat(cfg.ExportFormat); err != nil {
		return err
	}
	if cfg.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", cfg.MaxConcurrency)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	return nil
}
