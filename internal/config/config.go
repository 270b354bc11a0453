package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"etfgeo/internal/errors"
)

const (
	// EnvPrefix namespaces all environment variables (ETFGEO_INPUT_FILE, ...).
	EnvPrefix = "ETFGEO"

	// DefaultConfigFile is looked up in the working directory when no
	// explicit config path is given.
	DefaultConfigFile = "etfgeo.yaml"

	// DefaultInputFile is the holdings file analyzed when -in is not given.
	DefaultInputFile = "holdings.csv"

	// DefaultOutputFile receives the exported per-country allocation.
	DefaultOutputFile = "country_allocation.csv"
)

// Config represents the complete application configuration
type Config struct {
	Input          InputConfig          `yaml:"input" envconfig:"INPUT"`
	Output         OutputConfig         `yaml:"output" envconfig:"OUTPUT"`
	Classification ClassificationConfig `yaml:"classification" envconfig:"CLASSIFICATION"`
	Logging        LoggingConfig        `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig names the default holdings file to analyze.
type InputConfig struct {
	File string `yaml:"file" envconfig:"FILE" validate:"required"`
}

// OutputConfig controls where and how the aggregate is exported.
type OutputConfig struct {
	File   string `yaml:"file" envconfig:"FILE" validate:"required"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=csv json none"`
}

// ClassificationConfig holds the cash/equity classification policy.
// FavorEquity inverts the default conservative bias: when true, rows whose
// only cash evidence is a bare currency-code token stay in the equity set.
type ClassificationConfig struct {
	FavorEquity bool `yaml:"favor_equity" envconfig:"FAVOR_EQUITY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input:  InputConfig{File: DefaultInputFile},
		Output: OutputConfig{File: DefaultOutputFile, Format: "csv"},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/etfgeo.log",
		},
	}
}

// Load builds the configuration in order of precedence: defaults, then the
// YAML config file if present, then ETFGEO_* environment variables.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = DefaultConfigFile
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, errors.NewConfigError("failed to load config from file", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.NewConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// loadFromFile overlays values from a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate checks the configuration using struct tags
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("logging.file_path required when logging.output is %q", c.Logging.Output)
	}
	return nil
}
