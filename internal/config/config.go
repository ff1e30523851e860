package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Input      InputConfig      `yaml:"input" envconfig:"INPUT"`
	Output     OutputConfig     `yaml:"output" envconfig:"OUTPUT"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig describes how the field sheet is read
type InputConfig struct {
	// Delimiter for character-delimited input; single character.
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" default:"," validate:"len=1"`
	// Sheet is the worksheet name for xlsx input; empty means auto-discover.
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
}

// OutputConfig contains output locations for the aggregate tables
type OutputConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" default:"data/reports" validate:"required"`
	// WriteDailyRates additionally exports the per-interval daily-rate table.
	WriteDailyRates bool `yaml:"write_daily_rates" envconfig:"WRITE_DAILY_RATES" default:"true"`
}

// ProcessingConfig tunes the normalization stage
type ProcessingConfig struct {
	// Workers bounds the per-trap fan-out of the interval normalizer.
	// Correctness only depends on ordering within a trap, so any value >= 1
	// produces identical output.
	Workers int `yaml:"workers" envconfig:"WORKERS" validate:"min=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/litter.log"`
}

// Load loads configuration from environment variables and an optional YAML
// file. Environment takes precedence over the file, file over defaults.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("LITTER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("config file not readable: %w", err)
		}
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Input.Delimiter == "" || envConfig.Input.Delimiter == "," {
		if fileConfig.Input.Delimiter != "" {
			envConfig.Input.Delimiter = fileConfig.Input.Delimiter
		}
	}
	if envConfig.Input.Sheet == "" {
		envConfig.Input.Sheet = fileConfig.Input.Sheet
	}
	if envConfig.Output.Dir == "" || envConfig.Output.Dir == DefaultReportsDir {
		if fileConfig.Output.Dir != "" {
			envConfig.Output.Dir = fileConfig.Output.Dir
		}
	}
	if envConfig.Processing.Workers == 0 {
		envConfig.Processing.Workers = fileConfig.Processing.Workers
	}
	if fileConfig.Logging.Level != "" && envConfig.Logging.Level == "info" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	return envConfig
}

// applyDefaults fills fields envconfig defaults cannot express
func (c *Config) applyDefaults() {
	if c.Input.Delimiter == "" {
		c.Input.Delimiter = ","
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultReportsDir
	}
	if c.Processing.Workers <= 0 {
		c.Processing.Workers = runtime.NumCPU()
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join(DefaultLogsDir, "litter.log")
	}
}

// Validate checks the configuration against its declared constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}
