// Package config loads runtime configuration for the growth-data processor.
// Values are layered: struct defaults, then an optional YAML file, then
// environment variables with the OD prefix. CLI flags override everything.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// DefaultConfigFile is the config file looked up in the working directory
// when OD_CONFIG_FILE is not set.
const DefaultConfigFile = "odcli.yaml"

// Config represents the complete application configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/odcli.log"`
}

// OutputConfig contains defaults for the processed output file.
type OutputConfig struct {
	DefaultFile string `yaml:"default_file" envconfig:"DEFAULT_FILE" default:"processed_growth_data.csv"`
}

// Load loads configuration from the optional config file and environment
// variables, environment taking precedence.
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first (also applies struct defaults).
	if err := envconfig.Process("OD", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if it exists.
	configFile := os.Getenv("OD_CONFIG_FILE")
	if configFile == "" {
		configFile = DefaultConfigFile
	}
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration, used when Load fails.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "console",
			FilePath: "logs/odcli.log",
		},
		Output: OutputConfig{
			DefaultFile: "processed_growth_data.csv",
		},
	}
}

// loadFromFile loads configuration from a YAML file.
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

// mergeConfigs merges file config with env config. Explicitly set OD_* env
// vars take precedence; file values override the built-in defaults.
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := envConfig
	if fileConfig.Logging.Level != "" && !envSet("OD_LOGGING_LEVEL") {
		merged.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Format != "" && !envSet("OD_LOGGING_FORMAT") {
		merged.Logging.Format = fileConfig.Logging.Format
	}
	if fileConfig.Logging.Output != "" && !envSet("OD_LOGGING_OUTPUT") {
		merged.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" && !envSet("OD_LOGGING_FILE_PATH") {
		merged.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if fileConfig.Output.DefaultFile != "" && !envSet("OD_OUTPUT_DEFAULT_FILE") {
		merged.Output.DefaultFile = fileConfig.Output.DefaultFile
	}
	return merged
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// validate checks configuration values.
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}
	if c.Output.DefaultFile == "" {
		return fmt.Errorf("output default_file must not be empty")
	}
	return nil
}
