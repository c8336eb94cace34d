// Package config provides configuration management for the analyzer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	UI       UIConfig       `mapstructure:"ui"`
}

// AnalysisConfig holds the numeric defaults for strategy analysis.
type AnalysisConfig struct {
	RiskFreeRate      float64 `mapstructure:"risk_free_rate"`
	CurveRange        float64 `mapstructure:"curve_range"`
	SharesPerContract int     `mapstructure:"shares_per_contract"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// UIConfig holds terminal output configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-analyzer"
	}
	return filepath.Join(home, ".config", "options-analyzer")
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default config directory is used. A missing config file yields
// the defaults rather than an error.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("analysis.risk_free_rate", 0.05)
	v.SetDefault("analysis.curve_range", 0.5)
	v.SetDefault("analysis.shares_per_contract", 100)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "analyzer.log"))
	v.SetDefault("logging.max_size_mb", 50)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)

	v.SetDefault("ui.color_enabled", true)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ANALYZER_RISK_FREE_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analysis.RiskFreeRate = rate
		}
	}
	if v := os.Getenv("ANALYZER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Analysis.RiskFreeRate < 0 || c.Analysis.RiskFreeRate >= 1 {
		return fmt.Errorf("risk_free_rate must be in [0, 1), got %v", c.Analysis.RiskFreeRate)
	}
	if c.Analysis.CurveRange <= 0 || c.Analysis.CurveRange > 1 {
		return fmt.Errorf("curve_range must be in (0, 1], got %v", c.Analysis.CurveRange)
	}
	if c.Analysis.SharesPerContract <= 0 {
		return fmt.Errorf("shares_per_contract must be positive, got %d", c.Analysis.SharesPerContract)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}
