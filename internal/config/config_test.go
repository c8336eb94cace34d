package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Empty directory: no config.toml, defaults apply.
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Analysis.RiskFreeRate != 0.05 {
		t.Errorf("RiskFreeRate = %v, want 0.05", cfg.Analysis.RiskFreeRate)
	}
	if cfg.Analysis.CurveRange != 0.5 {
		t.Errorf("CurveRange = %v, want 0.5", cfg.Analysis.CurveRange)
	}
	if cfg.Analysis.SharesPerContract != 100 {
		t.Errorf("SharesPerContract = %d, want 100", cfg.Analysis.SharesPerContract)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	toml := `[analysis]
risk_free_rate = 0.04
curve_range = 0.3

[logging]
level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.RiskFreeRate != 0.04 {
		t.Errorf("RiskFreeRate = %v, want 0.04", cfg.Analysis.RiskFreeRate)
	}
	if cfg.Analysis.CurveRange != 0.3 {
		t.Errorf("CurveRange = %v, want 0.3", cfg.Analysis.CurveRange)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Unset keys still fall back to defaults.
	if cfg.Analysis.SharesPerContract != 100 {
		t.Errorf("SharesPerContract = %d, want 100", cfg.Analysis.SharesPerContract)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ANALYZER_RISK_FREE_RATE", "0.035")
	t.Setenv("ANALYZER_LOG_LEVEL", "warn")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.RiskFreeRate != 0.035 {
		t.Errorf("RiskFreeRate = %v, want env override 0.035", cfg.Analysis.RiskFreeRate)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Analysis: AnalysisConfig{RiskFreeRate: 0.05, CurveRange: 0.5, SharesPerContract: 100},
			Logging:  LoggingConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"negative rate", func(c *Config) { c.Analysis.RiskFreeRate = -0.01 }, true},
		{"rate at one", func(c *Config) { c.Analysis.RiskFreeRate = 1 }, true},
		{"zero curve range", func(c *Config) { c.Analysis.CurveRange = 0 }, true},
		{"curve range above one", func(c *Config) { c.Analysis.CurveRange = 1.5 }, true},
		{"zero shares", func(c *Config) { c.Analysis.SharesPerContract = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
