// Package config loads and persists wattwise configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"wattwise/internal/model"
)

// Config holds all wattwise configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Rules   RulesConfig   `toml:"rules"`
	Advisor AdvisorConfig `toml:"advisor"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultPeriod    string `toml:"default_period"`
	DefaultHousehold string `toml:"default_household,omitempty"`
	DatabasePath     string `toml:"database_path,omitempty"`
}

// RulesConfig holds the tunable thresholds of the rule engine.
type RulesConfig struct {
	BenchmarkDeltaPercent float64 `toml:"benchmark_delta_percent"`
	DeviceThreshold       float64 `toml:"device_threshold_kwh"`
	PricePerUnit          float64 `toml:"price_per_kwh"`

	// SavingPercent maps a device category to its expected saving share
	// when usage guidance is followed.
	SavingPercent map[string]float64 `toml:"saving_percent,omitempty"`
}

// AdvisorConfig holds advisory backend settings.
type AdvisorConfig struct {
	BaseURL     string  `toml:"base_url,omitempty"`
	APIKey      string  `toml:"api_key,omitempty"`
	Model       string  `toml:"model,omitempty"`
	TimeoutSecs int     `toml:"timeout_secs"`
	MaxAttempts int     `toml:"max_attempts"`
	Temperature float64 `toml:"temperature"`
}

// defaultSavingPercent is the per-category saving multiplier table used when
// the config file does not override it.
var defaultSavingPercent = map[string]float64{
	string(model.CategoryClimateControl): 0.20,
	string(model.CategoryWaterHeating):   0.15,
	string(model.CategoryRefrigeration):  0.12,
	string(model.CategoryEntertainment):  0.15,
	string(model.CategoryLaundry):        0.20,
	string(model.CategoryLighting):       0.30,
	string(model.CategoryComputing):      0.25,
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	saving := make(map[string]float64, len(defaultSavingPercent))
	for k, v := range defaultSavingPercent {
		saving[k] = v
	}
	return Config{
		General: GeneralConfig{
			DefaultPeriod: "current-cycle",
		},
		Rules: RulesConfig{
			BenchmarkDeltaPercent: 20,
			DeviceThreshold:       50,
			PricePerUnit:          0.5,
			SavingPercent:         saving,
		},
		Advisor: AdvisorConfig{
			Model:       "qwen-plus",
			TimeoutSecs: 30,
			MaxAttempts: 3,
			Temperature: 0.3,
		},
	}
}

// SavingPercentFor returns the saving multiplier for a device category,
// falling back to a conservative 10% for categories without an entry.
func (r RulesConfig) SavingPercentFor(cat model.DeviceCategory) float64 {
	if pct, ok := r.SavingPercent[string(cat)]; ok {
		return pct
	}
	return 0.10
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wattwise")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wattwise")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDatabasePath returns the database location used when the config
// does not name one.
func DefaultDatabasePath() string {
	return filepath.Join(ConfigDir(), "wattwise.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// AdvisorKey returns the advisory API key from env var or config, in that order.
func AdvisorKey(cfg Config) string {
	if key := os.Getenv("WATTWISE_ADVISOR_KEY"); key != "" {
		return key
	}
	return cfg.Advisor.APIKey
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
