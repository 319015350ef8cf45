package application

import (
	"errors"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	estimation "fleetdesk/internal/estimation/domain"
)

// Thresholds defines the budget alert trigger points.
type Thresholds struct {
	WarningPct     float64 `yaml:"warning_pct"`
	HighPct        float64 `yaml:"high_pct"`
	RepairCostHigh float64 `yaml:"repair_cost_high"`
}

// Config defines the estimation and budgeting configuration. Values come
// from an optional YAML file pointed at by FLEET_CONFIG, with env-var
// fallbacks for the common knobs.
type Config struct {
	MonthlyBudget   float64    `yaml:"monthly_budget"`
	Currency        string     `yaml:"currency"`
	Thresholds      Thresholds `yaml:"thresholds"`
	CacheTTLSeconds int        `yaml:"cache_ttl_seconds"`
	MinRAMGB        int        `yaml:"min_ram_gb"`
	MinIntelGen     int        `yaml:"min_intel_gen"`
	MinRyzenGen     int        `yaml:"min_ryzen_gen"`
}

// LoadConfig loads config from yaml or env.
func LoadConfig() (Config, error) {
	cfg := Config{
		MonthlyBudget: getenvFloatDefault("MONTHLY_BUDGET", 20000),
		Currency:      getenvDefault("CURRENCY", "RM"),
		Thresholds: Thresholds{
			WarningPct:     75,
			HighPct:        90,
			RepairCostHigh: 5000,
		},
		CacheTTLSeconds: getenvIntDefault("DASHBOARD_CACHE_TTL_SECONDS", 60),
		MinRAMGB:        8,
		MinIntelGen:     8,
		MinRyzenGen:     3,
	}

	if path := os.Getenv("FLEET_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.MonthlyBudget < 0 {
		return cfg, errors.New("estimation config: negative monthly budget")
	}
	if cfg.Thresholds.WarningPct <= 0 || cfg.Thresholds.HighPct <= cfg.Thresholds.WarningPct {
		return cfg, errors.New("estimation config: warning_pct must be positive and below high_pct")
	}
	if cfg.CacheTTLSeconds < 0 {
		return cfg, errors.New("estimation config: negative cache ttl")
	}
	return cfg, nil
}

// Policy returns the configured obsolescence policy.
func (c Config) Policy() estimation.ObsolescencePolicy {
	return estimation.ObsolescencePolicy{
		MinRAMGB:    c.MinRAMGB,
		MinIntelGen: c.MinIntelGen,
		MinRyzenGen: c.MinRyzenGen,
	}
}

// CacheTTL returns the dashboard cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvFloatDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
