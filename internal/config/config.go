// Package config loads and saves run configuration files.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultN       = 128
	DefaultDt      = 0.01
	DefaultPeriods = 1
)

// Config mirrors the recognized run options. Steps == 0 means the step count
// is derived from Dt and Periods so every run covers a common physical
// horizon.
type Config struct {
	N       int      `yaml:"n"`
	Dt      float64  `yaml:"dt"`
	Steps   int      `yaml:"steps"`
	Periods int      `yaml:"periods"`
	Seed    int64    `yaml:"seed"`
	Schemes []string `yaml:"schemes"`
}

func DefaultConfig() *Config {
	return &Config{
		N:       DefaultN,
		Dt:      DefaultDt,
		Periods: DefaultPeriods,
		Schemes: []string{"verlet", "euler", "backward-euler"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
