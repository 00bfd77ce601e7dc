// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/pable/go-versus-stats/internal/aggregator"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Engine EngineConfig `toml:"engine"`
	Log    LogConfig    `toml:"log"`
}

// EngineConfig maps aggregation settings.
type EngineConfig struct {
	DesyncThreshold *int `toml:"desync-threshold"`
	SurgeStreak     *int `toml:"surge-streak"`
	SurgeMinGarbage *int `toml:"surge-min-garbage"`
	CleanThreshold  *int `toml:"clean-threshold"`
	Workers         *int `toml:"workers"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// Settings are the resolved values after defaults, file and flags.
type Settings struct {
	DesyncThreshold int
	SurgeStreak     int
	SurgeMinGarbage int
	CleanThreshold  int
	Workers         int
	LogLevel        string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		DesyncThreshold: aggregator.DefaultDesyncThreshold,
		SurgeStreak:     aggregator.DefaultSurgeStreak,
		SurgeMinGarbage: aggregator.DefaultSurgeMinGarbage,
		CleanThreshold:  aggregator.DefaultCleanThreshold,
		Workers:         1,
		LogLevel:        "warn",
	}
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

func (c FileConfig) validate() error {
	e := c.Engine
	if e.DesyncThreshold != nil && *e.DesyncThreshold < 0 {
		return fmt.Errorf("engine.desync-threshold must not be negative, got %d", *e.DesyncThreshold)
	}
	for _, f := range []struct {
		name string
		v    *int
	}{
		{"surge-streak", e.SurgeStreak},
		{"surge-min-garbage", e.SurgeMinGarbage},
		{"clean-threshold", e.CleanThreshold},
		{"workers", e.Workers},
	} {
		if f.v != nil && *f.v <= 0 {
			return fmt.Errorf("engine.%s must be positive, got %d", f.name, *f.v)
		}
	}
	return nil
}

// Apply overrides s with every value set in the file.
func (c FileConfig) Apply(s Settings) Settings {
	e := c.Engine
	if e.DesyncThreshold != nil {
		s.DesyncThreshold = *e.DesyncThreshold
	}
	if e.SurgeStreak != nil {
		s.SurgeStreak = *e.SurgeStreak
	}
	if e.SurgeMinGarbage != nil {
		s.SurgeMinGarbage = *e.SurgeMinGarbage
	}
	if e.CleanThreshold != nil {
		s.CleanThreshold = *e.CleanThreshold
	}
	if e.Workers != nil {
		s.Workers = *e.Workers
	}
	if c.Log.Level != nil {
		s.LogLevel = *c.Log.Level
	}
	return s
}

// Options converts s into aggregator options.
func (s Settings) Options() aggregator.Options {
	return aggregator.Options{
		DesyncThreshold: aggregator.Threshold(s.DesyncThreshold),
		SurgeStreak:     s.SurgeStreak,
		SurgeMinGarbage: s.SurgeMinGarbage,
		CleanThreshold:  s.CleanThreshold,
		Workers:         s.Workers,
	}
}
