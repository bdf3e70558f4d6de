package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/justyntemme/ladspago/pkg/host"
)

// Config holds the tool settings. Flags take precedence over the
// environment.
type Config struct {
	Path       string `mapstructure:"path"`
	BlockSize  int    `mapstructure:"block_size"`
	SampleRate int    `mapstructure:"sample_rate"`
}

// LoadConfig reads LADSPA_PATH, LADSPA_TOOL_BLOCK_SIZE and
// LADSPA_TOOL_SAMPLE_RATE.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("path", host.DefaultPath)
	v.SetDefault("block_size", 1024)
	v.SetDefault("sample_rate", 44100)

	v.SetEnvPrefix("LADSPA_TOOL")
	v.AutomaticEnv()
	if err := v.BindEnv("path", "LADSPA_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind LADSPA_PATH: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if pathFlag != "" {
		cfg.Path = pathFlag
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.BlockSize <= 0 {
		return fmt.Errorf("block size must be positive, got %d", cfg.BlockSize)
	}
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", cfg.SampleRate)
	}
	return nil
}

// Dirs returns the directories to search for libraries.
func (c *Config) Dirs() []string {
	return host.SearchPath(c.Path)
}
