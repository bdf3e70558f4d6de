package debug

import (
	"fmt"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables read by LoadConfig.
const EnvPrefix = "LADSPAGO"

// Config controls where and how diagnostics are written. Hosts give plugins
// no configuration channel, so it comes from the environment:
// LADSPAGO_LOG_LEVEL, LADSPAGO_LOG_FILE and LADSPAGO_LOG_JSON.
type Config struct {
	Level string `mapstructure:"log_level"`
	File  string `mapstructure:"log_file"`
	JSON  bool   `mapstructure:"log_json"`
}

// LoadConfig reads the logging configuration from the environment.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_json", false)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read logging config: %w", err)
	}
	return cfg, nil
}

// Configure applies cfg to the default logger. On error the logger is left
// unchanged.
func Configure(cfg Config) error {
	return defaultLogger.Configure(cfg)
}

// Configure applies cfg to l. On error l is left unchanged.
func (l *Logger) Configure(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			return err
		}
		l.output = f
	}
	l.level = level
	l.json = cfg.JSON
	l.rebuild()
	return nil
}
