package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the CLI
type Config struct {
	Log   LogConfig   `mapstructure:"log"`
	Data  DataConfig  `mapstructure:"data"`
	Query QueryConfig `mapstructure:"query"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DataConfig names where triples are loaded from.
// Badger takes precedence over Path when both are set.
type DataConfig struct {
	Path   string `mapstructure:"path"`
	Badger string `mapstructure:"badger"`
}

// QueryConfig holds executor settings
type QueryConfig struct {
	AllowUnbound bool `mapstructure:"allow_unbound"`
	Sort         bool `mapstructure:"sort"`
}

const envPrefix = "JANUS"

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("data.path", "")
	v.SetDefault("data.badger", "")
	v.SetDefault("query.allow_unbound", false)
	v.SetDefault("query.sort", false)
}

// loadConfig reads the optional config file, then environment variables
// (JANUS_LOG_LEVEL, JANUS_DATA_PATH, ...), then bound flags.
func loadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return cfg, nil
}
