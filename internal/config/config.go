// Package config loads server configuration from a YAML file with sane
// defaults, using viper so values can also be overridden via environment
// variables (GAFFER_ prefix).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/gafferdeck/gaffer-server-go/internal/game"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Rules    game.Rules     `mapstructure:"rules"`
}

// ServerConfig configures the HTTP/websocket listener.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// DatabaseConfig configures the optional Postgres store. An empty URL runs
// the server with in-memory persistence.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// Load reads configuration from the given path. A missing file is not an
// error; defaults and environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("database.url", "")

	defaults := game.DefaultRules()
	v.SetDefault("rules.hand_size", defaults.HandSize)
	v.SetDefault("rules.max_plays", defaults.MaxPlays)
	v.SetDefault("rules.max_discards", defaults.MaxDiscards)
	v.SetDefault("rules.max_selected", defaults.MaxSelected)
	v.SetDefault("rules.total_antes", defaults.TotalAntes)
	v.SetDefault("rules.interest_step", defaults.InterestStep)
	v.SetDefault("rules.max_interest", defaults.MaxInterest)
	v.SetDefault("rules.shop_modifier_count", defaults.ShopModifierCount)
	v.SetDefault("rules.modifier_price", defaults.ModifierPrice)
	v.SetDefault("rules.tactic_price", defaults.TacticPrice)
	v.SetDefault("rules.transfer_price", defaults.TransferPrice)

	v.SetEnvPrefix("GAFFER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
