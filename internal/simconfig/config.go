package simconfig

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the engine configuration. Tick and max duration are fixed for
// the lifetime of a run.
type Config struct {
	ContentDir       string  `mapstructure:"content_dir"`
	TickSeconds      float64 `mapstructure:"tick_seconds"`
	MaxBattleSeconds float64 `mapstructure:"max_battle_seconds"`
	LogLevel         string  `mapstructure:"log_level"`
}

func Default() Config {
	return Config{
		ContentDir:       "content",
		TickSeconds:      0.1,
		MaxBattleSeconds: 60.0,
		LogLevel:         "info",
	}
}

// Load reads a config file, layering it over the defaults. An empty path
// returns the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()
	v.SetDefault("content_dir", cfg.ContentDir)
	v.SetDefault("tick_seconds", cfg.TickSeconds)
	v.SetDefault("max_battle_seconds", cfg.MaxBattleSeconds)
	v.SetDefault("log_level", cfg.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	if cfg.TickSeconds <= 0 {
		return cfg, fmt.Errorf("tick_seconds must be positive, got %v", cfg.TickSeconds)
	}
	if cfg.MaxBattleSeconds <= 0 {
		return cfg, fmt.Errorf("max_battle_seconds must be positive, got %v", cfg.MaxBattleSeconds)
	}
	return cfg, nil
}
