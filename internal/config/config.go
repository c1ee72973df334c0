package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/GridCombat/internal/game/core"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Combat  CombatConfig  `mapstructure:"combat"`
	Search  SearchConfig  `mapstructure:"search"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// CombatConfig holds unit stats and simulation limits
type CombatConfig struct {
	HitPoints   int               `mapstructure:"hit_points"`
	AttackPower AttackPowerConfig `mapstructure:"attack_power"`
	MaxRounds   int               `mapstructure:"max_rounds"`
}

// AttackPowerConfig holds the starting attack power per faction
type AttackPowerConfig struct {
	Elf    int `mapstructure:"elf"`
	Goblin int `mapstructure:"goblin"`
}

// UnitStats converts the combat settings into parser stats
func (c CombatConfig) UnitStats() core.UnitStats {
	return core.UnitStats{
		HitPoints: c.HitPoints,
		AttackPower: map[core.Faction]int{
			core.Elf:    c.AttackPower.Elf,
			core.Goblin: c.AttackPower.Goblin,
		},
	}
}

// SearchConfig holds attack power search settings
type SearchConfig struct {
	Faction        string `mapstructure:"faction"`
	Strategy       string `mapstructure:"strategy"`
	MaxAttackPower int    `mapstructure:"max_attack_power"`
	Workers        int    `mapstructure:"workers"`
	AbortOnLoss    bool   `mapstructure:"abort_on_loss"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig holds result rendering settings
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Combat defaults
	v.SetDefault("combat.hit_points", 200)
	v.SetDefault("combat.attack_power.elf", 3)
	v.SetDefault("combat.attack_power.goblin", 3)
	v.SetDefault("combat.max_rounds", 0)

	// Search defaults
	v.SetDefault("search.faction", "elf")
	v.SetDefault("search.strategy", "bisect")
	v.SetDefault("search.max_attack_power", 1024)
	v.SetDefault("search.workers", 1)
	v.SetDefault("search.abort_on_loss", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Output defaults
	v.SetDefault("output.format", "text")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/gridcombat")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("GRIDCOMBAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found in default locations; use defaults
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// Set allows runtime config updates, e.g. from command-line flags
func Set(key string, value interface{}) error {
	if v == nil {
		return errors.New("config not initialized - call Init() first")
	}
	v.Set(key, value)
	updated := &Config{}
	if err := v.Unmarshal(updated); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(updated); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = updated
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Combat.HitPoints <= 0 {
		return fmt.Errorf("combat.hit_points must be positive")
	}
	if c.Combat.AttackPower.Elf < 0 {
		return fmt.Errorf("combat.attack_power.elf must be non-negative")
	}
	if c.Combat.AttackPower.Goblin < 0 {
		return fmt.Errorf("combat.attack_power.goblin must be non-negative")
	}
	if c.Combat.MaxRounds < 0 {
		return fmt.Errorf("combat.max_rounds must be non-negative")
	}

	if _, err := core.ParseFaction(c.Search.Faction); err != nil {
		return fmt.Errorf("search.faction: %w", err)
	}
	switch c.Search.Strategy {
	case "bisect", "linear":
	default:
		return fmt.Errorf("search.strategy must be bisect or linear, got %q", c.Search.Strategy)
	}
	if c.Search.MaxAttackPower <= 0 {
		return fmt.Errorf("search.max_attack_power must be positive")
	}
	if c.Search.Workers < 1 {
		return fmt.Errorf("search.workers must be at least 1")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be text, json or yaml")
	}

	return nil
}
