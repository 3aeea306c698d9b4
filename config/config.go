// Package config loads runtime settings from file, environment and flags
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. STALKER_EYES_MOOD_JITTER
const EnvPrefix = "STALKER_EYES"

// Color modes
const (
	ColorAuto      = "auto"
	ColorTrueColor = "truecolor"
	Color256       = "256"
)

// Config holds the full application configuration
type Config struct {
	Mood    MoodConfig    `mapstructure:"mood" yaml:"mood"`
	Gaze    GazeConfig    `mapstructure:"gaze" yaml:"gaze"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Sound   SoundConfig   `mapstructure:"sound" yaml:"sound"`
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	// Seed fixes the mood sequence when non-zero
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
}

// MoodConfig tunes the autonomous mood timer
type MoodConfig struct {
	BaseDelay time.Duration `mapstructure:"base_delay" yaml:"base_delay"`
	Jitter    time.Duration `mapstructure:"jitter" yaml:"jitter"`
}

// GazeConfig tunes pointer reactions, in pointer units
type GazeConfig struct {
	SurpriseSpeed float64 `mapstructure:"surprise_speed" yaml:"surprise_speed"`
	Radius        float64 `mapstructure:"radius" yaml:"radius"`
}

// DisplayConfig controls the terminal surface
type DisplayConfig struct {
	Color      string  `mapstructure:"color" yaml:"color"`
	CellWidth  float64 `mapstructure:"cell_width" yaml:"cell_width"`
	CellHeight float64 `mapstructure:"cell_height" yaml:"cell_height"`
}

// SoundConfig controls audio cues
type SoundConfig struct {
	Enabled bool    `mapstructure:"enabled" yaml:"enabled"`
	Volume  float64 `mapstructure:"volume" yaml:"volume"`
}

// LoggerConfig controls the log file sink
type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"` // Empty disables logging
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers the reference tuning on v
func SetDefaults(v *viper.Viper) {
	// -- Mood --
	v.SetDefault("mood.base_delay", "10s")
	v.SetDefault("mood.jitter", "8s")

	// -- Gaze --
	v.SetDefault("gaze.surprise_speed", 150.0)
	v.SetDefault("gaze.radius", 35.0)

	// -- Display --
	v.SetDefault("display.color", ColorAuto)
	v.SetDefault("display.cell_width", 10.0)
	v.SetDefault("display.cell_height", 20.0)

	// -- Sound --
	v.SetDefault("sound.enabled", false)
	v.SetDefault("sound.volume", 0.4)

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	v.SetDefault("seed", 0)
}

// NewViper returns a viper instance with defaults and env overrides bound
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewDefaultConfig returns the defaults without consulting file or env
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		// Defaults are static and must validate
		panic(fmt.Sprintf("default config invalid: %v", err))
	}
	return cfg
}

// NewConfigFromViper decodes and validates the merged configuration
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values
func (c *Config) Validate() error {
	if c.Mood.BaseDelay <= 0 {
		return fmt.Errorf("mood.base_delay must be positive")
	}
	if c.Mood.Jitter < 0 {
		return fmt.Errorf("mood.jitter must not be negative")
	}
	if c.Gaze.SurpriseSpeed <= 0 {
		return fmt.Errorf("gaze.surprise_speed must be positive")
	}
	if c.Gaze.Radius <= 0 {
		return fmt.Errorf("gaze.radius must be positive")
	}
	if c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0 {
		return fmt.Errorf("display.cell_width and display.cell_height must be positive")
	}
	switch c.Display.Color {
	case ColorAuto, ColorTrueColor, Color256:
	default:
		return fmt.Errorf("display.color %q is not one of %s, %s, %s", c.Display.Color, ColorAuto, ColorTrueColor, Color256)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("sound.volume must be between 0.0 and 1.0")
	}
	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logger.level %q is not one of debug, info, warn, error", c.Logger.Level)
	}
	return nil
}
