package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	cron "github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for the lesson
type Config struct {
	// Environment (development, production, test)
	Environment string `mapstructure:"environment" validate:"required,oneof=development production test"`

	// Logging configuration
	LogDir   string `mapstructure:"log_dir" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Output configuration
	BannerWidth int      `mapstructure:"banner_width" validate:"gte=0,lte=512"`
	BannerFill  string   `mapstructure:"banner_fill" validate:"len=1"`
	Sections    []string `mapstructure:"sections"`

	// Cron expression for repeated runs; empty runs the lesson once
	Schedule string `mapstructure:"schedule"`

	// Metrics configuration
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	MetricsAddr    string `mapstructure:"metrics_addr" validate:"required_if=MetricsEnabled true"`
}

// Loader reads configuration from a directory and the environment
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader looking for config.yaml in path
func NewLoader(path string) *Loader {
	v := viper.New()

	// Set default values
	v.SetDefault("environment", "development")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("log_level", "warn")
	v.SetDefault("banner_width", 80)
	v.SetDefault("banner_fill", "=")
	v.SetDefault("sections", []string{})
	v.SetDefault("schedule", "")
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_addr", ":9090")

	// Set config file path
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Override with environment variables if they exist: LESSON_LOG_LEVEL -> log_level
	v.SetEnvPrefix("lesson")
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load reads, unmarshals and validates the configuration
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, continue with defaults and environment variables
	}

	return l.decode()
}

// Watch calls onChange with the reloaded configuration whenever the config
// file changes. Invalid reloads are reported through onError and otherwise
// ignored.
func (l *Loader) Watch(onChange func(*Config), onError func(error)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		cfg, err := l.decode()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (*Config, error) {
	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks field constraints and the cron schedule
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", c.Schedule, err)
		}
	}

	sections := c.Sections[:0]
	for _, s := range c.Sections {
		if s = strings.TrimSpace(s); s != "" {
			sections = append(sections, s)
		}
	}
	c.Sections = sections

	return nil
}
