// Package config provides Viper-based hierarchical configuration: defaults,
// then an optional YAML file, then STMT_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Extraction struct {
		Endpoint       string `mapstructure:"endpoint" yaml:"endpoint"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"extraction" yaml:"extraction"`

	Store struct {
		DatabaseURL string `mapstructure:"database_url" yaml:"-"`
		DedupWindow int    `mapstructure:"dedup_window" yaml:"dedup_window"`
	} `mapstructure:"store" yaml:"store"`

	Templates struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"templates" yaml:"templates"`

	AI struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
		APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
	} `mapstructure:"ai" yaml:"ai"`
}

// LoadEnv loads a .env file when present. Missing files are fine.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load initializes the configuration.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.statement-import")
	v.AddConfigPath(".statement-import")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STMT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// The AI key follows the conventional unprefixed variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding GEMINI_API_KEY: %w", err)
	}
	if err := v.BindEnv("store.database_url", "DATABASE_URL", "STMT_STORE_DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("binding DATABASE_URL: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("extraction.endpoint", "")
	v.SetDefault("extraction.timeout_seconds", 60)

	v.SetDefault("store.database_url", "")
	v.SetDefault("store.dedup_window", 500)

	v.SetDefault("templates.file", "mapping-templates.yaml")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
}

func validate(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}
	if len(cfg.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", cfg.CSV.Delimiter)
	}
	if cfg.Extraction.TimeoutSeconds < 1 || cfg.Extraction.TimeoutSeconds > 600 {
		return fmt.Errorf("extraction.timeout_seconds must be between 1 and 600, got: %d", cfg.Extraction.TimeoutSeconds)
	}
	if cfg.Store.DedupWindow < 1 {
		return fmt.Errorf("store.dedup_window must be positive, got: %d", cfg.Store.DedupWindow)
	}
	if cfg.AI.Enabled && cfg.AI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY required when AI categorization is enabled")
	}
	return nil
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// ConfigureLogging builds the shared logrus logger from the configuration.
func ConfigureLogging(cfg *Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.ToLower(cfg.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
