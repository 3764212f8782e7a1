// Package config provides application configuration management using Viper.
// Configuration is loaded from YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	YouTube  YouTubeConfig  `mapstructure:"youtube"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Refresh  RefreshConfig  `mapstructure:"refresh"`
	Fallback FallbackConfig `mapstructure:"fallback"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name  string `mapstructure:"name" validate:"required"`
	Env   string `mapstructure:"env" validate:"oneof=development staging production"`
	Port  int    `mapstructure:"port" validate:"min=1,max=65535"`
	Debug bool   `mapstructure:"debug"`
}

// YouTubeConfig holds the YouTube Data API client settings.
type YouTubeConfig struct {
	BaseURL   string          `mapstructure:"base_url" validate:"required,url"`
	APIKey    string          `mapstructure:"api_key"` // empty means substitute data
	ChannelID string          `mapstructure:"channel_id" validate:"required"`
	Timeout   time.Duration   `mapstructure:"timeout" validate:"gt=0"`
	Retry     RetryConfig     `mapstructure:"retry"`
	CB        CBConfig        `mapstructure:"circuit_breaker"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RetryConfig holds retry settings.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"min=0"`
	WaitTime    time.Duration `mapstructure:"wait_time"`
	MaxWaitTime time.Duration `mapstructure:"max_wait_time"`
}

// CBConfig holds circuit breaker settings.
type CBConfig struct {
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio" validate:"gte=0,lte=1"`
}

// RateLimitConfig holds the client-side request budget.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int     `mapstructure:"burst" validate:"min=0"`
}

// CacheConfig holds aggregate cache settings.
type CacheConfig struct {
	Backend string        `mapstructure:"backend" validate:"oneof=file memory"`
	Path    string        `mapstructure:"path" validate:"required_if=Backend file"`
	TTL     time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

// RefreshConfig holds background cache refresh settings.
type RefreshConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval" validate:"required_if=Enabled true"`
	OnStartup bool          `mapstructure:"on_startup"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"` // 0 disables the per-run timeout
}

// FallbackConfig controls what happens when an upstream call fails.
type FallbackConfig struct {
	SubstituteOnFailure bool `mapstructure:"substitute_on_failure"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, file path
}

// SentryConfig holds Sentry error tracking settings.
type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn" validate:"required_if=Enabled true"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// Load reads configuration from file and environment variables.
// Priority: env vars > config file > defaults
func Load(configPath string) (*Config, error) {
	// A .env file is optional; variables already set win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found, continue with defaults + env vars
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The credential keeps its conventional name.
	if err := v.BindEnv("youtube.api_key", "APP_YOUTUBE_API_KEY", "YOUTUBE_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding api key: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// The scheduler ticks on Interval, so it must be positive while enabled.
	if c.Refresh.Enabled && c.Refresh.Interval <= 0 {
		return fmt.Errorf("invalid config: refresh.interval must be positive, got %s", c.Refresh.Interval)
	}

	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "birdcams-tv")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.debug", true)

	// YouTube defaults
	v.SetDefault("youtube.base_url", "https://www.googleapis.com")
	v.SetDefault("youtube.api_key", "")
	v.SetDefault("youtube.channel_id", "UCZXZQxS3d6NpR-eH_gdDwYA")
	v.SetDefault("youtube.timeout", "10s")
	v.SetDefault("youtube.retry.max_attempts", 2)
	v.SetDefault("youtube.retry.wait_time", "1s")
	v.SetDefault("youtube.retry.max_wait_time", "5s")
	v.SetDefault("youtube.circuit_breaker.max_requests", 3)
	v.SetDefault("youtube.circuit_breaker.interval", "60s")
	v.SetDefault("youtube.circuit_breaker.timeout", "30s")
	v.SetDefault("youtube.circuit_breaker.failure_ratio", 0.5)
	v.SetDefault("youtube.rate_limit.requests_per_second", 5)
	v.SetDefault("youtube.rate_limit.burst", 5)

	// Cache defaults
	v.SetDefault("cache.backend", "file")
	v.SetDefault("cache.path", "server-cache/youtube-data.json")
	v.SetDefault("cache.ttl", "2h")

	// Refresh defaults
	v.SetDefault("refresh.enabled", true)
	v.SetDefault("refresh.interval", "90m")
	v.SetDefault("refresh.on_startup", false)
	v.SetDefault("refresh.timeout", "2m")

	// Fallback defaults
	v.SetDefault("fallback.substitute_on_failure", true)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stdout")

	// Sentry defaults
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.sample_rate", 1.0)
}
