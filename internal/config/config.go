// Package config provides application configuration management.
// It loads settings from environment variables (optionally from a .env file)
// and validates them for the mode the binary runs in.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/garyellow/strcheck/internal/charset"
	"github.com/garyellow/strcheck/internal/permutation"
	"github.com/garyellow/strcheck/internal/sliceutil"
	"github.com/garyellow/strcheck/internal/uniqueness"
)

// ValidationMode selects which settings Validate requires.
type ValidationMode int

const (
	// ServerMode validates everything the HTTP server and bot need.
	ServerMode ValidationMode = iota
	// CLIMode validates only check defaults and limits.
	CLIMode
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	Check CheckConfig
	Bot   BotConfig

	// Sentry (disabled when DSN is empty)
	SentryDSN              string
	SentryEnvironment      string
	SentrySampleRate       float64
	SentryTracesSampleRate float64

	// Better Stack log shipping (disabled when token is empty)
	BetterStackToken string

	// Metrics Authentication
	MetricsAuthEnabled bool
	MetricsUsername    string
	MetricsPassword    string
}

// CheckConfig holds defaults and limits for uniqueness and permutation checks.
type CheckConfig struct {
	DefaultAlphabet            string
	DefaultUniqueStrategy      string
	DefaultPermutationStrategy string

	MaxInputRunes    int // per input string
	MaxBatchSize     int // inputs per batch request
	BatchConcurrency int // concurrent checks per batch

	VerifyAlphabets []string // alphabets exercised by cmd/verify
}

// Load reads configuration for ServerMode.
func Load() (*Config, error) {
	return LoadForMode(ServerMode)
}

// LoadForMode reads configuration from environment variables and validates
// it for mode. A .env file in the working directory is loaded first if present.
func LoadForMode(mode ValidationMode) (*Config, error) {
	_ = godotenv.Load()

	bot := DefaultBotConfig()
	bot.LineChannelToken = getEnv(EnvLineChannelAccessToken, "")
	bot.LineChannelSecret = getEnv(EnvLineChannelSecret, "")
	bot.WebhookTimeout = getDurationEnv(EnvWebhookTimeout, bot.WebhookTimeout)
	bot.UserRateLimitBurst = getIntEnv(EnvUserRateBurst, bot.UserRateLimitBurst)
	bot.UserRateLimitRefillPerSec = getFloatEnv(EnvUserRateRefill, bot.UserRateLimitRefillPerSec)

	cfg := &Config{
		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),

		Check: CheckConfig{
			DefaultAlphabet:            getEnv(EnvDefaultAlphabet, charset.ASCII.Name),
			DefaultUniqueStrategy:      getEnv(EnvDefaultUniqueStrategy, string(uniqueness.StrategyTable)),
			DefaultPermutationStrategy: getEnv(EnvDefaultPermutationStrategy, string(permutation.StrategyArray)),
			MaxInputRunes:              getIntEnv(EnvMaxInputRunes, 4096),
			MaxBatchSize:               getIntEnv(EnvMaxBatchSize, 100),
			BatchConcurrency:           getIntEnv(EnvBatchConcurrency, 8),
			VerifyAlphabets:            getListEnv(EnvVerifyAlphabets, charset.Names()),
		},
		Bot: bot,

		SentryDSN:              getEnv(EnvSentryDSN, ""),
		SentryEnvironment:      getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:       getFloatEnv(EnvSentrySampleRate, 1.0),
		SentryTracesSampleRate: getFloatEnv(EnvSentryTracesSampleRate, 0.0),

		BetterStackToken: getEnv(EnvBetterStackToken, ""),

		MetricsAuthEnabled: getBoolEnv(EnvMetricsAuthEnabled, false),
		MetricsUsername:    getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword:    getEnv(EnvMetricsPassword, ""),
	}

	if err := cfg.ValidateForMode(mode); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for ServerMode.
func (c *Config) Validate() error {
	return c.ValidateForMode(ServerMode)
}

// ValidateForMode checks the configuration, collecting every problem.
func (c *Config) ValidateForMode(mode ValidationMode) error {
	errs := []error{c.Check.Validate()}

	if mode == ServerMode {
		if c.Port == "" {
			errs = append(errs, fmt.Errorf("%s is required", EnvPort))
		}
		if c.ShutdownTimeout <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
		}
		if err := c.Bot.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("bot config: %w", err))
		}
		if c.MetricsAuthEnabled && c.MetricsPassword == "" {
			errs = append(errs, fmt.Errorf("%s is required when metrics auth is enabled", EnvMetricsPassword))
		}
		if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", EnvSentrySampleRate, c.SentrySampleRate))
		}
		if c.SentryTracesSampleRate < 0 || c.SentryTracesSampleRate > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", EnvSentryTracesSampleRate, c.SentryTracesSampleRate))
		}
	}

	return errors.Join(errs...)
}

// Validate checks check defaults and limits.
func (c CheckConfig) Validate() error {
	var errs []error

	if _, err := charset.Lookup(c.DefaultAlphabet); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvDefaultAlphabet, err))
	}
	if _, err := uniqueness.ParseStrategy(c.DefaultUniqueStrategy); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvDefaultUniqueStrategy, err))
	}
	if _, err := permutation.ParseStrategy(c.DefaultPermutationStrategy); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvDefaultPermutationStrategy, err))
	}
	if c.MaxInputRunes < 1 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvMaxInputRunes, c.MaxInputRunes))
	}
	if c.MaxBatchSize < 1 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvMaxBatchSize, c.MaxBatchSize))
	}
	if c.BatchConcurrency < 1 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvBatchConcurrency, c.BatchConcurrency))
	}
	for _, name := range c.VerifyAlphabets {
		if _, err := charset.Lookup(name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvVerifyAlphabets, err))
		}
	}

	return errors.Join(errs...)
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getListEnv reads a comma-separated list, lower-cased and deduplicated in
// order of first appearance.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return sliceutil.Deduplicate(items, func(s string) string { return s })
}
