package config

import (
	"errors"
	"fmt"
	"time"
)

// LINE Messaging API limits.
// https://developers.line.biz/en/reference/messaging-api/
const (
	LINEMaxMessagesPerReply  = 5
	LINEMaxTextMessageLength = 5000
)

// BotConfig holds LINE bot settings. The bot is disabled when both channel
// credentials are empty.
type BotConfig struct {
	LineChannelToken  string
	LineChannelSecret string

	WebhookTimeout      time.Duration
	MaxEventsPerWebhook int
	MaxMessageLength    int

	// Token bucket per user
	UserRateLimitBurst        int     // default: 10
	UserRateLimitRefillPerSec float64 // default: 0.5 (1 token per 2s)
}

// DefaultBotConfig returns default bot configuration without credentials.
func DefaultBotConfig() BotConfig {
	return BotConfig{
		WebhookTimeout:            WebhookProcessing,
		MaxEventsPerWebhook:       100,
		MaxMessageLength:          LINEMaxTextMessageLength,
		UserRateLimitBurst:        10,
		UserRateLimitRefillPerSec: 0.5,
	}
}

// Enabled reports whether LINE credentials are configured.
func (c BotConfig) Enabled() bool {
	return c.LineChannelToken != "" || c.LineChannelSecret != ""
}

// Validate checks bot settings. Credentials must be set together.
func (c BotConfig) Validate() error {
	var errs []error

	if c.Enabled() {
		if c.LineChannelToken == "" {
			errs = append(errs, fmt.Errorf("%s is required when %s is set", EnvLineChannelAccessToken, EnvLineChannelSecret))
		}
		if c.LineChannelSecret == "" {
			errs = append(errs, fmt.Errorf("%s is required when %s is set", EnvLineChannelSecret, EnvLineChannelAccessToken))
		}
	}
	if c.WebhookTimeout <= 0 {
		errs = append(errs, fmt.Errorf("webhook timeout must be positive, got %v", c.WebhookTimeout))
	}
	if c.MaxEventsPerWebhook < 1 {
		errs = append(errs, fmt.Errorf("max events per webhook must be positive, got %d", c.MaxEventsPerWebhook))
	}
	if c.MaxMessageLength < 1 || c.MaxMessageLength > LINEMaxTextMessageLength {
		errs = append(errs, fmt.Errorf("max message length must be 1-%d (LINE API limit), got %d",
			LINEMaxTextMessageLength, c.MaxMessageLength))
	}
	if c.UserRateLimitBurst < 1 {
		errs = append(errs, fmt.Errorf("user rate limit burst must be positive, got %d", c.UserRateLimitBurst))
	}
	if c.UserRateLimitRefillPerSec <= 0 {
		errs = append(errs, fmt.Errorf("user rate limit refill must be positive, got %f", c.UserRateLimitRefillPerSec))
	}

	return errors.Join(errs...)
}
