package config

import (
	"strings"
	"testing"
)

func TestDefaultBotConfig(t *testing.T) {
	cfg := DefaultBotConfig()

	if cfg.Enabled() {
		t.Error("default bot config should be disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default bot config invalid: %v", err)
	}
	if cfg.WebhookTimeout != WebhookProcessing {
		t.Errorf("WebhookTimeout = %v, want %v", cfg.WebhookTimeout, WebhookProcessing)
	}
}

func TestBotConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*BotConfig)
		errContains string
	}{
		{
			name: "both credentials",
			modify: func(c *BotConfig) {
				c.LineChannelToken = "token"
				c.LineChannelSecret = "secret"
			},
		},
		{
			name:        "token without secret",
			modify:      func(c *BotConfig) { c.LineChannelToken = "token" },
			errContains: EnvLineChannelSecret,
		},
		{
			name:        "secret without token",
			modify:      func(c *BotConfig) { c.LineChannelSecret = "secret" },
			errContains: EnvLineChannelAccessToken,
		},
		{
			name:        "zero webhook timeout",
			modify:      func(c *BotConfig) { c.WebhookTimeout = 0 },
			errContains: "webhook timeout",
		},
		{
			name:        "message length above LINE limit",
			modify:      func(c *BotConfig) { c.MaxMessageLength = LINEMaxTextMessageLength + 1 },
			errContains: "LINE API limit",
		},
		{
			name:        "zero burst",
			modify:      func(c *BotConfig) { c.UserRateLimitBurst = 0 },
			errContains: "burst",
		},
		{
			name:        "negative refill",
			modify:      func(c *BotConfig) { c.UserRateLimitRefillPerSec = -1 },
			errContains: "refill",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBotConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.errContains)
			}
		})
	}
}
