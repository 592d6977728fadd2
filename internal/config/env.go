// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "STRCHECK_PORT"
	EnvLogLevel        = "STRCHECK_LOG_LEVEL"
	EnvShutdownTimeout = "STRCHECK_SHUTDOWN_TIMEOUT"

	// Checks
	EnvDefaultAlphabet            = "STRCHECK_DEFAULT_ALPHABET"
	EnvDefaultUniqueStrategy      = "STRCHECK_DEFAULT_UNIQUE_STRATEGY"
	EnvDefaultPermutationStrategy = "STRCHECK_DEFAULT_PERMUTATION_STRATEGY"
	EnvMaxInputRunes              = "STRCHECK_MAX_INPUT_RUNES"
	EnvMaxBatchSize               = "STRCHECK_MAX_BATCH_SIZE"
	EnvBatchConcurrency           = "STRCHECK_BATCH_CONCURRENCY"
	EnvVerifyAlphabets            = "STRCHECK_VERIFY_ALPHABETS"

	// LINE Bot (optional, bot disabled when empty)
	EnvLineChannelAccessToken = "STRCHECK_LINE_CHANNEL_ACCESS_TOKEN"
	EnvLineChannelSecret      = "STRCHECK_LINE_CHANNEL_SECRET"
	EnvWebhookTimeout         = "STRCHECK_WEBHOOK_TIMEOUT"

	// Rate Limits
	EnvUserRateBurst  = "STRCHECK_USER_RATE_BURST"
	EnvUserRateRefill = "STRCHECK_USER_RATE_REFILL"

	// Sentry Feature
	EnvSentryDSN              = "STRCHECK_SENTRY_DSN"
	EnvSentryEnvironment      = "STRCHECK_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate       = "STRCHECK_SENTRY_SAMPLE_RATE"
	EnvSentryTracesSampleRate = "STRCHECK_SENTRY_TRACES_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken = "STRCHECK_BETTERSTACK_TOKEN"

	// Metrics Auth Feature
	EnvMetricsAuthEnabled = "STRCHECK_METRICS_AUTH_ENABLED"
	EnvMetricsUsername    = "STRCHECK_METRICS_USERNAME"
	EnvMetricsPassword    = "STRCHECK_METRICS_PASSWORD"
)
