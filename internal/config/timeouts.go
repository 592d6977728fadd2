// Package config provides centralized timeout constants for the application.
//
// LINE expects a quick 200 OK for every webhook delivery, so events are
// processed after the response is written and bounded by WebhookProcessing.
// Checks themselves are CPU-bound and short; the HTTP limits mainly guard
// against slow clients.
package config

import "time"

// HTTP server timeouts
const (
	// HTTPRead bounds reading a request. Payloads are small JSON documents.
	HTTPRead = 10 * time.Second

	// HTTPWrite bounds writing a response, including batch evaluation.
	HTTPWrite = 30 * time.Second

	// HTTPIdle is the keep-alive idle timeout.
	HTTPIdle = 120 * time.Second

	// HTTPReadHeader bounds reading request headers.
	HTTPReadHeader = 5 * time.Second
)

// Webhook timeouts
const (
	// WebhookProcessing is the timeout for handling one webhook event,
	// including the reply call to the Messaging API.
	WebhookProcessing = 30 * time.Second
)

// Check timeouts
const (
	// BatchEvaluation bounds a single batch request across all workers.
	BatchEvaluation = 20 * time.Second

	// SelfCheck bounds the startup cross-strategy verification that gates /readyz.
	SelfCheck = 15 * time.Second
)

// Background job intervals
const (
	// RateLimiterCleanupInterval is how often idle per-user limiters are removed.
	RateLimiterCleanupInterval = 5 * time.Minute

	// RateLimiterIdleTTL is how long a limiter may stay unused before removal.
	RateLimiterIdleTTL = 30 * time.Minute
)

// Graceful shutdown
const (
	// GracefulShutdown is the default timeout for draining in-flight work.
	GracefulShutdown = 30 * time.Second

	// HealthcheckRequest bounds the container health probe.
	HealthcheckRequest = 3 * time.Second
)
