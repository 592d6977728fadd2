// Package metrics exposes Prometheus metrics for checks, the HTTP API, and
// the LINE webhook.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Check metrics
	ChecksTotal          *prometheus.CounterVec
	CheckDurationSeconds *prometheus.HistogramVec
	InputRunes           *prometheus.HistogramVec
	StrategyDisagreement *prometheus.CounterVec

	// Batch metrics
	BatchSize prometheus.Histogram

	// Webhook metrics
	WebhookDurationSeconds *prometheus.HistogramVec
	WebhookRequestsTotal   *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
	RateLimiterUsers   prometheus.Gauge
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		ChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strcheck_checks_total",
				Help: "Total number of checks by operation, strategy and result",
			},
			[]string{"operation", "strategy", "result"}, // result: true, false, invalid_alphabet, error
		),

		CheckDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "strcheck_check_duration_seconds",
				Help:    "Check duration in seconds by operation and strategy",
				Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1}, // 1µs to 100ms
			},
			[]string{"operation", "strategy"},
		),

		InputRunes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "strcheck_input_runes",
				Help:    "Input length in runes by operation",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16384
			},
			[]string{"operation"},
		),

		StrategyDisagreement: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strcheck_strategy_disagreements_total",
				Help: "Comparison runs where strategies returned different results",
			},
			[]string{"operation"},
		),

		BatchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "strcheck_batch_size",
				Help:    "Number of inputs per batch request",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
			},
		),

		WebhookDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "strcheck_webhook_duration_seconds",
				Help:    "Webhook event processing duration in seconds by command",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"command"}, // command: unique, perm, help, unknown
		),

		WebhookRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strcheck_webhook_requests_total",
				Help: "Total number of webhook events by command and status",
			},
			[]string{"command", "status"}, // status: success, error, rate_limited
		),

		HTTPErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strcheck_http_errors_total",
				Help: "Total HTTP errors by type and module",
			},
			[]string{"error_type", "module"}, // error_type: invalid_request, invalid_alphabet, too_long, invalid_signature, timeout
		),

		RateLimiterDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strcheck_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: user
		),

		RateLimiterUsers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "strcheck_rate_limiter_users",
				Help: "Number of keys currently tracked by the per-user rate limiter",
			},
		),
	}
}

// RecordCheck records one check with its outcome and duration.
func (m *Metrics) RecordCheck(operation, strategy, result string, duration float64) {
	m.ChecksTotal.WithLabelValues(operation, strategy, result).Inc()
	m.CheckDurationSeconds.WithLabelValues(operation, strategy).Observe(duration)
}

// RecordInputRunes records the rune length of an input.
func (m *Metrics) RecordInputRunes(operation string, runes int) {
	m.InputRunes.WithLabelValues(operation).Observe(float64(runes))
}

// RecordDisagreement records a comparison run whose strategies disagreed.
func (m *Metrics) RecordDisagreement(operation string) {
	m.StrategyDisagreement.WithLabelValues(operation).Inc()
}

// RecordBatch records the size of a batch request.
func (m *Metrics) RecordBatch(size int) {
	m.BatchSize.Observe(float64(size))
}

// RecordWebhook records a webhook event
func (m *Metrics) RecordWebhook(command, status string, duration float64) {
	m.WebhookRequestsTotal.WithLabelValues(command, status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(command).Observe(duration)
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, module string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, module).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}

// SetRateLimiterUsers sets the number of tracked rate limiter keys.
func (m *Metrics) SetRateLimiterUsers(count int) {
	m.RateLimiterUsers.Set(float64(count))
}
