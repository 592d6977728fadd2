package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}
	if m.ChecksTotal == nil || m.CheckDurationSeconds == nil || m.InputRunes == nil {
		t.Error("check metrics not initialized")
	}
	if m.WebhookRequestsTotal == nil || m.WebhookDurationSeconds == nil {
		t.Error("webhook metrics not initialized")
	}
	if m.RateLimiterDropped == nil || m.RateLimiterUsers == nil {
		t.Error("rate limiter metrics not initialized")
	}
}

func TestNew_SeparateRegistries(t *testing.T) {
	// Registering twice on one registry panics; separate registries must not.
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}

func TestRecordCheck(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordCheck("unique", "bits", "true", 0.00001)
	m.RecordCheck("unique", "bits", "true", 0.00002)
	m.RecordCheck("permutation", "map", "invalid_alphabet", 0.00001)

	if got := testutil.ToFloat64(m.ChecksTotal.WithLabelValues("unique", "bits", "true")); got != 2 {
		t.Errorf("unique/bits/true = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ChecksTotal.WithLabelValues("permutation", "map", "invalid_alphabet")); got != 1 {
		t.Errorf("permutation/map/invalid_alphabet = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.CheckDurationSeconds); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

func TestRecordWebhook(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordWebhook("unique", "success", 0.05)
	m.RecordWebhook("perm", "rate_limited", 0.001)

	if got := testutil.ToFloat64(m.WebhookRequestsTotal.WithLabelValues("perm", "rate_limited")); got != 1 {
		t.Errorf("perm/rate_limited = %v, want 1", got)
	}
}

func TestRateLimiterMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordRateLimiterDrop("user")
	m.SetRateLimiterUsers(42)

	if got := testutil.ToFloat64(m.RateLimiterDropped.WithLabelValues("user")); got != 1 {
		t.Errorf("dropped = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RateLimiterUsers); got != 42 {
		t.Errorf("users = %v, want 42", got)
	}
}

func TestRecordHTTPErrorExposition(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordHTTPError("too_long", "api")

	expected := `
# HELP strcheck_http_errors_total Total HTTP errors by type and module
# TYPE strcheck_http_errors_total counter
strcheck_http_errors_total{error_type="too_long",module="api"} 1
`
	if err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "strcheck_http_errors_total"); err != nil {
		t.Errorf("unexpected exposition: %v", err)
	}
}

func TestRecordBatchAndInput(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordBatch(10)
	m.RecordInputRunes("unique", 7)
	m.RecordDisagreement("permutation")

	if got := testutil.CollectAndCount(m.BatchSize); got != 1 {
		t.Errorf("batch series = %d, want 1", got)
	}
	if got := testutil.ToFloat64(m.StrategyDisagreement.WithLabelValues("permutation")); got != 1 {
		t.Errorf("disagreements = %v, want 1", got)
	}
}
