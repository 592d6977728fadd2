package sentry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInitialize_EmptyDSN(t *testing.T) {
	if err := Initialize(Config{}); err != nil {
		t.Errorf("Initialize() with empty DSN error = %v, want nil", err)
	}
	if IsEnabled() {
		t.Error("IsEnabled() = true with empty DSN")
	}
}

func TestInitialize_InvalidDSN(t *testing.T) {
	if err := Initialize(Config{DSN: "not a dsn"}); err == nil {
		t.Error("Initialize() with invalid DSN should fail")
	}
}

func TestInitialize_ValidDSN(t *testing.T) {
	// Sentry uses global state, so this test is not parallel.
	err := Initialize(Config{
		DSN:         "https://public@example.com/1",
		Environment: "test",
	})
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if !IsEnabled() {
		t.Error("IsEnabled() = false after initialization")
	}

	CaptureException(context.Background(), errors.New("boom"), map[string]string{"strategy": "bits"})
	Flush(100 * time.Millisecond)
}

func TestFlush_NoEvents(t *testing.T) {
	if !Flush(100 * time.Millisecond) {
		t.Error("Flush() = false with no pending events")
	}
}
