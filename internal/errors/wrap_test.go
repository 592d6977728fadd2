package errors

import (
	"errors"
	"testing"
)

func TestErrorWrapper(t *testing.T) {
	wrapper := NewWrapper("webhook", "permutation")

	t.Run("Wrap returns nil for nil error", func(t *testing.T) {
		result := wrapper.Wrap(nil, "排列檢查失敗")
		if result != nil {
			t.Errorf("expected nil, got %v", result)
		}
	})

	t.Run("Wrap creates WrappedError", func(t *testing.T) {
		baseErr := NewAlphabetError("ascii", '中', 0)
		wrapped := wrapper.Wrap(baseErr, "排列檢查失敗")

		if wrapped == nil {
			t.Fatal("expected non-nil wrapped error")
		}

		wrappedErr, ok := wrapped.(*WrappedError)
		if !ok {
			t.Fatal("expected WrappedError type")
		}

		if wrappedErr.Module != "webhook" {
			t.Errorf("expected module 'webhook', got '%s'", wrappedErr.Module)
		}

		if wrappedErr.Operation != "permutation" {
			t.Errorf("expected operation 'permutation', got '%s'", wrappedErr.Operation)
		}

		if wrappedErr.UserMessage != "排列檢查失敗" {
			t.Errorf("expected user message '排列檢查失敗', got '%s'", wrappedErr.UserMessage)
		}

		if !errors.Is(wrapped, ErrInvalidAlphabet) {
			t.Error("wrapped error should unwrap to ErrInvalidAlphabet")
		}
	})

	t.Run("Wrapf formats message", func(t *testing.T) {
		wrapped := wrapper.Wrapf(ErrUnknownStrategy, "不支援的策略：%s", "quantum")

		wrappedErr := wrapped.(*WrappedError)
		expected := "不支援的策略：quantum"
		if wrappedErr.UserMessage != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrappedErr.UserMessage)
		}
	})
}

func TestGetUserMessage(t *testing.T) {
	t.Run("returns empty string for nil", func(t *testing.T) {
		result := GetUserMessage(nil)
		if result != "" {
			t.Errorf("expected empty string, got '%s'", result)
		}
	})

	t.Run("returns user message from WrappedError", func(t *testing.T) {
		wrapped := &WrappedError{
			Operation:   "unique",
			Module:      "api",
			Cause:       errors.New("base error"),
			UserMessage: "user friendly message",
		}

		result := GetUserMessage(wrapped)
		if result != "user friendly message" {
			t.Errorf("expected 'user friendly message', got '%s'", result)
		}
	})

	t.Run("returns error string for non-WrappedError", func(t *testing.T) {
		err := errors.New("plain error")
		result := GetUserMessage(err)
		if result != "plain error" {
			t.Errorf("expected 'plain error', got '%s'", result)
		}
	})
}

func TestWrappedError_Error(t *testing.T) {
	wrapped := &WrappedError{
		Operation:   "unique",
		Module:      "api",
		Cause:       errors.New("strategy failed"),
		UserMessage: "檢查失敗",
	}

	errMsg := wrapped.Error()
	expected := "[api:unique] 檢查失敗: strategy failed"
	if errMsg != expected {
		t.Errorf("expected '%s', got '%s'", expected, errMsg)
	}
}
