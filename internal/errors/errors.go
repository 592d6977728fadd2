// Package errors provides domain-specific error types and sentinel errors
// shared by the checkers and the surfaces that expose them.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrInvalidAlphabet indicates a character outside the alphabet a checker was built for.
	// This is a contract violation by the caller, not a runtime fault.
	ErrInvalidAlphabet = errors.New("character outside alphabet")

	// ErrUnknownAlphabet indicates an alphabet name that is not registered.
	ErrUnknownAlphabet = errors.New("unknown alphabet")

	// ErrUnknownStrategy indicates a strategy name that is not implemented.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInputTooLong indicates an input exceeded the configured rune limit.
	ErrInputTooLong = errors.New("input too long")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// AlphabetError reports the first rune of an input that does not fit an alphabet.
type AlphabetError struct {
	Alphabet string
	Rune     rune
	Position int // rune offset in the input, not byte offset
}

func (e *AlphabetError) Error() string {
	return fmt.Sprintf("rune %U at position %d is outside alphabet %q", e.Rune, e.Position, e.Alphabet)
}

func (e *AlphabetError) Unwrap() error {
	return ErrInvalidAlphabet
}

// NewAlphabetError creates a new alphabet error.
func NewAlphabetError(alphabet string, r rune, position int) *AlphabetError {
	return &AlphabetError{
		Alphabet: alphabet,
		Rune:     r,
		Position: position,
	}
}

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsInvalidAlphabet checks if err is or wraps ErrInvalidAlphabet.
func IsInvalidAlphabet(err error) bool {
	return errors.Is(err, ErrInvalidAlphabet)
}

// IsUnknownAlphabet checks if err is or wraps ErrUnknownAlphabet.
func IsUnknownAlphabet(err error) bool {
	return errors.Is(err, ErrUnknownAlphabet)
}

// IsUnknownStrategy checks if err is or wraps ErrUnknownStrategy.
func IsUnknownStrategy(err error) bool {
	return errors.Is(err, ErrUnknownStrategy)
}

// IsInvalidInput checks if err is or wraps ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInputTooLong checks if err is or wraps ErrInputTooLong.
func IsInputTooLong(err error) bool {
	return errors.Is(err, ErrInputTooLong)
}

// IsRateLimitExceeded checks if err is or wraps ErrRateLimitExceeded.
func IsRateLimitExceeded(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

// IsTimeout checks if err is or wraps ErrTimeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
