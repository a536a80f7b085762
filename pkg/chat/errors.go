package chat

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyInput is returned by Send for blank input. Submit ignores it silently.
	ErrEmptyInput = errors.New("empty input")

	// ErrResetUnavailable means the reset endpoint is missing or failed.
	// Reset degrades to a local clear and never surfaces it to callers.
	ErrResetUnavailable = errors.New("reset unavailable")
)

// NetworkError is a transport-level failure: no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is a non-2xx response from the chat endpoint.
type ServerError struct {
	Status     int
	Detail     string
	Code       string
	RetryAfter time.Duration
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("Request failed (HTTP %d)", e.Status)
	}
	return fmt.Sprintf("Request failed (HTTP %d) – %s", e.Status, e.Detail)
}

// QuotaError is a ServerError classified as a quota or rate-limit condition.
type QuotaError struct {
	Server *ServerError
}

func (e *QuotaError) Error() string {
	return "quota exceeded: " + e.Server.Error()
}

func (e *QuotaError) Unwrap() error {
	return e.Server
}

// RetryAfter returns the server's retry hint, or zero when none was given.
func (e *QuotaError) RetryAfter() time.Duration {
	return e.Server.RetryAfter
}
