package youtube

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrNoAPIKeys indicates the key pool was built from an empty input
	ErrNoAPIKeys = errors.New("youtube API key is required")
	// ErrNetwork indicates every attempt failed before a response arrived
	ErrNetwork = errors.New("youtube API unreachable")
	// ErrQuotaExhausted indicates every key in the pool was rejected with 403/429
	ErrQuotaExhausted = errors.New("youtube API quota exhausted for all keys")
	// ErrNotFound indicates the API returned no matching items
	ErrNotFound = errors.New("resource not found")
	// ErrUnresolvableIdentifier indicates input is neither a channel ID nor a handle
	ErrUnresolvableIdentifier = errors.New("unresolvable channel identifier")
)

// NetworkError is returned when the request could not complete after all attempts
type NetworkError struct {
	URL      string
	Attempts int
	Err      error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	return fmt.Sprintf("youtube API request to %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// QuotaExhaustedError is returned when no key remains after a 403 or 429
type QuotaExhaustedError struct {
	StatusCode int
	Keys       int
	// Reason is the first error reason from the API body, e.g. "quotaExceeded"
	Reason string
}

// Error implements the error interface
func (e *QuotaExhaustedError) Error() string {
	msg := fmt.Sprintf("youtube API quota exhausted: all %d key(s) rejected (status %d)", e.Keys, e.StatusCode)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *QuotaExhaustedError) Is(target error) bool { return target == ErrQuotaExhausted }

// NotFoundError is returned when a lookup yields zero items
type NotFoundError struct {
	Resource string
	Input    string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Input)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UnresolvableIdentifierError is returned for input that is neither a channel ID nor a handle
type UnresolvableIdentifierError struct {
	Input string
}

// Error implements the error interface
func (e *UnresolvableIdentifierError) Error() string {
	return fmt.Sprintf("cannot resolve channel identifier %q: expected a channel ID (UC...) or a handle (@name)", e.Input)
}

func (e *UnresolvableIdentifierError) Is(target error) bool {
	return target == ErrUnresolvableIdentifier
}
