// Package errors provides custom error types for the Groq completion client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrInvalidCredential = errors.New("invalid API key")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrMalformedResponse = errors.New("malformed API response")
	ErrNoResponse        = errors.New("no response after retries")
)

// InvalidCredentialError is returned on HTTP 401. It is terminal: the
// user must fix the API key before retrying.
type InvalidCredentialError struct {
	Message string
}

func (e *InvalidCredentialError) Error() string {
	if e.Message == "" {
		return "invalid API key: check your Groq API key"
	}
	return fmt.Sprintf("invalid API key: %s", e.Message)
}

// Is allows comparison with the ErrInvalidCredential sentinel.
func (e *InvalidCredentialError) Is(target error) bool {
	if target == ErrInvalidCredential {
		return true
	}
	_, ok := target.(*InvalidCredentialError)
	return ok
}

// NewInvalidCredentialError creates a new InvalidCredentialError.
func NewInvalidCredentialError(message string) *InvalidCredentialError {
	return &InvalidCredentialError{Message: message}
}

// RateLimitError is returned when HTTP 429 responses persist past the
// retry budget.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return "rate limit exceeded"
	}
	return fmt.Sprintf("rate limit exceeded: %s", e.Message)
}

// Is allows comparison with the ErrRateLimited sentinel.
func (e *RateLimitError) Is(target error) bool {
	if target == ErrRateLimited {
		return true
	}
	_, ok := target.(*RateLimitError)
	return ok
}

// NewRateLimitError creates a new RateLimitError.
func NewRateLimitError(message string) *RateLimitError {
	return &RateLimitError{Message: message}
}

// APIError represents a terminal non-2xx API response. Detail carries
// the server's error.message when parseable, else the raw body.
type APIError struct {
	StatusCode int
	Detail     string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d]: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API error: %s", e.Detail)
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, endpoint, detail string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Detail:     detail,
	}
}

// TimeoutError represents a request that timed out on every allowed attempt.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// ConnectionError represents a network failure that persisted past the
// retry budget.
type ConnectionError struct {
	Message string
}

func (e *ConnectionError) Error() string {
	if e.Message == "" {
		return "connection failed"
	}
	return fmt.Sprintf("connection failed: %s", e.Message)
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(message string) *ConnectionError {
	return &ConnectionError{Message: message}
}

// MalformedResponseError represents an HTTP 200 response whose body did
// not contain a usable choices array. Terminal, not retried.
type MalformedResponseError struct {
	Message string
}

func (e *MalformedResponseError) Error() string {
	if e.Message == "" {
		return "malformed API response"
	}
	return fmt.Sprintf("malformed API response: %s", e.Message)
}

// Is allows comparison with the ErrMalformedResponse sentinel.
func (e *MalformedResponseError) Is(target error) bool {
	if target == ErrMalformedResponse {
		return true
	}
	_, ok := target.(*MalformedResponseError)
	return ok
}

// NewMalformedResponseError creates a new MalformedResponseError.
func NewMalformedResponseError(message string) *MalformedResponseError {
	return &MalformedResponseError{Message: message}
}

// IsAuthError checks if an error is a credential failure.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrInvalidCredential) {
		return true
	}
	var credErr *InvalidCredentialError
	return errors.As(err, &credErr)
}

// IsRateLimitError checks if an error is a rate-limit failure.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}

// IsTimeoutError checks if an error is a timeout failure.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	var toErr *TimeoutError
	return errors.As(err, &toErr)
}

// IsNetworkError checks if an error is a connection failure.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// IsMalformedResponseError checks if an error is a malformed-response failure.
func IsMalformedResponseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMalformedResponse) {
		return true
	}
	var mrErr *MalformedResponseError
	return errors.As(err, &mrErr)
}

// GetHTTPStatus extracts the HTTP status from an APIError, or 0.
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetDetail extracts the server-provided detail from an APIError, or "".
func GetDetail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
