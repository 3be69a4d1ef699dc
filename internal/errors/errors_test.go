package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestInvalidCredentialError_Is(t *testing.T) {
	err := NewInvalidCredentialError("HTTP 401")

	if !errors.Is(err, ErrInvalidCredential) {
		t.Error("errors.Is(err, ErrInvalidCredential) = false, want true")
	}
	if !IsAuthError(err) {
		t.Error("IsAuthError() = false, want true")
	}
	if !IsAuthError(fmt.Errorf("request failed: %w", err)) {
		t.Error("IsAuthError() through wrapping = false, want true")
	}
}

func TestRateLimitError_Is(t *testing.T) {
	err := NewRateLimitError("try later")

	if !errors.Is(err, ErrRateLimited) {
		t.Error("errors.Is(err, ErrRateLimited) = false, want true")
	}
	if !IsRateLimitError(err) {
		t.Error("IsRateLimitError() = false, want true")
	}
	if IsAuthError(err) {
		t.Error("IsAuthError() on a rate-limit error = true, want false")
	}
}

func TestMalformedResponseError_Is(t *testing.T) {
	err := NewMalformedResponseError("missing choices")

	if !errors.Is(err, ErrMalformedResponse) {
		t.Error("errors.Is(err, ErrMalformedResponse) = false, want true")
	}
	if !IsMalformedResponseError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsMalformedResponseError() through wrapping = false, want true")
	}
}

func TestTimeoutAndConnectionHelpers(t *testing.T) {
	if !IsTimeoutError(NewTimeoutError("60s elapsed")) {
		t.Error("IsTimeoutError() = false, want true")
	}
	if !IsNetworkError(NewConnectionError("dial refused")) {
		t.Error("IsNetworkError() = false, want true")
	}
	if IsTimeoutError(NewConnectionError("dial refused")) {
		t.Error("IsTimeoutError() on a connection error = true, want false")
	}
}

func TestAPIErrorAccessors(t *testing.T) {
	err := NewAPIError(503, "https://example.com/v1", "service unavailable")

	if got := GetHTTPStatus(err); got != 503 {
		t.Errorf("GetHTTPStatus() = %d, want 503", got)
	}
	if got := GetDetail(err); got != "service unavailable" {
		t.Errorf("GetDetail() = %q, want %q", got, "service unavailable")
	}

	wrapped := fmt.Errorf("request failed: %w", err)
	if got := GetHTTPStatus(wrapped); got != 503 {
		t.Errorf("GetHTTPStatus() through wrapping = %d, want 503", got)
	}

	if got := GetHTTPStatus(errors.New("plain")); got != 0 {
		t.Errorf("GetHTTPStatus(plain error) = %d, want 0", got)
	}
}

func TestHelpersNilSafe(t *testing.T) {
	if IsAuthError(nil) || IsRateLimitError(nil) || IsTimeoutError(nil) ||
		IsNetworkError(nil) || IsMalformedResponseError(nil) {
		t.Error("classification helpers must return false for nil")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewInvalidCredentialError(""), "invalid API key: check your Groq API key"},
		{NewRateLimitError("slow down"), "rate limit exceeded: slow down"},
		{NewAPIError(500, "", "boom"), "API error [500]: boom"},
		{NewTimeoutError(""), "request timed out"},
		{NewConnectionError("dial tcp refused"), "connection failed: dial tcp refused"},
		{NewMalformedResponseError("no choices"), "malformed API response: no choices"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
