package commands

import (
	"strings"
	"testing"

	apierrors "github.com/kss0704/codellm/internal/errors"
)

func TestFormatErrorMessage_Nil(t *testing.T) {
	if got := formatErrorMessage(nil, "context"); got != "" {
		t.Errorf("formatErrorMessage(nil) = %q, want empty", got)
	}
}

func TestFormatErrorMessage_IncludesContext(t *testing.T) {
	out := formatErrorMessage(apierrors.NewConnectionError("dial refused"), "Request failed")
	if !strings.Contains(out, "Request failed") {
		t.Errorf("output missing context: %q", out)
	}
	if !strings.Contains(out, "internet connection") {
		t.Errorf("output missing network hint: %q", out)
	}
}

func TestFormatErrorMessage_APIErrorDetails(t *testing.T) {
	err := apierrors.NewAPIError(503, "https://api.groq.com", "overloaded")
	out := formatErrorMessage(err, "Request failed")

	if !strings.Contains(out, "503") {
		t.Errorf("output missing HTTP status: %q", out)
	}
	if !strings.Contains(out, "overloaded") {
		t.Errorf("output missing server detail: %q", out)
	}
}

func TestFormatErrorMessage_Hints(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", apierrors.NewInvalidCredentialError(""), "GROQ_API_KEY"},
		{"rate limit", apierrors.NewRateLimitError(""), "usage limit"},
		{"timeout", apierrors.NewTimeoutError(""), "timed out"},
		{"malformed", apierrors.NewMalformedResponseError(""), "unexpected payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatErrorMessage(tt.err, "Request failed")
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q missing hint %q", out, tt.want)
			}
		})
	}
}
