package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	apierrors "github.com/kss0704/codellm/internal/errors"
	"github.com/kss0704/codellm/internal/models"
)

// outcomeKind classifies a single attempt. The retry loop consumes
// exactly one outcome per attempt; there is no early return from
// inside an attempt.
type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeRetryable
	outcomeTerminal
)

// attemptOutcome is the result of one HTTP attempt.
type attemptOutcome struct {
	kind outcomeKind
	text string
	// err is returned to the caller for terminal outcomes. For
	// retryable outcomes it is the error to surface if this was the
	// last attempt; nil means fall through to ErrNoResponse (the
	// rate-limit case).
	err    error
	wait   time.Duration
	reason string
}

// Complete sends the message transcript to the chat-completions endpoint
// and returns the first choice's content. Transient failures (429,
// timeouts, connection errors) are retried within the attempt budget;
// terminal failures (401, other statuses, malformed bodies) return
// immediately with a typed error.
func (c *Client) Complete(ctx context.Context, messages []models.ChatMessage, params models.Params) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("messages cannot be empty")
	}

	params = params.Clamped()
	payload, err := json.Marshal(models.CompletionRequest{
		Model:       c.model.ID,
		Messages:    messages,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		out := c.attempt(ctx, payload, attempt)

		switch out.kind {
		case outcomeSuccess:
			return out.text, nil

		case outcomeTerminal:
			return "", out.err

		case outcomeRetryable:
			last := attempt == c.maxAttempts-1
			if last {
				if out.err != nil {
					return "", out.err
				}
				// Rate limiting exhausted the budget.
				return "", apierrors.ErrNoResponse
			}
			if c.notify != nil {
				c.notify(RetryEvent{Attempt: attempt, Reason: out.reason, Wait: out.wait})
			}
			if out.wait > 0 {
				c.sleep(out.wait)
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
		}
	}

	return "", apierrors.ErrNoResponse
}

// attempt performs one HTTP POST and classifies the result.
func (c *Client) attempt(ctx context.Context, payload []byte, attempt int) attemptOutcome {
	actx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(actx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return attemptOutcome{kind: outcomeTerminal, err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The caller's own cancellation is terminal, not a network fault.
		if ctx.Err() != nil {
			return attemptOutcome{kind: outcomeTerminal, err: ctx.Err()}
		}
		if isTimeout(err) {
			return attemptOutcome{
				kind:   outcomeRetryable,
				err:    apierrors.NewTimeoutError(fmt.Sprintf("no response within %s", c.attemptTimeout)),
				reason: "timeout",
			}
		}
		return attemptOutcome{
			kind:   outcomeRetryable,
			err:    apierrors.NewConnectionError(err.Error()),
			wait:   c.backoffUnit,
			reason: "connection error",
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return attemptOutcome{
			kind:   outcomeRetryable,
			err:    apierrors.NewConnectionError(err.Error()),
			wait:   c.backoffUnit,
			reason: "connection error",
		}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		choices := gjson.GetBytes(body, "choices")
		if !choices.Exists() || !choices.IsArray() || len(choices.Array()) == 0 {
			return attemptOutcome{
				kind: outcomeTerminal,
				err:  apierrors.NewMalformedResponseError("response has no choices"),
			}
		}
		return attemptOutcome{
			kind: outcomeSuccess,
			text: gjson.GetBytes(body, "choices.0.message.content").String(),
		}

	case http.StatusUnauthorized:
		return attemptOutcome{
			kind: outcomeTerminal,
			err:  apierrors.NewInvalidCredentialError("check your Groq API key"),
		}

	case http.StatusTooManyRequests:
		return attemptOutcome{
			kind:   outcomeRetryable,
			wait:   c.backoffUnit << attempt,
			reason: "rate limited",
		}

	default:
		return attemptOutcome{
			kind: outcomeTerminal,
			err:  apierrors.NewAPIError(resp.StatusCode, c.endpoint, errorDetail(body)),
		}
	}
}

// errorDetail extracts the server's error.message field, falling back to
// the raw body when the response is not parseable JSON.
func errorDetail(body []byte) string {
	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		return msg.String()
	}
	return strings.TrimSpace(string(body))
}

// isTimeout reports whether err represents an attempt deadline expiry.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
