// Package api implements the Groq chat-completions client with bounded
// retry and typed failure classification.
package api

import (
	"net/http"
	"time"

	"github.com/kss0704/codellm/internal/models"
)

// Retry and timeout defaults. Three attempts total; each attempt gets
// its own 60-second deadline.
const (
	DefaultMaxAttempts    = 3
	DefaultAttemptTimeout = 60 * time.Second
	DefaultBackoffUnit    = time.Second
)

// RetryEvent is the informational progress signal emitted before each
// retry sleep. It is not part of the return contract.
type RetryEvent struct {
	// Attempt is the 0-indexed attempt that just failed.
	Attempt int
	// Reason is a short human-readable cause ("rate limited", "timeout",
	// "connection error").
	Reason string
	// Wait is how long the client will sleep before the next attempt.
	Wait time.Duration
}

// Notifier receives retry progress events.
type Notifier func(RetryEvent)

// Client talks to the Groq chat-completions endpoint.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	model          models.Model
	endpoint       string
	maxAttempts    int
	attemptTimeout time.Duration
	backoffUnit    time.Duration
	notify         Notifier
	sleep          func(time.Duration)
}

// ClientOption is a function that configures the client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithModel sets the model used for completion requests.
func WithModel(model models.Model) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithEndpoint overrides the completions endpoint. Used by tests.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithMaxAttempts sets the total attempt budget.
func WithMaxAttempts(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithAttemptTimeout sets the per-attempt deadline.
func WithAttemptTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.attemptTimeout = d
		}
	}
}

// WithBackoffUnit sets the base unit for backoff sleeps: rate-limit
// retries sleep unit*2^attempt, connection retries sleep one unit.
func WithBackoffUnit(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.backoffUnit = d
		}
	}
}

// WithNotifier registers a retry progress callback.
func WithNotifier(n Notifier) ClientOption {
	return func(c *Client) {
		c.notify = n
	}
}

// NewClient creates a client for the given bearer credential.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:         apiKey,
		model:          models.DefaultModel,
		endpoint:       models.EndpointCompletions,
		maxAttempts:    DefaultMaxAttempts,
		attemptTimeout: DefaultAttemptTimeout,
		backoffUnit:    DefaultBackoffUnit,
		sleep:          time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		// No client-level timeout: each attempt carries its own
		// context deadline.
		c.httpClient = &http.Client{}
	}
	return c
}

// Model returns the model used for completion requests.
func (c *Client) Model() models.Model {
	return c.model
}

// SetModel changes the model used for completion requests.
func (c *Client) SetModel(model models.Model) {
	c.model = model
}

// HasCredential reports whether an API key is configured.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}
