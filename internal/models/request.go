package models

// Parameter bounds for completion requests. Values outside these
// ranges are clamped, never rejected.
const (
	MinTemperature = 0.0
	MaxTemperature = 1.0

	MinMaxTokens     = 500
	MaxMaxTokens     = 32768
	DefaultMaxTokens = 4000

	DefaultTemperature = 0.1
)

// CompletionRequest is the JSON body for the chat-completions endpoint.
// Stream is always false; streaming responses are out of scope.
type CompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

// Params holds the user-tunable generation parameters.
type Params struct {
	Temperature float64
	MaxTokens   int
}

// DefaultParams returns the default generation parameters.
func DefaultParams() Params {
	return Params{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Clamped returns a copy with both parameters forced into their valid ranges.
func (p Params) Clamped() Params {
	p.Temperature = ClampTemperature(p.Temperature)
	p.MaxTokens = ClampMaxTokens(p.MaxTokens)
	return p
}

// ClampTemperature forces t into [0, 1].
func ClampTemperature(t float64) float64 {
	if t < MinTemperature {
		return MinTemperature
	}
	if t > MaxTemperature {
		return MaxTemperature
	}
	return t
}

// ClampMaxTokens forces n into [500, 32768]. Zero means "use default".
func ClampMaxTokens(n int) int {
	if n == 0 {
		return DefaultMaxTokens
	}
	if n < MinMaxTokens {
		return MinMaxTokens
	}
	if n > MaxMaxTokens {
		return MaxMaxTokens
	}
	return n
}
