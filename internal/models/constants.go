// Package models contains data types and constants for the Groq
// chat-completions API.
package models

// EndpointCompletions is the Groq OpenAI-compatible chat-completions endpoint.
const EndpointCompletions = "https://api.groq.com/openai/v1/chat/completions"

// Tier classifies catalog entries for display purposes.
type Tier int

const (
	TierRecommended Tier = iota
	TierAlternative
	TierLegacy
)

// String returns the tier's display label.
func (t Tier) String() string {
	switch t {
	case TierRecommended:
		return "recommended"
	case TierAlternative:
		return "alternative"
	default:
		return "legacy"
	}
}

// Model represents an entry in the Groq model catalog.
type Model struct {
	ID    string
	Label string
	Tier  Tier
}

// Catalog of known Groq models. The IDs are fixed upstream identifiers.
var (
	ModelLlama31_8B = Model{
		ID:    "llama-3.1-8b-instant",
		Label: "Llama 3.1 8B (Fastest)",
		Tier:  TierRecommended,
	}
	ModelLlama31_70B = Model{
		ID:    "llama-3.1-70b-versatile",
		Label: "Llama 3.1 70B (Most Capable)",
		Tier:  TierRecommended,
	}
	ModelLlama32_1B = Model{
		ID:    "llama-3.2-1b-preview",
		Label: "Llama 3.2 1B (Preview)",
		Tier:  TierAlternative,
	}
	ModelLlama32_3B = Model{
		ID:    "llama-3.2-3b-preview",
		Label: "Llama 3.2 3B (Preview)",
		Tier:  TierAlternative,
	}
	ModelMixtral = Model{
		ID:    "mixtral-8x7b-32768",
		Label: "Mixtral 8x7B",
		Tier:  TierAlternative,
	}
	ModelGemma2_9B = Model{
		ID:    "gemma2-9b-it",
		Label: "Gemma 2 9B",
		Tier:  TierAlternative,
	}
	ModelGemma7B = Model{
		ID:    "gemma-7b-it",
		Label: "Gemma 7B",
		Tier:  TierLegacy,
	}
	ModelLlama3_8B = Model{
		ID:    "llama3-8b-8192",
		Label: "Llama 3 8B (Legacy)",
		Tier:  TierLegacy,
	}
	ModelLlama3_70B = Model{
		ID:    "llama3-70b-8192",
		Label: "Llama 3 70B (Legacy)",
		Tier:  TierLegacy,
	}

	// DefaultModel is the recommended default.
	DefaultModel = ModelLlama31_8B
)

// catalog preserves the display ordering of the model list.
var catalog = []Model{
	ModelLlama31_8B,
	ModelLlama31_70B,
	ModelLlama32_1B,
	ModelLlama32_3B,
	ModelMixtral,
	ModelGemma2_9B,
	ModelGemma7B,
	ModelLlama3_8B,
	ModelLlama3_70B,
}

// AvailableModels returns the full catalog in display order.
func AvailableModels() []Model {
	out := make([]Model, len(catalog))
	copy(out, catalog)
	return out
}

// ModelFromName resolves a model ID to a catalog entry, falling back
// to the default for unknown names.
func ModelFromName(name string) Model {
	for _, m := range catalog {
		if m.ID == name {
			return m
		}
	}
	return DefaultModel
}

// IsKnownModel reports whether name is a catalog model ID.
func IsKnownModel(name string) bool {
	for _, m := range catalog {
		if m.ID == name {
			return true
		}
	}
	return false
}
