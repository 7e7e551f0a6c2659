// Package generate produces the conch's reply text.
//
// A Generator is one strategy for turning a user message into persona text:
// the canned demo table, a local Ollama server, or one of the hosted vendor
// APIs. The Selector picks the effective backend at startup and converts
// every generation failure into in-character fallback text, so callers never
// see an error and the persona never breaks character.
package generate

import "context"

// Backend identifies a text-generation strategy.
type Backend string

const (
	BackendDemo        Backend = "demo"
	BackendOllama      Backend = "ollama"
	BackendOpenAI      Backend = "openai"
	BackendAnthropic   Backend = "anthropic"
	BackendHuggingFace Backend = "huggingface"
)

// Request is a single generation turn.
type Request struct {
	// Message is the user's input for this turn.
	Message string

	// SystemPrompt is the persona's behavior prompt, injected verbatim.
	SystemPrompt string
}

// Params are the sampling parameters applied to every call.
type Params struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// Generator is one text-generation backend.
type Generator interface {
	// Name returns the backend identifier.
	Name() string

	// Generate produces reply text for the request. Implementations return
	// an error on any transport or API failure; fallback text is the
	// Selector's concern, not theirs.
	Generate(ctx context.Context, req Request) (string, error)
}
