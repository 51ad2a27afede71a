package ai

import (
	"context"
)

// Prompt is the fixed instruction plus the per-route user message sent to a backend.
type Prompt struct {
	System string
	User   string
}

// Backend defines the contract for one generative-text provider.
// Implementations return a parsed Analysis or a *CallError; they never fall
// back to mock data themselves.
type Backend interface {
	// Name identifies the backend in logs ("grok", "openai", "gemini").
	Name() string

	// Analyze sends the prompt and decodes the reply into an Analysis.
	Analyze(ctx context.Context, prompt Prompt) (Analysis, error)
}
