package llm

import (
	"context"
)

// Message is a provider-agnostic chat turn. Roles follow the common
// "system"/"user"/"assistant" convention; backends map them as needed.
type Message struct {
	Role    string
	Content string
}

// Option tunes a single call without widening the interface.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
}

// WithTemperature overrides the backend's default sampling temperature.
// Metadata derivations run cool so repeated runs agree.
func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

// WithMaxTokens caps the reply length. Useful for label-only prompts.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// LLMProvider is the contract every chat backend satisfies.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
