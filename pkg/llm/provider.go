package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

// TextDeltaFunc receives one incremental text fragment. Returning an error
// cancels the stream.
type TextDeltaFunc func(delta string) error

// CodeSnapshotFunc receives the full current value of the generated code,
// not a fragment; each call replaces the previous snapshot. Returning an
// error cancels the stream.
type CodeSnapshotFunc func(code string) error

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// StreamText streams a free-text completion, invoking onDelta once per
	// fragment in arrival order.
	StreamText(ctx context.Context, system, prompt string, onDelta TextDeltaFunc, options ...Option) error

	// StreamCode streams a completion constrained to a {code: string} object,
	// invoking onSnapshot with the full code value as it grows.
	StreamCode(ctx context.Context, system, prompt string, onSnapshot CodeSnapshotFunc, options ...Option) error
}
