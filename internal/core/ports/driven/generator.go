package driven

import "context"

// TextGenerator provides language model text generation for ROI narratives
// and contract rendering. This is an optional service - when nil, those
// features are disabled and the core returns domain.ErrGeneratorUnavailable.
//
// Implementations may include:
//   - Anthropic (Claude)
//   - OpenAI (GPT-4)
//   - Local inference servers
type TextGenerator interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// System is an optional system prompt.
	System string
}
