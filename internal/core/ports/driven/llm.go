package driven

import "context"

// LLMService provides chat completion for answer generation.
//
// Implementations may include:
//   - OpenAI (gpt-4o-mini and friends)
//   - OpenAI-compatible local inference servers
type LLMService interface {
	// Chat issues one chat completion request for the given messages and
	// returns the model's text response verbatim. Transient provider
	// failures are not retried; they surface as errors.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// Generate produces a completion from a single-prompt request.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Summarise creates a short summary of content, used for session
	// headers.
	Summarise(ctx context.Context, content string, maxLength int) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test
	// request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness. The answer generator always runs
	// at 0 for deterministic-leaning output.
	Temperature float64
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
