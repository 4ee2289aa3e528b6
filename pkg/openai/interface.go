package openai

import "context"

// IOpenAI defines the interface for the OpenAI chat client.
// Implementations are safe for concurrent use.
type IOpenAI interface {
	// GenerateContent sends a chat completion request and waits for the full reply.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// StreamContent starts a streaming chat completion. Cancel ctx or Close
	// the stream to abort it.
	StreamContent(ctx context.Context, req *Request) *Stream

	// Model returns the model being used
	Model() string
}

// New creates a new OpenAI client with the given configuration
func New(cfg Config) (IOpenAI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newOpenAIImpl(cfg), nil
}
