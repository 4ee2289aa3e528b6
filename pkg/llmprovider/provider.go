package llmprovider

import "context"

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// StreamContent starts a streaming generation. The caller must Close the stream.
	StreamContent(ctx context.Context, req *Request) Stream

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string

	// Model returns the model being used
	Model() string
}

// Stream is a lazy, finite sequence of text chunks. It cannot be restarted.
type Stream interface {
	// Next advances to the next chunk. It returns false at the end of the
	// stream or on error.
	Next() bool

	// Chunk returns the text of the current chunk.
	Chunk() string

	// Err returns the error that ended the stream, if any.
	Err() error

	// Close releases the stream. It is safe to call more than once.
	Close() error
}

// Request represents a normalized LLM generation request
type Request struct {
	SystemInstruction string
	Messages          []Message
	Temperature       float64
	MaxTokens         int
}

// Message represents a conversation message
type Message struct {
	Role    string // "user", "assistant"
	Content string
}

// Response represents a normalized LLM generation response
type Response struct {
	Content      string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
