package openai

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds OpenAI client configuration.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string // empty = api.openai.com
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("openai: APIKey is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

// Message is one chat message. Role is "system", "user" or "assistant".
type Message struct {
	Role    string
	Content string
}

// Request represents a chat completion request
type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Response represents a chat completion response
type Response struct {
	Content string
	Usage   Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
