package gemini

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds Gemini client configuration
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string // optional override of the Gemini API endpoint
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("gemini: APIKey is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return nil
}

// Message is one chat message. Role is "user" or "assistant"; "system"
// messages become the system instruction.
type Message struct {
	Role    string
	Content string
}

// Request represents a Gemini generation request
type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Response represents a Gemini generation response
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
