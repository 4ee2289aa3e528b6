package llmprovider

import (
	"context"

	"movie-bot/pkg/gemini"
)

// GeminiAdapter adapts the Gemini client to the Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, toGeminiRequest(req))
	if err != nil {
		return nil, &ProviderError{Provider: a.Name(), Model: a.client.Model(), Err: err}
	}

	return &Response{
		Content:      resp.Content,
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *GeminiAdapter) StreamContent(ctx context.Context, req *Request) Stream {
	return a.client.StreamContent(ctx, toGeminiRequest(req))
}

func (a *GeminiAdapter) Name() string {
	return "gemini"
}

func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

func toGeminiRequest(req *Request) *gemini.Request {
	messages := make([]gemini.Message, 0, len(req.Messages)+1)
	if req.SystemInstruction != "" {
		messages = append(messages, gemini.Message{Role: "system", Content: req.SystemInstruction})
	}
	for _, m := range req.Messages {
		messages = append(messages, gemini.Message{Role: m.Role, Content: m.Content})
	}

	return &gemini.Request{
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
}
