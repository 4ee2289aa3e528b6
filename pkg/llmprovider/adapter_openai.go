package llmprovider

import (
	"context"

	"movie-bot/pkg/openai"
)

// OpenAIAdapter adapts an OpenAI-compatible client (OpenAI, Qwen, DeepSeek)
// to the Provider interface.
type OpenAIAdapter struct {
	client openai.IOpenAI
	name   string
}

// NewOpenAIAdapter creates a new adapter reporting itself under name.
func NewOpenAIAdapter(name string, client openai.IOpenAI) *OpenAIAdapter {
	return &OpenAIAdapter{client: client, name: name}
}

func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, a.toOpenAIRequest(req))
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Model: a.client.Model(), Err: err}
	}

	return &Response{
		Content:      resp.Content,
		ProviderName: a.name,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *OpenAIAdapter) StreamContent(ctx context.Context, req *Request) Stream {
	return a.client.StreamContent(ctx, a.toOpenAIRequest(req))
}

func (a *OpenAIAdapter) Name() string {
	return a.name
}

func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

func (a *OpenAIAdapter) toOpenAIRequest(req *Request) *openai.Request {
	messages := make([]openai.Message, 0, len(req.Messages)+1)
	if req.SystemInstruction != "" {
		messages = append(messages, openai.Message{Role: "system", Content: req.SystemInstruction})
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.Message{Role: m.Role, Content: m.Content})
	}

	return &openai.Request{
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
}
