package openai

import (
	"context"
	"fmt"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
)

type openAIImpl struct {
	client *sdk.Client
	model  string
}

func newOpenAIImpl(cfg Config) *openAIImpl {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0), // retries belong to llmprovider.Manager
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	client := sdk.NewClient(opts...)
	return &openAIImpl{client: &client, model: cfg.Model}
}

// GenerateContent sends a chat completion request
func (o *openAIImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := o.client.Chat.Completions.New(ctx, o.transformRequest(req))
	if err != nil {
		return nil, fmt.Errorf("openai: chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty response")
	}

	return &Response{
		Content: resp.Choices[0].Message.Content,
		Usage: Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:  int(resp.Usage.TotalTokens),
		},
	}, nil
}

// StreamContent starts a streaming chat completion
func (o *openAIImpl) StreamContent(ctx context.Context, req *Request) *Stream {
	return &Stream{raw: o.client.Chat.Completions.NewStreaming(ctx, o.transformRequest(req))}
}

// Model returns the model being used
func (o *openAIImpl) Model() string {
	return o.model
}

func (o *openAIImpl) transformRequest(req *Request) sdk.ChatCompletionNewParams {
	messages := make([]sdk.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case "system":
			messages = append(messages, sdk.SystemMessage(msg.Content))
		case "assistant":
			messages = append(messages, sdk.AssistantMessage(msg.Content))
		default:
			messages = append(messages, sdk.UserMessage(msg.Content))
		}
	}

	params := sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(o.model),
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = sdk.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = sdk.Int(int64(req.MaxTokens))
	}
	return params
}

// Stream yields the text deltas of a streaming chat completion. It is lazy,
// finite and cannot be restarted.
type Stream struct {
	raw   *ssestream.Stream[sdk.ChatCompletionChunk]
	chunk string
}

// Next advances to the next non-empty text delta.
func (s *Stream) Next() bool {
	for s.raw.Next() {
		chunk := s.raw.Current()
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		s.chunk = chunk.Choices[0].Delta.Content
		return true
	}
	s.chunk = ""
	return false
}

// Chunk returns the delta produced by the last successful Next.
func (s *Stream) Chunk() string { return s.chunk }

// Err returns the error that stopped the stream, if any.
func (s *Stream) Err() error {
	if err := s.raw.Err(); err != nil {
		return fmt.Errorf("openai: stream failed: %w", err)
	}
	return nil
}

// Close releases the underlying HTTP response.
func (s *Stream) Close() error {
	return s.raw.Close()
}
