package gemini

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/genai"
)

type geminiImpl struct {
	client *genai.Client
	model  string
}

func newGeminiImpl(ctx context.Context, cfg Config) (*geminiImpl, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	return &geminiImpl{client: client, model: cfg.Model}, nil
}

// GenerateContent sends a generation request to Gemini API
func (g *geminiImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	contents, config := transformRequest(req)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content failed: %w", err)
	}

	out := &Response{Content: resp.Text()}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out, nil
}

// StreamContent starts a streaming generation
func (g *geminiImpl) StreamContent(ctx context.Context, req *Request) *Stream {
	contents, config := transformRequest(req)
	next, stop := iter.Pull2(g.client.Models.GenerateContentStream(ctx, g.model, contents, config))
	return &Stream{next: next, stop: stop}
}

// Model returns the model being used
func (g *geminiImpl) Model() string {
	return g.model
}

// transformRequest maps chat messages onto Gemini contents. Assistant turns
// use the "model" role; system messages are merged into the system instruction.
func transformRequest(req *Request) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	var system []string
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case "system":
			system = append(system, msg.Content)
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.Content, roleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}

	return contents, config
}

// Stream yields the text of a streaming generation. It is lazy, finite and
// cannot be restarted.
type Stream struct {
	next  func() (*genai.GenerateContentResponse, error, bool)
	stop  func()
	chunk string
	err   error
	done  bool
}

// Next advances to the next non-empty text chunk.
func (s *Stream) Next() bool {
	for !s.done {
		resp, err, ok := s.next()
		if !ok {
			s.done = true
			break
		}
		if err != nil {
			s.err = fmt.Errorf("gemini: stream failed: %w", err)
			s.done = true
			break
		}
		if text := resp.Text(); text != "" {
			s.chunk = text
			return true
		}
	}
	s.chunk = ""
	return false
}

// Chunk returns the text produced by the last successful Next.
func (s *Stream) Chunk() string { return s.chunk }

// Err returns the error that stopped the stream, if any.
func (s *Stream) Err() error { return s.err }

// Close stops the underlying iterator.
func (s *Stream) Close() error {
	s.done = true
	s.stop()
	return nil
}
