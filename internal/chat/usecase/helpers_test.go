package usecase

import (
	"context"
	"errors"
	"sync"

	"movie-bot/internal/filmography"
	"movie-bot/internal/session"
	"movie-bot/pkg/llmprovider"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// mockFilmography implements filmography.UseCase and records the names looked up.
type mockFilmography struct {
	result filmography.Filmography
	err    error
	names  []string
}

func (m *mockFilmography) Lookup(ctx context.Context, input filmography.LookupInput) (filmography.Filmography, error) {
	m.names = append(m.names, input.Name)
	if input.Name == "" {
		return filmography.Filmography{}, filmography.ErrActorNotFound
	}
	if m.err != nil {
		return filmography.Filmography{}, m.err
	}
	out := m.result
	out.Query = input.Name
	return out, nil
}

// mockLLM implements LLM and records every request.
type mockLLM struct {
	mu        sync.Mutex
	reply     string
	chunks    []string
	err       error
	streamErr error
	requests  []*llmprovider.Request
	streamCtx context.Context
	gate      chan struct{} // when set, GenerateContent blocks until closed
}

func (m *mockLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.record(req)
	if m.gate != nil {
		<-m.gate
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llmprovider.Response{Content: m.reply, ProviderName: "mock"}, nil
}

func (m *mockLLM) StreamContent(ctx context.Context, req *llmprovider.Request) (llmprovider.Stream, error) {
	m.record(req)
	m.mu.Lock()
	m.streamCtx = ctx
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &sliceStream{chunks: m.chunks, err: m.streamErr}, nil
}

func (m *mockLLM) record(req *llmprovider.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
}

func (m *mockLLM) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

type sliceStream struct {
	chunks  []string
	err     error
	pos     int
	current string
	closed  bool
}

func (s *sliceStream) Next() bool {
	if s.closed || s.pos >= len(s.chunks) {
		return false
	}
	s.current = s.chunks[s.pos]
	s.pos++
	return true
}

func (s *sliceStream) Chunk() string { return s.current }

func (s *sliceStream) Err() error {
	if s.pos >= len(s.chunks) {
		return s.err
	}
	return nil
}

func (s *sliceStream) Close() error {
	s.closed = true
	return nil
}

var errUpstream = errors.New("upstream 503")

func newTestUseCase(film *mockFilmography, llm *mockLLM) (*implUseCase, *session.Store) {
	store := session.NewStore(session.StoreConfig{Greeting: session.DefaultGreeting})
	uc := New(&mockLogger{}, store, film, llm, Config{SystemPrompt: "You recommend movies."})
	return uc.(*implUseCase), store
}
