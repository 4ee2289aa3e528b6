package llmprovider

import (
	"context"
	"fmt"
	"time"

	"movie-bot/pkg/log"
)

// Manager orchestrates provider selection, fallback, and retry logic
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // Global timeout for entire fallback chain
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	if config == nil {
		config = &Config{}
	}
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 1
	}
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// Name returns the name of the primary provider.
func (m *Manager) Name() string {
	if len(m.providers) == 0 {
		return ""
	}
	return m.providers[0].Name()
}

// Model returns the model of the primary provider.
func (m *Manager) Model() string {
	if len(m.providers) == 0 {
		return ""
	}
	return m.providers[0].Model()
}

// GenerateContent iterates through providers in priority order with fallback logic
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if req == nil || len(req.Messages) == 0 {
		return nil, ErrInvalidRequest
	}

	if m.config.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error
	for _, provider := range m.providers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("global timeout exceeded after trying %d provider(s): %w",
				len(m.providers), err)
		}

		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp.Usage)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// StreamContent opens a stream on the first provider able to produce its first
// chunk. Once a chunk has been delivered there is no fallback.
func (m *Manager) StreamContent(ctx context.Context, req *Request) (Stream, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if req == nil || len(req.Messages) == 0 {
		return nil, ErrInvalidRequest
	}

	cancel := context.CancelFunc(func() {})
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
	}

	var lastErr error
	for _, provider := range m.providers {
		if err := ctx.Err(); err != nil {
			cancel()
			return nil, fmt.Errorf("global timeout exceeded after trying %d provider(s): %w",
				len(m.providers), err)
		}

		s, err := m.openWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, nil)
			s.cancel = cancel
			return s, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		if !m.config.FallbackEnabled {
			break
		}
	}

	cancel()
	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// generateWithRetry implements retry mechanism with linear backoff
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < m.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			if err := m.wait(ctx, attempt); err != nil {
				return nil, err
			}
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil {
			return resp, nil
		}

		lastErr = err
	}

	return nil, lastErr
}

func (m *Manager) openWithRetry(ctx context.Context, provider Provider, req *Request) (*primedStream, error) {
	var lastErr error

	for attempt := 0; attempt < m.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			if err := m.wait(ctx, attempt); err != nil {
				return nil, err
			}
		}

		s := provider.StreamContent(ctx, req)
		if s.Next() {
			return &primedStream{inner: s, chunk: s.Chunk(), primed: true}, nil
		}
		if err := s.Err(); err != nil {
			s.Close()
			lastErr = &ProviderError{Provider: provider.Name(), Model: provider.Model(), Err: err}
			continue
		}
		// Empty but successful generation.
		return &primedStream{inner: s, done: true}, nil
	}

	return nil, lastErr
}

func (m *Manager) wait(ctx context.Context, attempt int) error {
	delay := time.Duration(attempt) * m.config.RetryDelay
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// logSuccess logs successful LLM generation with metrics
func (m *Manager) logSuccess(ctx context.Context, provider Provider, usage *Usage) {
	if usage == nil {
		m.logger.Infof(ctx, "LLM stream opened: provider=%s model=%s", provider.Name(), provider.Model())
		return
	}
	m.logger.Infof(ctx, "LLM generation successful: provider=%s model=%s input_tokens=%d output_tokens=%d",
		provider.Name(), provider.Model(), usage.InputTokens, usage.OutputTokens)
}

// logFailure logs failed LLM generation attempts
func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warnf(ctx, "LLM generation failed: provider=%s model=%s error=%v",
		provider.Name(), provider.Model(), err)
}

// primedStream replays the chunk read while probing the provider.
type primedStream struct {
	inner  Stream
	chunk  string
	primed bool
	done   bool
	cancel context.CancelFunc
	closed bool
}

func (s *primedStream) Next() bool {
	if s.closed || s.done {
		return false
	}
	if s.primed {
		s.primed = false
		return true
	}
	if !s.inner.Next() {
		s.chunk = ""
		s.done = true
		return false
	}
	s.chunk = s.inner.Chunk()
	return true
}

func (s *primedStream) Chunk() string { return s.chunk }

func (s *primedStream) Err() error { return s.inner.Err() }

func (s *primedStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.inner.Close()
	if s.cancel != nil {
		s.cancel()
	}
	return err
}
