// Package bootstrap assembles the chat domain from configuration. It is shared
// by the HTTP server and the terminal client.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"movie-bot/config"
	"movie-bot/internal/chat"
	chatUC "movie-bot/internal/chat/usecase"
	tmdbRepo "movie-bot/internal/filmography/repository/tmdb"
	filmUC "movie-bot/internal/filmography/usecase"
	"movie-bot/internal/session"
	"movie-bot/pkg/llmprovider"
	"movie-bot/pkg/log"
	pkgTMDb "movie-bot/pkg/tmdb"
)

// NewChatUseCase wires TMDb, the LLM providers and the session store into a
// chat.UseCase.
func NewChatUseCase(ctx context.Context, cfg *config.Config, l log.Logger) (chat.UseCase, error) {
	// 1. Movie metadata
	tmdbClient, err := pkgTMDb.New(pkgTMDb.Config{
		APIKey:   cfg.TMDb.APIKey,
		BaseURL:  cfg.TMDb.BaseURL,
		Language: cfg.TMDb.Language,
		Timeout:  cfg.TMDb.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("tmdb: %w", err)
	}
	filmographyUC := filmUC.New(l, tmdbRepo.New(tmdbClient, l))

	// 2. Chat model
	manager, err := NewLLMManager(ctx, cfg.LLM, l)
	if err != nil {
		return nil, err
	}

	// 3. Sessions
	store := session.NewStore(session.StoreConfig{
		MaxSessions: cfg.Session.MaxSessions,
		TTL:         cfg.Session.TTL,
		Greeting:    cfg.Session.Greeting,
		OnEvict: func(id string) {
			l.Debugf(log.WithSessionID(context.Background(), id), "session evicted")
		},
	})

	return chatUC.New(l, store, filmographyUC, manager, chatUC.Config{
		SystemPrompt: cfg.Chat.SystemPrompt,
		MoodPrompt:   cfg.Chat.MoodPrompt,
		Temperature:  cfg.Chat.Temperature,
		MaxTokens:    cfg.Chat.MaxTokens,
	}), nil
}

// NewLLMManager initializes every enabled provider and the fallback manager.
func NewLLMManager(ctx context.Context, cfg config.LLMConfig, l log.Logger) (*llmprovider.Manager, error) {
	providers, err := llmprovider.InitializeProviders(ctx, &cfg, l)
	if err != nil {
		return nil, fmt.Errorf("llm providers: %w", err)
	}

	retryDelay, err := parseDuration(cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("llm.retry_delay: %w", err)
	}
	maxTotal, err := parseDuration(cfg.MaxTotalTimeout)
	if err != nil {
		return nil, fmt.Errorf("llm.max_total_timeout: %w", err)
	}

	for _, p := range providers {
		l.Infof(ctx, "LLM provider ready: %s (%s)", p.Name(), p.Model())
	}

	return llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
	}, l), nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
