package usecase

import (
	"context"

	"movie-bot/internal/chat"
	"movie-bot/internal/filmography"
	"movie-bot/internal/session"
	"movie-bot/pkg/llmprovider"
	pkgLog "movie-bot/pkg/log"
)

// LLM is the chat-completion collaborator. *llmprovider.Manager implements it.
type LLM interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
	StreamContent(ctx context.Context, req *llmprovider.Request) (llmprovider.Stream, error)
}

// Config tunes how a turn talks to the chat model.
type Config struct {
	SystemPrompt string // optional, sent as system instruction
	MoodPrompt   string
	Temperature  float64
	MaxTokens    int
}

type implUseCase struct {
	l           pkgLog.Logger
	store       *session.Store
	filmography filmography.UseCase
	llm         LLM
	cfg         Config
}

// New creates a new chat UseCase instance.
func New(
	l pkgLog.Logger,
	store *session.Store,
	filmographyUC filmography.UseCase,
	llm LLM,
	cfg Config,
) chat.UseCase {
	if cfg.MoodPrompt == "" {
		cfg.MoodPrompt = DefaultMoodPrompt
	}
	return &implUseCase{
		l:           l,
		store:       store,
		filmography: filmographyUC,
		llm:         llm,
		cfg:         cfg,
	}
}
