package usecase

import (
	"context"
	"errors"

	"movie-bot/internal/chat"
	"movie-bot/internal/session"
	pkgLog "movie-bot/pkg/log"
)

// StartSession creates a session seeded with the greeting.
func (uc *implUseCase) StartSession(ctx context.Context) (chat.SessionOutput, error) {
	s := uc.store.Create()
	uc.l.Infof(pkgLog.WithSessionID(ctx, s.ID()), "StartSession: live_sessions=%d", uc.store.Len())

	return chat.SessionOutput{
		ID:        s.ID(),
		CreatedAt: s.CreatedAt(),
		Messages:  s.All(),
	}, nil
}

// Transcript returns the session transcript and marks it as awaiting input.
func (uc *implUseCase) Transcript(ctx context.Context, sessionID string) (chat.TranscriptOutput, error) {
	s, err := uc.getSession(sessionID)
	if err != nil {
		return chat.TranscriptOutput{}, err
	}

	s.MarkAwaitingInput()
	return chat.TranscriptOutput{
		SessionID: s.ID(),
		Messages:  s.All(),
	}, nil
}

// EndSession discards a session.
func (uc *implUseCase) EndSession(ctx context.Context, sessionID string) error {
	if !uc.store.Delete(sessionID) {
		return chat.ErrSessionNotFound
	}
	uc.l.Infof(pkgLog.WithSessionID(ctx, sessionID), "EndSession: live_sessions=%d", uc.store.Len())
	return nil
}

func (uc *implUseCase) getSession(sessionID string) (*session.Session, error) {
	s, err := uc.store.Get(sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, chat.ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}
