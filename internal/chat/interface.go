package chat

import "context"

// UseCase defines the business logic interface for the chat domain.
type UseCase interface {
	// StartSession creates a session seeded with the greeting.
	StartSession(ctx context.Context) (SessionOutput, error)

	// Transcript returns every message of a session in order and marks the
	// session as awaiting input.
	Transcript(ctx context.Context, sessionID string) (TranscriptOutput, error)

	// Reply runs one full turn and waits for the chat model.
	Reply(ctx context.Context, input ReplyInput) (ReplyOutput, error)

	// ReplyStream runs one turn and streams the chat model reply. The final
	// assistant message is appended when the stream ends or is closed.
	ReplyStream(ctx context.Context, input ReplyInput) (*TurnStream, error)

	// EndSession discards a session.
	EndSession(ctx context.Context, sessionID string) error
}
