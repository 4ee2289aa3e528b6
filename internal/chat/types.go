package chat

import (
	"time"

	"movie-bot/internal/model"
)

// SessionOutput describes a live session.
type SessionOutput struct {
	ID        string
	CreatedAt time.Time
	Messages  []model.Message
}

// TranscriptOutput is the full ordered transcript of a session.
type TranscriptOutput struct {
	SessionID string
	Messages  []model.Message
}

// ReplyInput is one line of user input for a session.
type ReplyInput struct {
	SessionID string
	Text      string
}

// ReplyOutput is the result of one turn.
type ReplyOutput struct {
	Actor    string          // extracted name, empty when nothing matched
	Titles   []string        // filmography used for the turn
	Messages []model.Message // messages appended by this turn, in order
	Failure  error           // user-visible failure, already reported in Messages
}
