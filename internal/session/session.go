package session

import (
	"sync"
	"time"

	"movie-bot/internal/model"
)

// DefaultGreeting seeds every new session.
const DefaultGreeting = "Hello! I'm MOVIE BOT."

// Session is the append-only transcript of one user's conversation.
// It is safe for concurrent use.
type Session struct {
	id        string
	createdAt time.Time

	mu       sync.RWMutex
	messages []model.Message
	state    State
}

// New creates a session seeded with a single assistant greeting.
func New(id, greeting string) *Session {
	if greeting == "" {
		greeting = DefaultGreeting
	}
	return &Session{
		id:        id,
		createdAt: time.Now(),
		messages:  []model.Message{model.NewAssistantMessage(greeting)},
		state:     StateIdle,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Append adds msg to the end of the transcript. Role order is not checked.
func (s *Session) Append(msg model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// All returns a copy of the transcript in insertion order.
func (s *Session) All() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// MarkAwaitingInput records that the transcript was rendered and the user can
// type. It is a no-op while a turn is processing.
func (s *Session) MarkAwaitingInput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		s.state = StateAwaitingInput
	}
}

// BeginTurn moves the session to Processing. Only one turn may run at a time.
func (s *Session) BeginTurn() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateProcessing {
		return ErrTurnInProgress
	}
	s.state = StateProcessing
	return nil
}

// EndTurn returns the session to Idle after a turn completed or failed.
func (s *Session) EndTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
}
