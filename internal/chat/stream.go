package chat

import (
	"context"
	"strings"
	"sync"

	"movie-bot/internal/model"
)

// ChunkSource is the incremental text producer behind a TurnStream.
type ChunkSource interface {
	Next() bool
	Chunk() string
	Err() error
	Close() error
}

// FinishFunc receives the concatenated text and the stream error once a
// TurnStream ends. It returns the message it appended, if any.
type FinishFunc func(text string, err error, closedEarly bool) (model.Message, error)

// TurnStream is a lazy, finite, non-restartable stream of reply chunks for
// one turn. Next must be called from one goroutine at a time. Close may be
// called from any goroutine and more than once; callers must call it.
type TurnStream struct {
	// Prelude holds the messages appended before streaming began: the user
	// message and any filmography, prompt or error message.
	Prelude []model.Message

	src    ChunkSource
	cancel context.CancelFunc
	finish FinishFunc

	mu        sync.Mutex
	buf       strings.Builder
	chunk     string
	err       error
	reading   bool
	cancelled bool
	done      bool
	final     model.Message
	failure   error
}

// NewTurnStream wraps src. cancel, if set, aborts the context src reads
// under and is called when the stream is closed. A nil src yields an already
// exhausted stream reporting failure.
func NewTurnStream(
	prelude []model.Message,
	src ChunkSource,
	cancel context.CancelFunc,
	finish FinishFunc,
	failure error,
) *TurnStream {
	return &TurnStream{
		Prelude: prelude,
		src:     src,
		cancel:  cancel,
		finish:  finish,
		failure: failure,
		done:    src == nil,
	}
}

// Next advances to the next chunk. It returns false once the stream ended or
// was closed.
func (s *TurnStream) Next() bool {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return false
	}
	if s.cancelled {
		s.endLocked(true)
		s.mu.Unlock()
		return false
	}
	s.reading = true
	s.mu.Unlock()

	ok := s.src.Next()
	var chunk string
	var err error
	if ok {
		chunk = s.src.Chunk()
	} else {
		err = s.src.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reading = false

	switch {
	case s.cancelled:
		// Whatever the source reported after cancellation is not a failure.
		s.buf.WriteString(chunk)
		s.chunk = ""
		s.endLocked(true)
		return false
	case !ok:
		s.err = err
		s.chunk = ""
		s.endLocked(false)
		return false
	}

	s.chunk = chunk
	s.buf.WriteString(chunk)
	return true
}

// Chunk returns the current chunk.
func (s *TurnStream) Chunk() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunk
}

// Err returns the error that ended the stream, if any.
func (s *TurnStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Final returns the assistant message appended when the stream ended.
func (s *TurnStream) Final() model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.final
}

// Failure returns the user-visible failure of the turn, if any.
func (s *TurnStream) Failure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// Close stops the stream and keeps the text received so far. When a Next is
// in flight on another goroutine, Close only cancels the source; that Next
// then returns false and ends the stream.
func (s *TurnStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.reading {
		s.cancelled = true
		return nil
	}
	s.endLocked(true)
	return nil
}

// endLocked closes the source and runs finish exactly once. The source is
// never closed while a Next is reading from it.
func (s *TurnStream) endLocked(early bool) {
	if s.done {
		return
	}
	s.done = true
	s.src.Close()
	if s.cancel != nil {
		s.cancel()
	}
	if s.finish != nil {
		s.final, s.failure = s.finish(s.buf.String(), s.err, early)
	}
}
