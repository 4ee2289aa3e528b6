package chat_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-bot/internal/chat"
	"movie-bot/internal/model"
)

// slowSource yields "x" every delay until its cancel channel is closed.
// It fails the test if Close overlaps a Next.
type slowSource struct {
	t       *testing.T
	delay   time.Duration
	stop    chan struct{}
	stopped sync.Once

	inNext atomic.Bool
	closes atomic.Int32
}

func newSlowSource(t *testing.T, delay time.Duration) *slowSource {
	return &slowSource{t: t, delay: delay, stop: make(chan struct{})}
}

func (s *slowSource) cancel() { s.stopped.Do(func() { close(s.stop) }) }

func (s *slowSource) Next() bool {
	s.inNext.Store(true)
	defer s.inNext.Store(false)
	select {
	case <-time.After(s.delay):
		return true
	case <-s.stop:
		return false
	}
}

func (s *slowSource) Chunk() string { return "x" }

func (s *slowSource) Err() error {
	select {
	case <-s.stop:
		return errors.New("context canceled")
	default:
		return nil
	}
}

func (s *slowSource) Close() error {
	if s.inNext.Load() {
		s.t.Error("source closed while Next was running")
	}
	s.closes.Add(1)
	return nil
}

type finishCall struct {
	text        string
	err         error
	closedEarly bool
}

type recorder struct {
	mu    sync.Mutex
	calls []finishCall
}

func (r *recorder) finish(text string, err error, closedEarly bool) (model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, finishCall{text: text, err: err, closedEarly: closedEarly})
	return model.NewAssistantMessage(text), nil
}

func (r *recorder) snapshot() []finishCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]finishCall(nil), r.calls...)
}

func TestTurnStream_CloseFromOtherGoroutine(t *testing.T) {
	src := newSlowSource(t, time.Millisecond)
	rec := &recorder{}
	st := chat.NewTurnStream(nil, src, src.cancel, rec.finish, nil)

	done := make(chan int)
	go func() {
		n := 0
		for st.Next() {
			n++
			_ = st.Chunk()
		}
		done <- n
	}()

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, st.Close())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reader did not stop after Close")
	}

	assert.EqualValues(t, 1, src.closes.Load())
	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].closedEarly)
	assert.NoError(t, calls[0].err)
	assert.NoError(t, st.Err())
	assert.Equal(t, calls[0].text, st.Final().Content)

	// Further calls are no-ops.
	assert.False(t, st.Next())
	require.NoError(t, st.Close())
	assert.EqualValues(t, 1, src.closes.Load())
	assert.Len(t, rec.snapshot(), 1)
}

// listSource yields fixed chunks then an optional error.
type listSource struct {
	chunks []string
	err    error
	pos    int
	closed bool
}

func (s *listSource) Next() bool {
	if s.pos >= len(s.chunks) {
		return false
	}
	s.pos++
	return true
}

func (s *listSource) Chunk() string { return s.chunks[s.pos-1] }

func (s *listSource) Err() error {
	if s.pos >= len(s.chunks) {
		return s.err
	}
	return nil
}

func (s *listSource) Close() error {
	s.closed = true
	return nil
}

func TestTurnStream_Exhaustion(t *testing.T) {
	errBroken := errors.New("broken pipe")

	tests := []struct {
		name    string
		src     *listSource
		wantErr error
	}{
		{name: "clean end", src: &listSource{chunks: []string{"a", "b"}}},
		{name: "source error", src: &listSource{chunks: []string{"a", "b"}, err: errBroken}, wantErr: errBroken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			cancelled := false
			st := chat.NewTurnStream(nil, tt.src, func() { cancelled = true }, rec.finish, nil)

			var got []string
			for st.Next() {
				got = append(got, st.Chunk())
			}
			assert.Equal(t, []string{"a", "b"}, got)
			assert.ErrorIs(t, st.Err(), tt.wantErr)
			assert.True(t, tt.src.closed)
			assert.True(t, cancelled)

			calls := rec.snapshot()
			require.Len(t, calls, 1)
			assert.Equal(t, "ab", calls[0].text)
			assert.False(t, calls[0].closedEarly)
			assert.ErrorIs(t, calls[0].err, tt.wantErr)
		})
	}
}

func TestTurnStream_CloseBetweenReads(t *testing.T) {
	src := &listSource{chunks: []string{"a", "b", "c"}}
	rec := &recorder{}
	st := chat.NewTurnStream(nil, src, nil, rec.finish, nil)

	require.True(t, st.Next())
	require.NoError(t, st.Close())

	assert.True(t, src.closed)
	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, finishCall{text: "a", closedEarly: true}, calls[0])
	assert.False(t, st.Next())
}

func TestTurnStream_NilSource(t *testing.T) {
	errFailed := errors.New("lookup failed")
	prelude := []model.Message{model.NewUserMessage("hi")}
	st := chat.NewTurnStream(prelude, nil, nil, nil, errFailed)

	assert.False(t, st.Next())
	assert.Equal(t, prelude, st.Prelude)
	assert.ErrorIs(t, st.Failure(), errFailed)
	require.NoError(t, st.Close())
}
