package session

import (
	"errors"
	"sync"
	"testing"

	"movie-bot/internal/model"
)

func TestNew_SeedsGreeting(t *testing.T) {
	s := New("abc", "")
	msgs := s.All()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 seed message, got %d", len(msgs))
	}
	if msgs[0].Role != model.RoleAssistant || msgs[0].Content != DefaultGreeting {
		t.Errorf("unexpected seed message: %+v", msgs[0])
	}
	if s.ID() != "abc" {
		t.Errorf("unexpected id %q", s.ID())
	}
}

func TestAppend_KeepsOrder(t *testing.T) {
	s := New("abc", "hi")
	s.Append(model.NewUserMessage("one"))
	s.Append(model.NewAssistantMessage("two"))
	s.Append(model.NewAssistantMessage("three"))

	want := []string{"hi", "one", "two", "three"}
	got := s.All()
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(got))
	}
	for i, m := range got {
		if m.Content != want[i] {
			t.Errorf("message %d = %q, want %q", i, m.Content, want[i])
		}
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := New("abc", "hi")
	msgs := s.All()
	msgs[0].Content = "mutated"
	if s.All()[0].Content != "hi" {
		t.Error("All must not expose internal storage")
	}
}

func TestTurnState(t *testing.T) {
	s := New("abc", "")
	if s.State() != StateIdle {
		t.Fatalf("new session should be idle, got %s", s.State())
	}

	s.MarkAwaitingInput()
	if s.State() != StateAwaitingInput {
		t.Fatalf("expected awaiting_input, got %s", s.State())
	}

	if err := s.BeginTurn(); err != nil {
		t.Fatalf("BeginTurn: %v", err)
	}
	if err := s.BeginTurn(); !errors.Is(err, ErrTurnInProgress) {
		t.Fatalf("second BeginTurn should fail with ErrTurnInProgress, got %v", err)
	}

	s.MarkAwaitingInput()
	if s.State() != StateProcessing {
		t.Fatalf("render during a turn must not leave processing, got %s", s.State())
	}

	s.EndTurn()
	if s.State() != StateIdle {
		t.Fatalf("expected idle after EndTurn, got %s", s.State())
	}
}

func TestAppend_Concurrent(t *testing.T) {
	s := New("abc", "")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append(model.NewUserMessage("x"))
			_ = s.All()
		}()
	}
	wg.Wait()
	if s.Len() != 51 {
		t.Errorf("expected 51 messages, got %d", s.Len())
	}
}
