package usecase

import (
	"context"

	"movie-bot/internal/filmography"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// mockRepo implements repository.MetadataRepository and records calls.
type mockRepo struct {
	people    []filmography.Person
	searchErr error
	titles    []string
	creditErr error

	searchCalls []string
	creditCalls []int64
}

func (m *mockRepo) SearchPeople(ctx context.Context, name string) ([]filmography.Person, error) {
	m.searchCalls = append(m.searchCalls, name)
	return m.people, m.searchErr
}

func (m *mockRepo) ListMovieTitles(ctx context.Context, personID int64) ([]string, error) {
	m.creditCalls = append(m.creditCalls, personID)
	return m.titles, m.creditErr
}
