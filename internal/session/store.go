package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultMaxSessions = 10000
	DefaultTTL         = 30 * time.Minute
)

// StoreConfig configures a Store.
type StoreConfig struct {
	MaxSessions int           // oldest sessions are evicted beyond this
	TTL         time.Duration // idle time before a session is discarded
	Greeting    string
	OnEvict     func(id string)
}

// Store holds live sessions in memory. Sessions are discarded when ended,
// when idle for longer than TTL, or when capacity is exceeded. Nothing is
// persisted.
type Store struct {
	sessions *expirable.LRU[string, *Session]
	greeting string
}

// NewStore creates a Store, applying defaults for zero values.
func NewStore(cfg StoreConfig) *Store {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	var onEvict expirable.EvictCallback[string, *Session]
	if cfg.OnEvict != nil {
		onEvict = func(id string, _ *Session) { cfg.OnEvict(id) }
	}

	return &Store{
		sessions: expirable.NewLRU[string, *Session](cfg.MaxSessions, onEvict, cfg.TTL),
		greeting: cfg.Greeting,
	}
}

// Create starts a new session with a fresh id.
func (st *Store) Create() *Session {
	s := New(uuid.NewString(), st.greeting)
	st.sessions.Add(s.ID(), s)
	return s
}

// Get returns the live session with id and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, error) {
	s, ok := st.sessions.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	st.sessions.Add(id, s)
	return s, nil
}

// Delete ends the session with id. It reports whether the session existed.
func (st *Store) Delete(id string) bool {
	return st.sessions.Remove(id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	return st.sessions.Len()
}
