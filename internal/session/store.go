package session

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store holds the live sessions of the process. Nothing is persisted.
type Store struct {
	opts Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty store whose sessions share opts
func NewStore(opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Store{opts: opts, sessions: make(map[string]*Session)}
}

// Create starts a session with a fresh id
func (st *Store) Create() *Session {
	id := uuid.NewString()
	s := New(id, st.opts)
	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()
	st.opts.Logger.Info("session created", zap.String("session", id))
	return s
}

// Get returns a session by id
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// GetOrCreate returns the session for an external key such as a chat id
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s := New(id, st.opts)
	st.sessions[id] = s
	st.opts.Logger.Info("session created", zap.String("session", id))
	return s
}

// Delete closes and removes a session
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		s.Close()
	}
	return ok
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// ResetDailyMissions resets the daily board of every session
func (st *Store) ResetDailyMissions() int {
	for _, s := range st.all() {
		s.ResetDaily()
	}
	return st.Len()
}

// CloseAll closes every session and empties the store
func (st *Store) CloseAll() {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func (st *Store) all() []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, s)
	}
	return out
}
