package session

import (
	"sync"

	"github.com/prismaticcrm/teacher-assistant/domain"
)

// MemoryStore is an in-memory session store. Each key owns its own
// lock, so turns for one conversation are serialized while distinct
// conversations never block each other. History is unbounded for the
// lifetime of the process.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	mu      sync.Mutex
	history []domain.ChatMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*entry)}
}

// Update implements domain.SessionStore. fn sees a copy of the
// committed history and its return value replaces it; on error the
// stored history is untouched.
func (s *MemoryStore) Update(key string, fn func(history []domain.ChatMessage) ([]domain.ChatMessage, error)) error {
	e := s.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := fn(copyHistory(e.history))
	if err != nil {
		return err
	}
	e.history = next
	return nil
}

// History implements domain.SessionStore. A key whose first turn never
// committed reports no session.
func (s *MemoryStore) History(key string) ([]domain.ChatMessage, bool) {
	s.mu.Lock()
	e, ok := s.sessions[key]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.history) == 0 {
		return nil, false
	}
	return copyHistory(e.history), true
}

// Len reports the number of seeded sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.sessions {
		e.mu.Lock()
		if len(e.history) > 0 {
			n++
		}
		e.mu.Unlock()
	}
	return n
}

// entry returns the lock-holding record for key, creating it if absent.
// Empty records left behind by failed first turns are kept as lock
// anchors; they do not count as sessions.
func (s *MemoryStore) entry(key string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[key]
	if !ok {
		e = &entry{}
		s.sessions[key] = e
	}
	return e
}

func copyHistory(history []domain.ChatMessage) []domain.ChatMessage {
	if len(history) == 0 {
		return nil
	}
	out := make([]domain.ChatMessage, len(history))
	copy(out, history)
	return out
}
