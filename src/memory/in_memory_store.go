package memory

import (
	"context"
	"sync"
)

// InMemoryStore keeps bounded per-session histories in process memory.
// A per-session lock serializes mutations for one session while letting
// different sessions proceed in parallel.
type InMemoryStore struct {
	maxMessages int

	mu       sync.Mutex
	sessions map[string]*sessionHistory
}

type sessionHistory struct {
	mu       sync.Mutex
	messages []Message
}

// NewInMemoryStore creates a store keeping at most maxMessages per session
// (<= 0 means DefaultWindow).
func NewInMemoryStore(maxMessages int) *InMemoryStore {
	if maxMessages <= 0 {
		maxMessages = DefaultWindow
	}
	return &InMemoryStore{
		maxMessages: maxMessages,
		sessions:    make(map[string]*sessionHistory),
	}
}

func (s *InMemoryStore) session(id string) *sessionHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.sessions[id]
	if !ok {
		h = &sessionHistory{}
		s.sessions[id] = h
	}
	return h
}

func (s *InMemoryStore) Get(_ context.Context, sessionID string, limit int) ([]Message, error) {
	if limit <= 0 || limit > s.maxMessages {
		limit = s.maxMessages
	}
	h := s.session(sessionID)
	h.mu.Lock()
	defer h.mu.Unlock()

	msgs := h.messages
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *InMemoryStore) Append(_ context.Context, sessionID string, msg Message) error {
	h := s.session(sessionID)
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = append(h.messages, msg)
	if len(h.messages) > s.maxMessages {
		h.messages = h.messages[len(h.messages)-s.maxMessages:]
	}
	return nil
}

func (s *InMemoryStore) Reset(_ context.Context, sessionID string) error {
	h := s.session(sessionID)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
	return nil
}

var _ Store = (*InMemoryStore)(nil)
