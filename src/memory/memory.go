package memory

import (
	"context"
	"time"
)

// Message is one conversation turn in a session's history.
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Store is the session memory capability injected into the orchestrator.
// Get returns the most recent messages in chronological order, bounded by
// limit (limit <= 0 means the store's default window). Implementations must
// serialize mutations per session: concurrent appends for the same session
// ID may not interleave or lose history. Different sessions are independent.
type Store interface {
	Get(ctx context.Context, sessionID string, limit int) ([]Message, error)
	Append(ctx context.Context, sessionID string, msg Message) error
	Reset(ctx context.Context, sessionID string) error
}

// DefaultWindow bounds how much history a read returns when the caller
// does not say.
const DefaultWindow = 20
