package tools

import (
	"context"
	"fmt"

	"github.com/zephyrnotes/agent/src/memory"
	"github.com/zephyrnotes/agent/src/sources"
)

// Memory surfaces a bounded window of session history as evidence.
type Memory struct {
	Store  memory.Store
	Window int
}

func NewMemory(store memory.Store, window int) *Memory {
	if window <= 0 {
		window = memory.DefaultWindow
	}
	return &Memory{Store: store, Window: window}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Run(ctx context.Context, req Request) (Output, error) {
	if req.SessionID == "" {
		return Output{}, nil
	}
	msgs, err := m.Store.Get(ctx, req.SessionID, m.Window)
	if err != nil {
		return Output{}, fmt.Errorf("session memory read: %w", err)
	}

	const snippetLen = 160
	candidates := make([]sources.Candidate, 0, len(msgs))
	for i, msg := range msgs {
		snippet := msg.Content
		if len(snippet) > snippetLen {
			snippet = snippet[:snippetLen]
		}
		candidates = append(candidates, sources.Candidate{
			Type:    sources.TypeMemory,
			File:    fmt.Sprintf("memory:%s:%d", req.SessionID, i),
			Title:   msg.Role,
			Snippet: snippet,
		})
	}
	return Output{Candidates: candidates}, nil
}

var _ Tool = (*Memory)(nil)
