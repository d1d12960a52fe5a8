package models

import (
	"context"
	"strings"
	"sync"
)

// DummyModel is a deterministic Model for local runs and tests. Responses
// are consumed in order; when Script is set it takes precedence.
type DummyModel struct {
	// Script, when non-nil, decides the reply for each request.
	Script func(req Request) (string, error)
	// Responses are returned in order; the last one repeats once exhausted.
	Responses []string

	mu    sync.Mutex
	idx   int
	calls []Request
}

func NewDummyModel(responses ...string) *DummyModel {
	return &DummyModel{Responses: responses}
}

// Calls returns a copy of every request seen so far.
func (d *DummyModel) Calls() []Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Request, len(d.calls))
	copy(out, d.calls)
	return out
}

func (d *DummyModel) next(req Request) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, req)

	if d.Script != nil {
		return d.Script(req)
	}
	if len(d.Responses) == 0 {
		return "dummy response", nil
	}
	text := d.Responses[d.idx]
	if d.idx < len(d.Responses)-1 {
		d.idx++
	}
	return text, nil
}

func (d *DummyModel) Complete(ctx context.Context, req Request) (Response, error) {
	text, err := d.next(req)
	if err != nil {
		return Response{}, err
	}
	return Response{Text: text, Usage: syntheticUsage(req, text)}, nil
}

// Stream simulates streaming by splitting the response into word chunks.
func (d *DummyModel) Stream(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	text, err := d.next(req)
	ch := make(chan StreamChunk, 16)
	go func() {
		defer close(ch)
		if err != nil {
			ch <- StreamChunk{Done: true, Err: err}
			return
		}
		var sb strings.Builder
		for i, word := range strings.Fields(text) {
			if i > 0 {
				word = " " + word
			}
			sb.WriteString(word)
			ch <- StreamChunk{Delta: word}
		}
		ch <- StreamChunk{Done: true, FullText: sb.String(), Usage: syntheticUsage(req, text)}
	}()
	return ch, nil
}

func syntheticUsage(req Request, text string) Usage {
	prompt := len(strings.Fields(Flatten(req.Messages)))
	completion := len(strings.Fields(text))
	return Usage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
	}
}

var (
	_ Model    = (*DummyModel)(nil)
	_ Streamer = (*DummyModel)(nil)
)
