package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/zephyrnotes/agent/src/memory"
	"github.com/zephyrnotes/agent/src/notes"
	"github.com/zephyrnotes/agent/src/sources"
)

type stubWeather struct {
	reading Reading
	err     error
}

func (s stubWeather) Current(context.Context, string) (Reading, error) {
	return s.reading, s.err
}

func TestWeatherToolCandidateShape(t *testing.T) {
	tool := NewWeather(stubWeather{reading: Reading{Location: "Lisbon", Temp: 72, Condition: "sunny"}})
	out, err := tool.Run(context.Background(), Request{Location: "Lisbon"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Candidates) != 1 {
		t.Fatalf("expected one candidate, got %+v", out.Candidates)
	}
	c := out.Candidates[0]
	if c.Type != sources.TypeWeather {
		t.Fatalf("type = %q", c.Type)
	}
	if c.Key() == "" {
		t.Fatal("weather candidate must carry an identity key")
	}
	if c.Meta["temp"] != "72" || c.Snippet == "" {
		t.Fatalf("reading not carried: %+v", c)
	}
}

func TestWeatherToolError(t *testing.T) {
	tool := NewWeather(stubWeather{err: errors.New("upstream down")})
	if _, err := tool.Run(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestDocsToolPools(t *testing.T) {
	provider := notes.NewMemoryProvider(
		notes.Note{File: "w1.md", Title: "Week one", Content: "learned about merging"},
		notes.Note{File: "w2.md", Title: "Week two", Content: "learned about planning"},
	)
	out, err := NewDocs(provider).Run(context.Background(), Request{Query: "learned", Limit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Exact) == 0 || len(out.General) == 0 {
		t.Fatalf("expected exact and general pools: %+v", out)
	}
	if len(out.Listing) != 2 {
		t.Fatalf("expected full listing pool: %+v", out.Listing)
	}
	for _, c := range out.Exact {
		if c.Type != sources.TypeDoc {
			t.Fatalf("doc pool carries wrong type: %+v", c)
		}
	}
}

func TestDocsToolEmptyQuerySkipsContentSearch(t *testing.T) {
	provider := notes.NewMemoryProvider(notes.Note{File: "a.md", Title: "A"})
	out, err := NewDocs(provider).Run(context.Background(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Exact) != 0 || len(out.General) != 0 {
		t.Fatalf("blank query must not search content: %+v", out)
	}
	if len(out.Listing) != 1 {
		t.Fatalf("listing still expected: %+v", out.Listing)
	}
}

func TestMemoryToolWindow(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInMemoryStore(10)
	_ = store.Append(ctx, "s1", memory.Message{Role: "user", Content: "remember the umbrella"})
	_ = store.Append(ctx, "s1", memory.Message{Role: "assistant", Content: "noted"})

	out, err := NewMemory(store, 5).Run(ctx, Request{SessionID: "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Candidates) != 2 {
		t.Fatalf("expected both turns: %+v", out.Candidates)
	}
	if out.Candidates[0].Type != sources.TypeMemory || out.Candidates[0].Key() == "" {
		t.Fatalf("memory candidate malformed: %+v", out.Candidates[0])
	}

	// No session ID means no memory evidence, not an error.
	out, err = NewMemory(store, 5).Run(ctx, Request{})
	if err != nil || len(out.Candidates) != 0 {
		t.Fatalf("expected empty output, got %+v err %v", out, err)
	}
}
