package agent

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/zephyrnotes/agent/src/models"
	"github.com/zephyrnotes/agent/src/notes"
)

func summarizerCorpus() *notes.MemoryProvider {
	return notes.NewMemoryProvider(
		notes.Note{File: "a.md", Title: "Alpha", Content: "The alpha note covers wind patterns along the coast and how they shift with the seasons."},
		notes.Note{File: "b.md", Title: "Beta", Content: "The beta note is a grocery list: bread, olive oil, tomatoes."},
	)
}

func TestSummarizeNotesStreamsEachFile(t *testing.T) {
	model := &models.DummyModel{Script: func(models.Request) (string, error) {
		return `{"summary": "Coastal wind patterns shift seasonally.", "tags": ["wind", "seasons"]}`, nil
	}}

	var delivered []string
	results := SummarizeNotes(context.Background(), []string{"a.md", "b.md"}, SummarizeOptions{
		Model:   model,
		ModelID: "test-model",
		Notes:   summarizerCorpus(),
		OnResult: func(r NoteResult) {
			delivered = append(delivered, r.File)
		},
	})

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for _, r := range results {
		if r.Err != "" {
			t.Fatalf("unexpected error for %s: %s", r.File, r.Err)
		}
		if r.Summary != "Coastal wind patterns shift seasonally." {
			t.Fatalf("summary = %q", r.Summary)
		}
		if len(r.Tags) != 2 {
			t.Fatalf("tags = %v", r.Tags)
		}
		if r.Usage.TotalTokens == 0 {
			t.Fatalf("usage not accounted for %s", r.File)
		}
		if r.Evaluation == nil || *r.Evaluation <= 0 {
			t.Fatalf("evaluation missing for %s", r.File)
		}
	}
	if len(delivered) != 2 || delivered[0] != "a.md" || delivered[1] != "b.md" {
		t.Fatalf("delivery order = %v, want input order", delivered)
	}
}

func TestSummarizeNotesFailureIsolated(t *testing.T) {
	calls := 0
	model := &models.DummyModel{Script: func(models.Request) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("stream reset")
		}
		return `{"summary": "A short grocery list.", "tags": ["errands"]}`, nil
	}}

	results := SummarizeNotes(context.Background(), []string{"a.md", "b.md"}, SummarizeOptions{
		Model:   model,
		ModelID: "test-model",
		Notes:   summarizerCorpus(),
	})

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Err == "" || !strings.Contains(results[0].Err, "stream reset") {
		t.Fatalf("first file should carry the stream error, got %q", results[0].Err)
	}
	if results[1].Err != "" {
		t.Fatalf("second file should still be attempted, got error %q", results[1].Err)
	}
	if results[1].Summary != "A short grocery list." {
		t.Fatalf("second summary = %q", results[1].Summary)
	}
}

func TestSummarizeNotesMissingFile(t *testing.T) {
	model := models.NewDummyModel(`{"summary": "ok", "tags": []}`)
	results := SummarizeNotes(context.Background(), []string{"missing.md"}, SummarizeOptions{
		Model:   model,
		ModelID: "test-model",
		Notes:   summarizerCorpus(),
	})

	if len(results) != 1 || results[0].Err == "" {
		t.Fatalf("expected a read error, got %+v", results)
	}
	if len(model.Calls()) != 0 {
		t.Fatal("no model call should happen for an unreadable file")
	}
}

func TestParseSummaryFallsBackToPlainText(t *testing.T) {
	summary, tags := parseSummary("just a plain sentence, no json here")
	if summary != "just a plain sentence, no json here" || tags != nil {
		t.Fatalf("got %q / %v", summary, tags)
	}

	summary, tags = parseSummary("Sure! {\"summary\": \"wrapped\", \"tags\": [\"x\"]} hope that helps")
	if summary != "wrapped" || len(tags) != 1 || tags[0] != "x" {
		t.Fatalf("prose-wrapped JSON not extracted: %q / %v", summary, tags)
	}
}

func TestEvaluateSummaryHeuristic(t *testing.T) {
	content := "a long enough source document with plenty of words to compare against for the heuristic"
	full := evaluateSummary(content, "a five word compact summary", []string{"tag"})
	if math.Abs(full-1.0) > 1e-9 {
		t.Fatalf("full score = %v, want 1.0", full)
	}
	if got := evaluateSummary(content, "", nil); got != 0 {
		t.Fatalf("empty summary score = %v, want 0", got)
	}
}
