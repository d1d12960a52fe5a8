package notes

import (
	"context"
	"testing"
)

func corpus() *MemoryProvider {
	return NewMemoryProvider(
		Note{File: "standup.md", Title: "Standup notes", Content: "Discussed the retrieval pipeline and deployment plan."},
		Note{File: "retro.md", Title: "Sprint retro", Content: "What went well: the merger shipped. What didn't: flaky deploys."},
		Note{File: "ideas.md", Title: "Random ideas", Content: "A weather-aware notes assistant could remind me to bring an umbrella."},
	)
}

func TestMemoryProviderExactMatch(t *testing.T) {
	ctx := context.Background()
	hits, err := corpus().ExactMatch(ctx, "retrieval pipeline", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].File != "standup.md" {
		t.Fatalf("unexpected hits: %+v", hits)
	}
	if hits[0].Snippet == "" || hits[0].Score == nil || *hits[0].Score != 1.0 {
		t.Fatalf("exact hit missing snippet or score: %+v", hits[0])
	}
}

func TestMemoryProviderSearchRanksOverlap(t *testing.T) {
	ctx := context.Background()
	hits, err := corpus().Search(ctx, "weather umbrella", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) == 0 || hits[0].File != "ideas.md" {
		t.Fatalf("expected ideas.md first: %+v", hits)
	}
	for i := 1; i < len(hits); i++ {
		if *hits[i-1].Score < *hits[i].Score {
			t.Fatalf("search results not sorted by score: %+v", hits)
		}
	}
}

func TestMemoryProviderListAndRead(t *testing.T) {
	ctx := context.Background()
	p := corpus()

	listed, err := p.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 2 {
		t.Fatalf("limit not honored: %+v", listed)
	}
	if listed[0].Snippet != "" || listed[0].Score != nil {
		t.Fatalf("listing must be bare: %+v", listed[0])
	}

	content, err := p.Read(ctx, "retro.md")
	if err != nil {
		t.Fatal(err)
	}
	if content == "" {
		t.Fatal("expected note content")
	}
	if _, err := p.Read(ctx, "missing.md"); err == nil {
		t.Fatal("expected error for unknown file")
	}
}
