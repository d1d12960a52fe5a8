package notes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Note is a document held by the in-memory provider.
type Note struct {
	File    string
	Title   string
	Content string
}

// MemoryProvider serves a fixed corpus from process memory. It backs local
// runs and tests; scoring is naive token overlap.
type MemoryProvider struct {
	mu    sync.RWMutex
	notes []Note
}

func NewMemoryProvider(notes ...Note) *MemoryProvider {
	return &MemoryProvider{notes: notes}
}

// Add appends a note to the corpus.
func (p *MemoryProvider) Add(n Note) {
	p.mu.Lock()
	p.notes = append(p.notes, n)
	p.mu.Unlock()
}

func (p *MemoryProvider) ExactMatch(_ context.Context, query string, limit int) ([]Doc, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []Doc
	for _, n := range p.notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, Doc{
				File:    n.File,
				Title:   n.Title,
				Snippet: snippetAround(n.Content, q),
				Score:   scoreOf(1.0),
			})
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (p *MemoryProvider) Search(_ context.Context, query string, limit int) ([]Doc, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []Doc
	for _, n := range p.notes {
		body := strings.ToLower(n.Title + " " + n.Content)
		matched := 0
		for _, term := range terms {
			if strings.Contains(body, term) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		score := float64(matched) / float64(len(terms))
		out = append(out, Doc{
			File:    n.File,
			Title:   n.Title,
			Snippet: snippetAround(n.Content, terms[0]),
			Score:   scoreOf(score),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return *out[i].Score > *out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (p *MemoryProvider) List(_ context.Context, limit int) ([]Doc, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Doc, 0, limit)
	for _, n := range p.notes {
		out = append(out, Doc{File: n.File, Title: n.Title})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (p *MemoryProvider) Read(_ context.Context, file string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, n := range p.notes {
		if n.File == file {
			return n.Content, nil
		}
	}
	return "", fmt.Errorf("note %s not found", file)
}

// snippetAround extracts a short window of content around the first match;
// when the term is absent it falls back to the document head.
func snippetAround(content, term string) string {
	const window = 120
	lower := strings.ToLower(content)
	idx := strings.Index(lower, term)
	if idx < 0 {
		idx = 0
	}
	start := idx - window/2
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(content) {
		end = len(content)
	}
	snippet := strings.TrimSpace(content[start:end])
	if snippet == "" {
		return ""
	}
	return snippet
}

func scoreOf(v float64) *float64 { return &v }

var _ Provider = (*MemoryProvider)(nil)
