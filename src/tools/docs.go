package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/zephyrnotes/agent/src/notes"
	"github.com/zephyrnotes/agent/src/sources"
)

// Docs adapts a notes.Provider into a Tool producing the candidate pools
// the merger consumes: exact hits, general hits, and a listing fallback.
type Docs struct {
	Provider notes.Provider
}

func NewDocs(p notes.Provider) *Docs { return &Docs{Provider: p} }

func (d *Docs) Name() string { return "docs" }

func (d *Docs) Run(ctx context.Context, req Request) (Output, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		query = strings.TrimSpace(req.Prompt)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = notes.DefaultLimit
	}

	var out Output

	if query != "" {
		exact, err := d.Provider.ExactMatch(ctx, query, limit)
		if err != nil {
			return Output{}, fmt.Errorf("docs exact match: %w", err)
		}
		out.Exact = toCandidates(exact)

		general, err := d.Provider.Search(ctx, query, limit)
		if err != nil {
			return Output{}, fmt.Errorf("docs search: %w", err)
		}
		out.General = toCandidates(general)
	}

	// Listing is the fallback evidence when no content hit survives; the
	// merger drops it whenever something richer exists.
	listing, err := d.Provider.List(ctx, limit)
	if err != nil {
		return Output{}, fmt.Errorf("docs listing: %w", err)
	}
	out.Listing = toCandidates(listing)

	return out, nil
}

func toCandidates(docs []notes.Doc) []sources.Candidate {
	out := make([]sources.Candidate, 0, len(docs))
	for _, d := range docs {
		out = append(out, sources.Candidate{
			Type:    sources.TypeDoc,
			File:    d.File,
			Title:   d.Title,
			Snippet: d.Snippet,
			Score:   d.Score,
		})
	}
	return out
}

var _ Tool = (*Docs)(nil)
