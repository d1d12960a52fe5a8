package tools

import (
	"context"

	"github.com/zephyrnotes/agent/src/sources"
)

// Request carries everything an executor may need for one invocation.
type Request struct {
	SessionID string
	// Prompt is the raw user prompt; Query/Location are arguments the
	// classifier extracted, falling back to the prompt when absent.
	Prompt   string
	Query    string
	Location string
	Limit    int
}

// Output groups the evidence an executor produced. Document executors fill
// the pool fields consumed by the merger; everything else uses Candidates.
type Output struct {
	Candidates []sources.Candidate

	Exact   []sources.Candidate
	General []sources.Candidate
	Listing []sources.Candidate
}

// Tool is a pluggable capability provider. A failing tool returns an error
// and contributes nothing; it never aborts the run.
type Tool interface {
	Name() string
	Run(ctx context.Context, req Request) (Output, error)
}
