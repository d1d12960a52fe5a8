package notes

import "context"

// Doc is one document hit returned by a provider. Score is optional;
// listing queries typically return file/title only.
type Doc struct {
	File    string   `json:"file"`
	Title   string   `json:"title,omitempty"`
	Snippet string   `json:"snippet,omitempty"`
	Score   *float64 `json:"score,omitempty"`
}

// Provider is the document/notes capability injected into the orchestrator.
type Provider interface {
	// ExactMatch returns documents whose title or body contains the query
	// verbatim.
	ExactMatch(ctx context.Context, query string, limit int) ([]Doc, error)
	// Search returns semantically or lexically related documents.
	Search(ctx context.Context, query string, limit int) ([]Doc, error)
	// List enumerates available documents without content.
	List(ctx context.Context, limit int) ([]Doc, error)
	// Read returns a document's full content for summarization.
	Read(ctx context.Context, file string) (string, error)
}

// DefaultLimit bounds provider queries when the caller does not say.
const DefaultLimit = 10
