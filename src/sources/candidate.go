package sources

import "math"

// Type classifies where a piece of evidence came from.
type Type string

const (
	TypeWeather Type = "weather"
	TypeDoc     Type = "doc"
	TypeMemory  Type = "memory"
)

// Candidate is a unit of evidence used to ground the final answer.
// Tool executors produce candidates; the merger may discard them or prefer
// another candidate's snippet/score, but it never mutates the executor's copy.
type Candidate struct {
	Type    Type              `json:"type"`
	File    string            `json:"file,omitempty"`
	URL     string            `json:"url,omitempty"`
	Title   string            `json:"title,omitempty"`
	Snippet string            `json:"snippet,omitempty"`
	Score   *float64          `json:"score,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// Key returns the identity used for deduplication: the file name, falling
// back to the URL. An empty key marks the candidate as malformed.
func (c Candidate) Key() string {
	if c.File != "" {
		return c.File
	}
	return c.URL
}

// ranked reports whether the candidate carries a usable score. Non-finite
// scores are treated as unranked and sort last.
func (c Candidate) ranked() bool {
	return c.Score != nil && !math.IsNaN(*c.Score) && !math.IsInf(*c.Score, 0)
}

// scoreOrMin returns the candidate's score, or -Inf when unranked so that
// unranked candidates lose every score comparison.
func (c Candidate) scoreOrMin() float64 {
	if c.ranked() {
		return *c.Score
	}
	return math.Inf(-1)
}

// Score pointer helper for literals in call sites and tests.
func ScoreOf(v float64) *float64 { return &v }
