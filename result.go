package agent

import (
	"time"

	"github.com/zephyrnotes/agent/src/classify"
	"github.com/zephyrnotes/agent/src/models"
	"github.com/zephyrnotes/agent/src/sources"
)

// Request is one orchestrated prompt. Prompt is required; everything else
// has a usable zero value.
type Request struct {
	Prompt      string  `json:"prompt"`
	SessionID   string  `json:"sessionId,omitempty"`
	UseMemory   bool    `json:"useMemory,omitempty"`
	Model       string  `json:"model,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
	Debug       bool    `json:"debug,omitempty"`
}

// Step is one timed entry in a run's execution timeline. The orchestrator
// is the sole writer; steps are append-only and never mutated after the
// fact.
type Step struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"` // "state" or "tool"
	StartedAt  time.Time         `json:"startedAt"`
	FinishedAt time.Time         `json:"finishedAt"`
	DurationMs int64             `json:"durationMs"`
	Err        string            `json:"err,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
}

// DebugInfo carries internals a caller only sees when Request.Debug is set.
// User-visible answers never contain any of this.
type DebugInfo struct {
	Plan       classify.ToolPlan `json:"plan"`
	Confidence float64           `json:"confidence"`
	Notes      []string          `json:"notes,omitempty"`
}

// RunResult is the complete outcome of a run. It is never partial: a
// degraded run still carries a safe answer, whatever sources survived, and
// the usage consumed getting there.
type RunResult struct {
	RunID      string              `json:"runId"`
	Intent     classify.Intent     `json:"intent"`
	Answer     string              `json:"answer"`
	Sources    []sources.Candidate `json:"sources"`
	Usage      models.Usage        `json:"usage"`
	CostUSD    float64             `json:"costUsd"`
	DurationMs int64               `json:"durationMs"`
	Steps      []Step              `json:"steps,omitempty"`
	Debug      *DebugInfo          `json:"debug,omitempty"`
}

const (
	stepTypeState = "state"
	stepTypeTool  = "tool"
)

func newStep(name, typ string, started time.Time, err error, meta map[string]string) Step {
	finished := time.Now()
	s := Step{
		Name:       name,
		Type:       typ,
		StartedAt:  started,
		FinishedAt: finished,
		DurationMs: finished.Sub(started).Milliseconds(),
		Meta:       meta,
	}
	if err != nil {
		s.Err = err.Error()
	}
	return s
}
