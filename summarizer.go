package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zephyrnotes/agent/src/models"
	"github.com/zephyrnotes/agent/src/notes"
)

const summarizeInstruction = `Summarize the note below in two or three sentences and propose up to five short topic tags.
Respond with strict JSON only: {"summary": "...", "tags": ["...", "..."]}`

// NoteResult is the outcome of summarizing one file. Err is set when the
// file failed; the run still continues with the next file.
type NoteResult struct {
	File       string       `json:"file"`
	Summary    string       `json:"summary"`
	Tags       []string     `json:"tags,omitempty"`
	Usage      models.Usage `json:"usage"`
	Evaluation *float64     `json:"evaluation,omitempty"`
	Model      string       `json:"model"`
	Err        string       `json:"err,omitempty"`
}

// SummarizeOptions configure SummarizeNotes. Model and Notes are required.
type SummarizeOptions struct {
	Model   models.Model
	ModelID string
	Notes   notes.Provider

	Temperature float32
	MaxTokens   int
	// OnResult, when set, receives each NoteResult as soon as its file
	// settles, before the next file starts.
	OnResult func(NoteResult)
	Logger   zerolog.Logger
}

// SummarizeNotes summarizes each file in order, one model stream at a time.
// A failure on one file is recorded in its NoteResult and never prevents
// the next file from being attempted. The returned slice has one entry per
// input file, in input order.
func SummarizeNotes(ctx context.Context, files []string, opts SummarizeOptions) []NoteResult {
	results := make([]NoteResult, 0, len(files))
	for _, file := range files {
		res := summarizeOne(ctx, file, opts)
		if opts.OnResult != nil {
			opts.OnResult(res)
		}
		results = append(results, res)
	}
	return results
}

func summarizeOne(ctx context.Context, file string, opts SummarizeOptions) NoteResult {
	res := NoteResult{File: file, Model: opts.ModelID}

	if opts.Model == nil || opts.Notes == nil {
		res.Err = "summarizer requires a model and a notes provider"
		return res
	}

	content, err := opts.Notes.Read(ctx, file)
	if err != nil {
		opts.Logger.Warn().Err(err).Str("file", file).Msg("note read failed")
		res.Err = fmt.Sprintf("read: %v", err)
		return res
	}

	req := models.Request{
		Model:       opts.ModelID,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		JSONOnly:    true,
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: summarizeInstruction},
			{Role: models.RoleUser, Content: content},
		},
	}

	text, usage, err := completeStreaming(ctx, opts.Model, req)
	res.Usage = usage
	if err != nil {
		opts.Logger.Warn().Err(err).Str("file", file).Msg("note summarize failed")
		res.Err = fmt.Sprintf("summarize: %v", err)
		return res
	}

	res.Summary, res.Tags = parseSummary(text)
	score := evaluateSummary(content, res.Summary, res.Tags)
	res.Evaluation = &score
	return res
}

// completeStreaming prefers the provider's native incremental delivery and
// falls back to a single completion call.
func completeStreaming(ctx context.Context, model models.Model, req models.Request) (string, models.Usage, error) {
	streamer, ok := model.(models.Streamer)
	if !ok {
		resp, err := model.Complete(ctx, req)
		return resp.Text, resp.Usage, err
	}

	ch, err := streamer.Stream(ctx, req)
	if err != nil {
		return "", models.Usage{}, err
	}

	var sb strings.Builder
	var usage models.Usage
	for chunk := range ch {
		if chunk.Err != nil {
			return "", usage, chunk.Err
		}
		sb.WriteString(chunk.Delta)
		if chunk.Done {
			usage = chunk.Usage
			if chunk.FullText != "" {
				return chunk.FullText, usage, nil
			}
		}
	}
	return sb.String(), usage, nil
}

type summaryPayload struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// parseSummary decodes the model's JSON reply, tolerating prose wrapping.
// Anything undecodable keeps the raw text as the summary with no tags.
func parseSummary(text string) (string, []string) {
	trimmed := strings.TrimSpace(text)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		var payload summaryPayload
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &payload); err == nil && payload.Summary != "" {
			return payload.Summary, payload.Tags
		}
	}
	return trimmed, nil
}

// evaluateSummary scores a summary in [0,1] with a deterministic quality
// heuristic: it should be non-trivial, shorter than the source, and carry
// at least one tag.
func evaluateSummary(content, summary string, tags []string) float64 {
	score := 0.0
	words := len(strings.Fields(summary))
	if words >= 5 {
		score += 0.4
	}
	if words > 0 && len(summary) < len(content) {
		score += 0.4
	}
	if len(tags) > 0 {
		score += 0.2
	}
	return score
}
