package classify

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/zephyrnotes/agent/src/models"
)

const classifierInstruction = `You classify a user prompt for an agent that can look up weather, search the user's notes, and chat.
Return STRICT JSON only, no prose, with exactly these fields:
{"intent":"<one of: list_notes, count_notes, titles, find_note, summarize_note, search_docs, weather, chat, multi>","args":{},"confidence":0.0}
Rules:
- intent "multi" when the prompt needs more than one tool.
- args may carry extracted parameters such as {"query":"...","location":"..."}.
- confidence is a float between 0 and 1.`

const (
	classifierTemperature = 0.0
	classifierMaxTokens   = 200
)

// Classifier turns a prompt into a schema-validated Result using one
// completion call. It never returns an error: every failure collapses to
// SafeDefault so the orchestrator always has a deterministic next step.
type Classifier struct {
	model    models.Model
	modelID  string
	validate *validator.Validate
	log      zerolog.Logger
}

// ClassifierOptions configure a Classifier.
type ClassifierOptions struct {
	Model   models.Model
	ModelID string
	Logger  zerolog.Logger
}

// NewClassifier builds a Classifier around the given completion model.
func NewClassifier(opts ClassifierOptions) *Classifier {
	return &Classifier{
		model:    opts.Model,
		modelID:  opts.ModelID,
		validate: validator.New(),
		log:      opts.Logger,
	}
}

// Classify returns the classification and the token usage of the call.
// Degraded classifications report whatever usage the failed call consumed.
func (c *Classifier) Classify(ctx context.Context, prompt string) (Result, models.Usage) {
	if c == nil || c.model == nil {
		return SafeDefault(), models.Usage{}
	}

	resp, err := c.model.Complete(ctx, models.Request{
		Model:       c.modelID,
		Temperature: classifierTemperature,
		MaxTokens:   classifierMaxTokens,
		JSONOnly:    true,
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: classifierInstruction},
			{Role: models.RoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.log.Debug().Err(err).Msg("classification degraded: transport")
		return SafeDefault(), models.Usage{}
	}

	res, ok := c.decode(resp.Text)
	if !ok {
		c.log.Debug().Str("body", truncate(resp.Text, 200)).Msg("classification degraded: decode")
		return SafeDefault(), resp.Usage
	}
	return res, resp.Usage
}

// rawResult tolerates loosely typed fields before validation. RawMessage
// distinguishes an absent confidence (defaults to 0) from a present but
// non-numeric one (rejects the whole classification).
type rawResult struct {
	Intent     *string         `json:"intent"`
	Args       any             `json:"args"`
	Confidence json.RawMessage `json:"confidence"`
}

// decode parses and validates the model's reply. A non-JSON body, a
// missing or unknown intent, or a non-numeric confidence all collapse to
// the safe default; a non-object args is defaulted to empty in place.
func (c *Classifier) decode(body string) (Result, bool) {
	payload := extractJSON(body)
	if payload == "" {
		return SafeDefault(), false
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return SafeDefault(), false
	}

	if raw.Intent == nil {
		return SafeDefault(), false
	}
	res := Result{Intent: Intent(strings.TrimSpace(*raw.Intent))}
	if !res.Intent.Valid() {
		return SafeDefault(), false
	}

	if args, ok := raw.Args.(map[string]any); ok {
		res.Args = args
	} else {
		res.Args = map[string]any{}
	}

	if len(raw.Confidence) > 0 {
		var conf float64
		if err := json.Unmarshal(raw.Confidence, &conf); err != nil {
			return SafeDefault(), false
		}
		res.Confidence = clamp01(conf)
	}

	if err := c.validate.Struct(res); err != nil {
		return SafeDefault(), false
	}
	return res, true
}

// extractJSON returns the slice between the first '{' and the last '}' so
// prose-wrapped replies still decode.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first < 0 || last <= first {
		return ""
	}
	return s[first : last+1]
}

func clamp01(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
