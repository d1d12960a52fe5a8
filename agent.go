// Package agent orchestrates a single prompt through classification, tool
// execution, evidence merging, and a final composition call, producing a
// structured result with usage, cost, and step telemetry.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zephyrnotes/agent/src/classify"
	"github.com/zephyrnotes/agent/src/concurrent"
	"github.com/zephyrnotes/agent/src/memory"
	"github.com/zephyrnotes/agent/src/models"
	"github.com/zephyrnotes/agent/src/notes"
	"github.com/zephyrnotes/agent/src/sources"
	"github.com/zephyrnotes/agent/src/tools"
)

const composeInstruction = "You are Zephyr, a helpful assistant. Answer the user's question using the sources below when they are relevant. Be concise and factual; do not invent sources."

// safeAnswer is what the user sees when composition itself fails. Detail
// goes to Debug, never to the answer.
const safeAnswer = "I wasn't able to put a full answer together this time. Please try again."

const emptyPromptAnswer = "I need a prompt to work with — ask me about the weather or your notes."

const maxToolWorkers = 3

// Orchestrator drives the run state machine. Construct with New; the zero
// value is not usable.
type Orchestrator struct {
	model        models.Model
	classifier   *classify.Classifier
	weather      *tools.Weather
	docs         *tools.Docs
	memoryTool   *tools.Memory
	store        memory.Store
	mergeCap     int
	defaultModel string
	temperature  float32
	maxTokens    int
	log          zerolog.Logger
}

// Options configure a new Orchestrator. Model is required; every capability
// left nil simply never contributes to a run.
type Options struct {
	Model      models.Model
	Classifier *classify.Classifier
	Weather    tools.WeatherProvider
	Notes      notes.Provider
	Memory     memory.Store

	MergeCap     int
	DefaultModel string
	Temperature  float32
	MaxTokens    int
	Logger       zerolog.Logger
}

// New creates an Orchestrator with the provided options.
func New(opts Options) (*Orchestrator, error) {
	if opts.Model == nil {
		return nil, errors.New("orchestrator requires a completion model")
	}

	mergeCap := opts.MergeCap
	if mergeCap <= 0 {
		mergeCap = sources.DefaultMergeCap
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	o := &Orchestrator{
		model:        opts.Model,
		classifier:   opts.Classifier,
		store:        opts.Memory,
		mergeCap:     mergeCap,
		defaultModel: opts.DefaultModel,
		temperature:  opts.Temperature,
		maxTokens:    maxTokens,
		log:          opts.Logger,
	}
	if opts.Weather != nil {
		o.weather = tools.NewWeather(opts.Weather)
	}
	if opts.Notes != nil {
		o.docs = tools.NewDocs(opts.Notes)
	}
	if opts.Memory != nil {
		o.memoryTool = tools.NewMemory(opts.Memory, memory.DefaultWindow)
	}
	return o, nil
}

// Run executes one prompt end to end. It never panics past this boundary
// and never returns an error: every failure degrades into a well-formed
// result with a safe answer and the failure recorded in steps and debug.
func (o *Orchestrator) Run(ctx context.Context, req Request) (res RunResult) {
	started := time.Now()
	modelID := o.resolveModel(req)

	res = RunResult{
		RunID:  uuid.NewString(),
		Intent: classify.IntentChat,
	}
	if req.Debug {
		res.Debug = &DebugInfo{}
	}
	defer func() {
		if r := recover(); r != nil {
			o.log.Error().Interface("panic", r).Str("run", res.RunID).Msg("run recovered")
			res.Answer = safeAnswer
			o.note(&res, fmt.Sprintf("recovered panic: %v", r))
		}
		if res.Answer == "" {
			res.Answer = safeAnswer
		}
		res.CostUSD = models.EstimateCost(modelID, res.Usage)
		res.DurationMs = time.Since(started).Milliseconds()
	}()

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		res.Steps = append(res.Steps, newStep("validate", stepTypeState, started, errors.New("empty prompt"), nil))
		res.Answer = emptyPromptAnswer
		return res
	}

	// CLASSIFYING: the keyword heuristic always runs; the classifier may
	// block on I/O and degrades silently to the safe default.
	heuristic := classify.HeuristicPlan(prompt)
	classifyStart := time.Now()
	verdict, usage := o.classifier.Classify(ctx, prompt)
	res.Usage.Add(usage)
	res.Intent = verdict.Intent
	res.Steps = append(res.Steps, newStep("classify", stepTypeState, classifyStart, nil, map[string]string{
		"intent":     string(verdict.Intent),
		"confidence": strconv.FormatFloat(verdict.Confidence, 'f', 2, 64),
	}))

	// PLANNING.
	planStart := time.Now()
	plan := classify.Combine(heuristic, verdict)
	if req.UseMemory && req.SessionID != "" {
		plan.WantsMemory = true
	}
	res.Steps = append(res.Steps, newStep("plan", stepTypeState, planStart, nil, map[string]string{
		"weather": strconv.FormatBool(plan.WantsWeather),
		"docs":    strconv.FormatBool(plan.WantsDocs),
		"memory":  strconv.FormatBool(plan.WantsMemory),
	}))
	if res.Debug != nil {
		res.Debug.Plan = plan
		res.Debug.Confidence = verdict.Confidence
	}

	// EXECUTING_TOOLS: independent executors fan out; a failing tool
	// contributes nothing and never aborts the run.
	toolReq := tools.Request{
		SessionID: req.SessionID,
		Prompt:    prompt,
		Query:     argString(verdict.Args, "query"),
		Location:  argString(verdict.Args, "location"),
		Limit:     o.mergeCap,
	}
	outputs := o.executeTools(ctx, plan, toolReq, &res)

	// MERGING: document pools go through the merger; weather leads and
	// memory trails so evidence reads most-direct first.
	mergeStart := time.Now()
	var docsOut tools.Output
	if out, ok := outputs["docs"]; ok {
		docsOut = out
	}
	merged := sources.MergeDocs(docsOut.Exact, docsOut.General, docsOut.Listing, docsOut.Candidates, o.mergeCap)

	var assembled []sources.Candidate
	assembled = append(assembled, outputs["weather"].Candidates...)
	assembled = append(assembled, merged...)
	assembled = append(assembled, outputs["memory"].Candidates...)
	res.Sources = assembled
	res.Steps = append(res.Steps, newStep("merge", stepTypeState, mergeStart, nil, map[string]string{
		"sources": strconv.Itoa(len(assembled)),
	}))

	// COMPOSING.
	composeStart := time.Now()
	answer, composeUsage, err := o.compose(ctx, req, modelID, prompt, assembled)
	res.Usage.Add(composeUsage)
	res.Steps = append(res.Steps, newStep("compose", stepTypeState, composeStart, err, map[string]string{
		"model": modelID,
	}))
	if err != nil {
		o.log.Warn().Err(err).Str("run", res.RunID).Msg("composition failed")
		o.note(&res, fmt.Sprintf("composition: %v", err))
		res.Answer = safeAnswer
		return res
	}
	res.Answer = answer

	if req.UseMemory && req.SessionID != "" && o.store != nil {
		o.remember(ctx, req.SessionID, prompt, answer, &res)
	}
	return res
}

// executeTools fans the planned tools out through a bounded join and
// records one step per tool. Each closure writes only its own slot, so the
// outputs map needs no locking until the join settles.
func (o *Orchestrator) executeTools(ctx context.Context, plan classify.ToolPlan, req tools.Request, res *RunResult) map[string]tools.Output {
	type slot struct {
		tool    tools.Tool
		out     tools.Output
		started time.Time
	}

	var slots []*slot
	if plan.WantsWeather && o.weather != nil {
		slots = append(slots, &slot{tool: o.weather})
	}
	if plan.WantsDocs && o.docs != nil {
		slots = append(slots, &slot{tool: o.docs})
	}
	if plan.WantsMemory && o.memoryTool != nil {
		slots = append(slots, &slot{tool: o.memoryTool})
	}

	tasks := make([]concurrent.Task, len(slots))
	for i, s := range slots {
		s := s
		tasks[i] = concurrent.Task{
			Name: s.tool.Name(),
			Run: func(ctx context.Context) error {
				s.started = time.Now()
				out, err := s.tool.Run(ctx, req)
				if err != nil {
					return err
				}
				s.out = out
				return nil
			},
		}
	}
	errs := concurrent.Join(ctx, tasks, maxToolWorkers)

	outputs := make(map[string]tools.Output, len(slots))
	for i, s := range slots {
		name := s.tool.Name()
		if s.started.IsZero() {
			s.started = time.Now()
		}
		res.Steps = append(res.Steps, newStep(name, stepTypeTool, s.started, errs[i], nil))
		if errs[i] != nil {
			o.log.Warn().Err(errs[i]).Str("tool", name).Msg("tool failed")
			o.note(res, fmt.Sprintf("tool %s: %v", name, errs[i]))
			continue
		}
		outputs[name] = s.out
	}
	return outputs
}

func (o *Orchestrator) compose(ctx context.Context, req Request, modelID, prompt string, evidence []sources.Candidate) (string, models.Usage, error) {
	messages := []models.Message{{Role: models.RoleSystem, Content: composeInstruction}}
	if block := renderSources(evidence); block != "" {
		messages = append(messages, models.Message{Role: models.RoleSystem, Content: block})
	}
	if req.UseMemory && req.SessionID != "" && o.store != nil {
		history, err := o.store.Get(ctx, req.SessionID, memory.DefaultWindow)
		if err != nil {
			o.log.Warn().Err(err).Msg("session history unavailable")
		}
		for _, m := range history {
			role := models.RoleUser
			if m.Role == string(models.RoleAssistant) {
				role = models.RoleAssistant
			}
			messages = append(messages, models.Message{Role: role, Content: m.Content})
		}
	}
	messages = append(messages, models.Message{Role: models.RoleUser, Content: prompt})

	resp, err := o.model.Complete(ctx, models.Request{
		Model:       modelID,
		Temperature: o.resolveTemperature(req),
		MaxTokens:   o.resolveMaxTokens(req),
		Messages:    messages,
	})
	if err != nil {
		return "", resp.Usage, fmt.Errorf("compose: %w", err)
	}
	return strings.TrimSpace(resp.Text), resp.Usage, nil
}

// remember appends the exchange to session memory. Write failures are a
// step, not a degraded answer: the user already has their response.
func (o *Orchestrator) remember(ctx context.Context, sessionID, prompt, answer string, res *RunResult) {
	start := time.Now()
	now := time.Now()
	err := o.store.Append(ctx, sessionID, memory.Message{Role: string(models.RoleUser), Content: prompt, At: now})
	if err == nil {
		err = o.store.Append(ctx, sessionID, memory.Message{Role: string(models.RoleAssistant), Content: answer, At: now})
	}
	if err != nil {
		o.log.Warn().Err(err).Str("session", sessionID).Msg("memory append failed")
		o.note(res, fmt.Sprintf("memory append: %v", err))
	}
	res.Steps = append(res.Steps, newStep("remember", stepTypeState, start, err, nil))
}

func (o *Orchestrator) note(res *RunResult, msg string) {
	if res.Debug != nil {
		res.Debug.Notes = append(res.Debug.Notes, msg)
	}
}

func (o *Orchestrator) resolveModel(req Request) string {
	if req.Model != "" {
		return req.Model
	}
	return o.defaultModel
}

func (o *Orchestrator) resolveTemperature(req Request) float32 {
	if req.Temperature > 0 {
		return req.Temperature
	}
	return o.temperature
}

func (o *Orchestrator) resolveMaxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return o.maxTokens
}

func renderSources(evidence []sources.Candidate) string {
	if len(evidence) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Sources:\n")
	for i, c := range evidence {
		label := c.Title
		if label == "" {
			label = c.Key()
		}
		fmt.Fprintf(&sb, "%d. [%s] %s", i+1, c.Type, label)
		if c.Snippet != "" {
			sb.WriteString(": ")
			sb.WriteString(c.Snippet)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func argString(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
