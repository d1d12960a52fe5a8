// Command demo runs the orchestrator end to end against the deterministic
// dummy model and in-process stores, so no API keys or services are needed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zephyrnotes/agent"
	"github.com/zephyrnotes/agent/src/classify"
	"github.com/zephyrnotes/agent/src/config"
	"github.com/zephyrnotes/agent/src/memory"
	"github.com/zephyrnotes/agent/src/models"
	"github.com/zephyrnotes/agent/src/notes"
	"github.com/zephyrnotes/agent/src/tools"
)

type demoWeather struct{}

func (demoWeather) Current(_ context.Context, location string) (tools.Reading, error) {
	return tools.Reading{Location: location, Temp: 22, Condition: "sunny"}, nil
}

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	debug := flag.Bool("debug", true, "include the step timeline in results")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	model := &models.DummyModel{Script: func(req models.Request) (string, error) {
		switch {
		case len(req.Messages) > 0 && strings.HasPrefix(req.Messages[0].Content, "Summarize"):
			return `{"summary": "A short note about seasonal coastal wind.", "tags": ["wind", "coast"]}`, nil
		case req.JSONOnly:
			return `{"intent": "multi", "args": {"query": "wind", "location": "Lisbon"}, "confidence": 0.9}`, nil
		default:
			return "It's 22° and sunny in Lisbon; your notes describe coastal wind patterns.", nil
		}
	}}

	corpus := notes.NewMemoryProvider(
		notes.Note{File: "wind.md", Title: "Wind patterns", Content: "Coastal wind patterns shift with the seasons along the Atlantic coast."},
		notes.Note{File: "groceries.md", Title: "Groceries", Content: "Bread, olive oil, tomatoes."},
	)

	orch, err := agent.New(agent.Options{
		Model:        model,
		Classifier:   classify.NewClassifier(classify.ClassifierOptions{Model: model, ModelID: cfg.Model, Logger: logger}),
		Weather:      demoWeather{},
		Notes:        corpus,
		Memory:       memory.NewInMemoryStore(cfg.Window),
		MergeCap:     cfg.MergeCap,
		DefaultModel: cfg.Model,
		Temperature:  cfg.Temperature,
		MaxTokens:    cfg.MaxTokens,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("build orchestrator: %v", err)
	}

	ctx := context.Background()
	prompts := []string{
		"What's the weather in Lisbon, and what do my notes say about wind?",
		"List my notes.",
	}
	for _, prompt := range prompts {
		res := orch.Run(ctx, agent.Request{
			Prompt:    prompt,
			SessionID: "demo",
			UseMemory: true,
			Debug:     *debug,
		})
		out, _ := json.MarshalIndent(res, "", "  ")
		fmt.Printf("\n>> %s\n%s\n", prompt, out)
	}

	fmt.Println("\n>> Summarizing notes")
	agent.SummarizeNotes(ctx, []string{"wind.md", "groceries.md"}, agent.SummarizeOptions{
		Model:   model,
		ModelID: cfg.Model,
		Notes:   corpus,
		Logger:  logger,
		OnResult: func(r agent.NoteResult) {
			out, _ := json.MarshalIndent(r, "", "  ")
			fmt.Println(string(out))
		},
	})
}
