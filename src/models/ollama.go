package models

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// OllamaModel implements Model and Streamer against a local Ollama server.
type OllamaModel struct {
	Client *ollama.Client
	Model  string
}

// NewOllamaModel connects to OLLAMA_HOST (default http://localhost:11434).
func NewOllamaModel(model string) (*OllamaModel, error) {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = "http://localhost:11434"
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_HOST %q: %w", host, err)
	}
	client := ollama.NewClient(u, &http.Client{Timeout: 60 * time.Second})
	return &OllamaModel{Client: client, Model: model}, nil
}

func (o *OllamaModel) generateRequest(req Request) *ollama.GenerateRequest {
	model := req.Model
	if model == "" {
		model = o.Model
	}
	gr := &ollama.GenerateRequest{
		Model:   model,
		Prompt:  Flatten(req.Messages),
		Options: map[string]any{"temperature": req.Temperature},
	}
	if req.MaxTokens > 0 {
		gr.Options["num_predict"] = req.MaxTokens
	}
	if req.JSONOnly {
		gr.Format = json.RawMessage(`"json"`)
	}
	return gr
}

func (o *OllamaModel) Complete(ctx context.Context, req Request) (Response, error) {
	var (
		text strings.Builder
		last ollama.GenerateResponse
	)
	if err := o.Client.Generate(ctx, o.generateRequest(req), func(gr ollama.GenerateResponse) error {
		if gr.Response != "" {
			text.WriteString(gr.Response)
		}
		last = gr
		return nil
	}); err != nil {
		return Response{}, err
	}

	return Response{
		Text: text.String(),
		Usage: Usage{
			PromptTokens:     last.PromptEvalCount,
			CompletionTokens: last.EvalCount,
			TotalTokens:      last.PromptEvalCount + last.EvalCount,
		},
	}, nil
}

// Stream leverages Ollama's native callback-based streaming.
func (o *OllamaModel) Stream(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	ch := make(chan StreamChunk, 16)
	go func() {
		defer close(ch)
		var (
			sb   strings.Builder
			last ollama.GenerateResponse
		)
		err := o.Client.Generate(ctx, o.generateRequest(req), func(gr ollama.GenerateResponse) error {
			if gr.Response != "" {
				sb.WriteString(gr.Response)
				ch <- StreamChunk{Delta: gr.Response}
			}
			last = gr
			return nil
		})
		usage := Usage{
			PromptTokens:     last.PromptEvalCount,
			CompletionTokens: last.EvalCount,
			TotalTokens:      last.PromptEvalCount + last.EvalCount,
		}
		ch <- StreamChunk{Done: true, FullText: sb.String(), Usage: usage, Err: err}
	}()
	return ch, nil
}

var (
	_ Model    = (*OllamaModel)(nil)
	_ Streamer = (*OllamaModel)(nil)
)
