package models

import (
	"context"
	"strings"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat turn sent to a completion provider.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Usage counts tokens consumed by one or more completion calls.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Add accumulates another call's usage into u.
func (u *Usage) Add(v Usage) {
	u.PromptTokens += v.PromptTokens
	u.CompletionTokens += v.CompletionTokens
	u.TotalTokens += v.TotalTokens
}

// Request describes a single completion call.
type Request struct {
	Model       string
	Temperature float32
	MaxTokens   int
	// JSONOnly hints the provider to force a JSON-object response when the
	// backing API supports it.
	JSONOnly bool
	Messages []Message
}

// Response is the provider's reply plus what it cost in tokens.
type Response struct {
	Text  string
	Usage Usage
}

// Model is the completion capability injected into the orchestrator.
type Model interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// StreamChunk is one increment of a streamed completion.
type StreamChunk struct {
	Delta    string
	Done     bool
	FullText string
	Usage    Usage
	Err      error
}

// Streamer is implemented by providers with native incremental delivery.
type Streamer interface {
	Stream(ctx context.Context, req Request) (<-chan StreamChunk, error)
}

// Flatten renders messages into a single prompt for providers whose API
// takes plain text rather than a message list.
func Flatten(messages []Message) string {
	var sb strings.Builder
	for i, m := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		switch m.Role {
		case RoleSystem:
			sb.WriteString(m.Content)
		case RoleAssistant:
			sb.WriteString("Assistant: ")
			sb.WriteString(m.Content)
		default:
			sb.WriteString("User: ")
			sb.WriteString(m.Content)
		}
	}
	return sb.String()
}
