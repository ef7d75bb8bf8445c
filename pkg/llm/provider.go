package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system", "tool"
	Content string
	// ToolName attributes a tool-result message to the tool that produced it
	ToolName string
}

// Tool describes a capability the model may invoke during a chat turn.
type Tool struct {
	Name        string
	Description string
	Parameters  ToolParameters
}

// ToolParameters is a flat JSON-schema object definition.
type ToolParameters struct {
	Properties map[string]ToolProperty
	Required   []string
}

type ToolProperty struct {
	Type        string
	Description string
}

// ToolCall is the model's request to invoke a tool with arguments.
type ToolCall struct {
	Name      string
	Arguments map[string]interface{}
}

// StringArg reads a string argument from the call, with ok=false when absent.
func (tc *ToolCall) StringArg(name string) (string, bool) {
	v, ok := tc.Arguments[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Completion is one model turn: either final text or a tool call (or text
// accompanying a tool call, which some models emit).
type Completion struct {
	Text     string
	ToolCall *ToolCall
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response text
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatWithTools sends a chat history plus callable tools; the model
	// answers with either final text or a tool call
	ChatWithTools(ctx context.Context, history []Message, tools []Tool, options ...Option) (*Completion, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
