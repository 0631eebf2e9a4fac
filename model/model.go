package model

import (
	"context"
	"fmt"
	"strings"
)

// Message roles recognized in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role/content pair in a conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator produces a response to a user message given the system prompt and
// the conversation history so far (excluding the new message). An error from
// a generator fails the whole turn.
type Generator interface {
	Generate(ctx context.Context, system string, history []Message, message string) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, system string, history []Message, message string) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, system string, history []Message, message string) (string, error) {
	return f(ctx, system, history, message)
}

// PatternGenerator is a deterministic local generator keyed on simple message
// patterns. It stands in for a real provider in demos and tests; no network
// involved.
type PatternGenerator struct{}

// NewPatternGenerator constructs a PatternGenerator.
func NewPatternGenerator() *PatternGenerator { return &PatternGenerator{} }

// Generate implements Generator with canned pattern replies.
func (g *PatternGenerator) Generate(_ context.Context, _ string, _ []Message, message string) (string, error) {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "hello"), strings.Contains(msg, "hi"):
		return "Hello! How can I assist you today?", nil
	case strings.Contains(msg, "how are you"):
		return "I'm functioning well, thank you! Ready to help.", nil
	case strings.Contains(msg, "help"):
		return "I'm an AI assistant. I can answer questions and assist with tasks.", nil
	default:
		return fmt.Sprintf("I understand: '%s'. This is a demo response.", message), nil
	}
}
