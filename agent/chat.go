package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/parleyhq/parley/config"
	"github.com/parleyhq/parley/correlation"
	"github.com/parleyhq/parley/guardrail"
	"github.com/parleyhq/parley/logging"
	"github.com/parleyhq/parley/model"
)

// ErrEmptyInput is returned by ProcessMessage for empty or whitespace-only
// input. Conversation state is left untouched.
var ErrEmptyInput = errors.New("message cannot be empty")

// DefaultSystemPrompt is used when no system prompt is supplied.
const DefaultSystemPrompt = "You are a helpful AI assistant."

// FallbackResponse replaces a generated response rejected by the guardrails.
const FallbackResponse = "I apologize, but I cannot provide a response at this time."

// Agent is the capability interface implemented by agent variants. Variants
// share state plumbing through Conversation and differ in generation and
// validation logic.
type Agent interface {
	// ProcessMessage runs one full exchange and returns the final response.
	ProcessMessage(ctx context.Context, message string) (string, error)

	// ValidateResponse checks a candidate response against the guardrails.
	// Pure: no state mutation, no logging.
	ValidateResponse(response string) guardrail.Result
}

// Options configure construction of a Chat agent.
type Options struct {
	// SystemPrompt overrides DefaultSystemPrompt.
	SystemPrompt string
	// Generator produces candidate responses. Defaults to the local
	// PatternGenerator.
	Generator model.Generator
	// Logger receives the structured pipeline log entries. Any
	// logging.Logger works; a *logging.ParleyLogger additionally tags every
	// entry with the agent's correlation identifier. Defaults to a
	// plain-format stdout logger.
	Logger logging.Logger
	// Scope supplies the correlation identifier that becomes the conversation
	// id. Defaults to a fresh scope owned by this agent.
	Scope *correlation.Scope
	// ConversationID overrides the scope-derived conversation id.
	ConversationID string
}

// Chat is a conversational agent processing messages through a fixed
// pipeline: append user message, generate candidate, validate, append final
// response. ProcessMessage calls are serialized, so history order matches
// call order.
type Chat struct {
	name         string
	cfg          config.Config
	systemPrompt string
	gen          model.Generator
	validator    *guardrail.Validator
	scope        *correlation.Scope
	logger       logging.Logger

	mu   sync.Mutex
	conv *Conversation
}

var _ Agent = (*Chat)(nil)

// NewChat constructs an agent with an initialized conversation state keyed to
// the correlation scope. It fails with a *config.ConfigurationError when the
// configuration is invalid.
func NewChat(name string, cfg config.Config, optFns ...func(o *Options)) (*Chat, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = DefaultSystemPrompt
	}
	if opts.Scope == nil {
		opts.Scope = correlation.NewScope()
	}
	if opts.ConversationID != "" {
		opts.Scope.Set(opts.ConversationID)
	}
	if opts.Generator == nil {
		opts.Generator = model.NewPatternGenerator()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(nil)
	}
	logger := logging.WithComponent(opts.Logger, "agent")
	logger = logging.WithContext(logger, "agent", name)
	logger = logging.WithScope(logger, opts.Scope)

	c := &Chat{
		name:         name,
		cfg:          cfg,
		systemPrompt: opts.SystemPrompt,
		gen:          opts.Generator,
		validator:    guardrail.NewValidator(cfg.MaxTokens),
		scope:        opts.Scope,
		logger:       logger,
		conv:         NewConversation(opts.Scope),
	}
	c.conv.Init()

	c.logger.Info("initialized agent", "name", name, "conversation_id", c.conv.ID())
	return c, nil
}

// Name returns the agent's name.
func (c *Chat) Name() string { return c.name }

// ConversationID returns the id of the active conversation.
func (c *Chat) ConversationID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.ID()
}

// ProcessMessage runs one exchange: the user message and the final response
// are both appended to history, two structured log entries are emitted, and a
// guardrail rejection degrades the response to FallbackResponse instead of
// failing the turn. Only empty input and generator failures return an error.
func (c *Chat) ProcessMessage(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prior := c.conv.History()
	c.conv.AddToHistory(model.RoleUser, message)

	// Logged before generation so the intent is captured even if the
	// generator fails mid-turn.
	logging.LogOperation(c.logger, "message_received", map[string]any{
		"message_length":  len(message),
		"conversation_id": c.conv.ID(),
		"message_count":   c.conv.MessageCount(),
	})

	candidate, err := c.gen.Generate(correlation.WithScope(ctx, c.scope), c.systemPrompt, prior, message)
	if err != nil {
		return "", fmt.Errorf("generate response: %w", err)
	}

	result := c.validator.Validate(candidate)
	final := candidate
	if !result.Valid {
		final = FallbackResponse
		c.logger.Warn("response rejected by guardrails",
			"reason", result.Reason,
			"conversation_id", c.conv.ID(),
		)
	}

	c.conv.AddToHistory(model.RoleAssistant, final)

	logging.LogOperation(c.logger, "response_generated", map[string]any{
		"response_length":   len(final),
		"conversation_id":   c.conv.ID(),
		"validation_passed": result.Valid,
	})

	return final, nil
}

// ValidateResponse implements Agent by delegating to the guardrail validator.
func (c *Chat) ValidateResponse(response string) guardrail.Result {
	return c.validator.Validate(response)
}

// Summary returns a snapshot of the active conversation.
func (c *Chat) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Summary()
}

// History returns a copy of the conversation history.
func (c *Chat) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.History()
}

// Reset discards the conversation: a new correlation identifier is generated,
// set on the scope, and a fresh state is created under it. Counters and
// history start from zero.
func (c *Chat) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.conv.Reset()
	c.logger.Info("conversation reset", "conversation_id", id)
}
