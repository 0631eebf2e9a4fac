package agent

import (
	"github.com/google/uuid"

	"github.com/parleyhq/parley/correlation"
	"github.com/parleyhq/parley/model"
)

// Message is a single role/content pair in a conversation history.
type Message = model.Message

// State is the mutable record of one conversation. It is exclusively owned by
// one Conversation; callers only ever see defensive copies. MessageCount
// equals len(History) after every mutation, History is append-only, and
// ConversationID never changes once the state exists.
type State struct {
	ConversationID string
	MessageCount   int
	History        []Message
	Context        map[string]any
}

// NewState creates an empty state keyed to the given conversation id.
func NewState(conversationID string) *State {
	return &State{
		ConversationID: conversationID,
		Context:        map[string]any{},
	}
}

// Append adds a message and increments the counter.
func (s *State) Append(role, content string) {
	s.History = append(s.History, Message{Role: role, Content: content})
	s.MessageCount++
}

// Summary is a point-in-time view of a conversation.
type Summary struct {
	ConversationID string         `json:"conversation_id"`
	MessageCount   int            `json:"message_count"`
	HistoryLength  int            `json:"history_length"`
	Context        map[string]any `json:"context"`
	// Active is false when no conversation state has been initialized yet.
	Active bool `json:"active"`
}

// Conversation is the composed state helper shared by agent variants. It owns
// one State, initializes it lazily from the correlation scope, and replaces it
// wholesale on reset. Not safe for concurrent use on its own; the owning agent
// serializes access.
type Conversation struct {
	scope *correlation.Scope
	state *State
}

// NewConversation binds a conversation to the correlation scope supplying its
// identity.
func NewConversation(scope *correlation.Scope) *Conversation {
	return &Conversation{scope: scope}
}

// ensure initializes the state from the scope's identifier if absent.
func (c *Conversation) ensure() *State {
	if c.state == nil {
		c.state = NewState(c.scope.ID())
	}
	return c.state
}

// Init initializes the state eagerly, returning the conversation id.
func (c *Conversation) Init() string {
	return c.ensure().ConversationID
}

// Active reports whether a conversation state has been initialized.
func (c *Conversation) Active() bool { return c.state != nil }

// ID returns the conversation id, initializing the state if needed.
func (c *Conversation) ID() string { return c.ensure().ConversationID }

// MessageCount returns the number of appended messages.
func (c *Conversation) MessageCount() int {
	if c.state == nil {
		return 0
	}
	return c.state.MessageCount
}

// AddToHistory appends a message, initializing the state if absent.
func (c *Conversation) AddToHistory(role, content string) {
	c.ensure().Append(role, content)
}

// History returns a copy of the message history.
func (c *Conversation) History() []Message {
	if c.state == nil {
		return nil
	}
	out := make([]Message, len(c.state.History))
	copy(out, c.state.History)
	return out
}

// SetContext stores a free-form auxiliary value on the conversation.
func (c *Conversation) SetContext(key string, value any) {
	c.ensure().Context[key] = value
}

// Summary returns a snapshot of the conversation. The context map is copied
// so callers cannot mutate internal state.
func (c *Conversation) Summary() Summary {
	if c.state == nil {
		return Summary{}
	}
	ctx := make(map[string]any, len(c.state.Context))
	for k, v := range c.state.Context {
		ctx[k] = v
	}
	return Summary{
		ConversationID: c.state.ConversationID,
		MessageCount:   c.state.MessageCount,
		HistoryLength:  len(c.state.History),
		Context:        ctx,
		Active:         true,
	}
}

// Reset assigns a freshly generated identifier to the scope and replaces the
// state with a brand-new one keyed to it. The old state is discarded, not
// cleared in place.
func (c *Conversation) Reset() string {
	id := uuid.NewString()
	c.scope.Set(id)
	c.state = NewState(id)
	return id
}
