package session

import (
	"sync"

	"github.com/parleyhq/parley/agent"
)

// Registry is a process-local map from conversation id to agent. It is safe
// for concurrent access and best suited for tests or ephemeral demo servers.
// Each agent exclusively owns its conversation state; the registry only
// routes by id.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]*agent.Chat
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{agents: make(map[string]*agent.Chat)}
}

// Get returns the agent serving the given conversation id.
func (r *Registry) Get(conversationID string) (*agent.Chat, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agents[conversationID]
	return a, ok
}

// Add registers an agent under its current conversation id and returns that id.
func (r *Registry) Add(a *agent.Chat) string {
	id := a.ConversationID()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[id] = a
	return id
}

// GetOrCreate returns the agent for the id, constructing and registering one
// via factory when absent. An empty id always creates a new agent registered
// under its own generated conversation id.
func (r *Registry) GetOrCreate(conversationID string, factory func() (*agent.Chat, error)) (*agent.Chat, error) {
	if conversationID != "" {
		if a, ok := r.Get(conversationID); ok {
			return a, nil
		}
	}

	a, err := factory()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another request may have registered the id concurrently; keep the
	// first registration so both callers talk to the same conversation.
	id := a.ConversationID()
	if existing, ok := r.agents[id]; ok {
		return existing, nil
	}
	r.agents[id] = a
	return a, nil
}

// Rekey moves an agent to its current conversation id after a reset.
func (r *Registry) Rekey(oldID string, a *agent.Chat) string {
	newID := a.ConversationID()
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.agents, oldID)
	r.agents[newID] = a
	return newID
}

// Remove drops the agent serving the given conversation id.
func (r *Registry) Remove(conversationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.agents, conversationID)
}

// Len returns the number of registered conversations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.agents)
}
