// Package correlation provides the ambient correlation identifier used to tag
// every log line emitted during one logical conversation turn. The identifier
// lives in a Scope: a small mutable cell owned by exactly one execution unit
// (an agent instance, an HTTP request, a REPL session). Scopes travel through
// context.Context so logging can read the identifier without explicit
// parameter threading, and two execution units never observe each other's
// identifier because they never share a Scope.
package correlation

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Unset is reported by ID when no scope travels with the context. It matches
// the placeholder the plain log format expects between brackets.
const Unset = "no-correlation-id"

// Scope holds the correlation identifier for one execution unit. The zero
// value is ready to use; the identifier is generated lazily on first read.
type Scope struct {
	mu sync.Mutex
	id string
}

// NewScope returns an empty scope. The first call to ID assigns it a fresh
// identifier.
func NewScope() *Scope { return &Scope{} }

// ID returns the current identifier, generating and storing a new random one
// if none is set. Repeated calls without an intervening Set return the same
// value.
func (s *Scope) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == "" {
		s.id = uuid.NewString()
	}
	return s.id
}

// Set overwrites the current identifier. No format validation is performed.
func (s *Scope) Set(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
}

type scopeKey struct{}

// WithScope returns a context carrying the given scope.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// ScopeFrom extracts the scope carried by ctx, if any.
func ScopeFrom(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok
}

// ID returns the identifier of the scope carried by ctx, creating one on the
// scope if needed. Without a scope it returns Unset rather than minting an
// identifier that nothing else could ever read again.
func ID(ctx context.Context) string {
	if s, ok := ScopeFrom(ctx); ok {
		return s.ID()
	}
	return Unset
}
