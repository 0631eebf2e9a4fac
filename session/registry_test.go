package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/parley/agent"
	"github.com/parleyhq/parley/config"
	"github.com/parleyhq/parley/logging"
)

func newAgent(t *testing.T) *agent.Chat {
	t.Helper()
	a, err := agent.NewChat("RegistryAgent", config.Default(), func(o *agent.Options) {
		o.Logger = logging.NoOpLogger{}
	})
	require.NoError(t, err)
	return a
}

func TestRegistry_AddAndGet(t *testing.T) {
	r := NewRegistry()
	a := newAgent(t)

	id := r.Add(a)
	require.Equal(t, a.ConversationID(), id)

	got, ok := r.Get(id)
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, 1, r.Len())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry()
	factory := func() (*agent.Chat, error) { return newAgent(t), nil }

	// Empty id creates a fresh conversation.
	a, err := r.GetOrCreate("", factory)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	// Known id returns the same agent without invoking the factory.
	b, err := r.GetOrCreate(a.ConversationID(), func() (*agent.Chat, error) {
		t.Fatal("factory should not be called for a known id")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Same(t, a, b)

	// Unknown id falls through to the factory.
	c, err := r.GetOrCreate("unknown", factory)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_RekeyAfterReset(t *testing.T) {
	r := NewRegistry()
	a := newAgent(t)
	oldID := r.Add(a)

	a.Reset()
	newID := r.Rekey(oldID, a)

	assert.NotEqual(t, oldID, newID)
	_, ok := r.Get(oldID)
	assert.False(t, ok)
	got, ok := r.Get(newID)
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()
	id := r.Add(newAgent(t))

	r.Remove(id)
	_, ok := r.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}
