package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/parley/agent"
	"github.com/parleyhq/parley/config"
	"github.com/parleyhq/parley/correlation"
	"github.com/parleyhq/parley/logging"
	"github.com/parleyhq/parley/model"
)

func newTestHandler(t *testing.T, gen model.Generator) http.Handler {
	t.Helper()
	logger := logging.NoOpLogger{}
	factory := func(scope *correlation.Scope) (*agent.Chat, error) {
		return agent.NewChat("APIAgent", config.Default(), func(o *agent.Options) {
			o.Scope = scope
			o.Logger = logger
			if gen != nil {
				o.Generator = gen
			}
		})
	}
	return NewHandler(factory, func(o *Options) { o.Logger = logger })
}

func postChat(t *testing.T, h http.Handler, body map[string]any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestChat_NewConversation(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := postChat(t, h, map[string]any{"message": "Hello!"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, "Hello! How can I assist you today?", resp.Response)
	assert.Equal(t, 2, resp.MessageCount)

	// The conversation id matches the correlation id echoed on the response.
	assert.Equal(t, resp.ConversationID, rec.Header().Get(CorrelationHeader))
}

func TestChat_ContinuesConversation(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := postChat(t, h, map[string]any{"message": "Hello!"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var first chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = postChat(t, h, map[string]any{
		"conversation_id": first.ConversationID,
		"message":         "How are you?",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var second chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Equal(t, 4, second.MessageCount)
}

func TestChat_HonorsCorrelationHeader(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := postChat(t, h, map[string]any{"message": "Hello!"}, map[string]string{
		CorrelationHeader: "req-123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(CorrelationHeader))

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "req-123", resp.ConversationID)
}

func TestChat_EmptyMessage(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := postChat(t, h, map[string]any{"message": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_GeneratorFailure(t *testing.T) {
	gen := model.GeneratorFunc(func(context.Context, string, []model.Message, string) (string, error) {
		return "", errors.New("provider down")
	})
	h := newTestHandler(t, gen)

	rec := postChat(t, h, map[string]any{"message": "Hello!"}, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestConversationSummary(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := postChat(t, h, map[string]any{"message": "Hello!"}, nil)
	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/conversations/"+resp.ConversationID, nil)
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusOK, rec2.Code)

	var summary agent.Summary
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &summary))
	assert.Equal(t, resp.ConversationID, summary.ConversationID)
	assert.Equal(t, 2, summary.MessageCount)
	assert.Equal(t, 2, summary.HistoryLength)
}

func TestConversationSummary_NotFound(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/conversations/missing", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetConversation(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := postChat(t, h, map[string]any{"message": "Hello!"}, nil)
	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodDelete, "/conversations/"+resp.ConversationID, nil)
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusOK, rec2.Code)

	var reset map[string]string
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &reset))
	newID := reset["conversation_id"]
	assert.NotEqual(t, resp.ConversationID, newID)

	// The old id no longer resolves; the new one starts empty.
	req = httptest.NewRequest(http.MethodGet, "/conversations/"+resp.ConversationID, nil)
	rec3 := httptest.NewRecorder()
	h.ServeHTTP(rec3, req)
	assert.Equal(t, http.StatusNotFound, rec3.Code)

	req = httptest.NewRequest(http.MethodGet, "/conversations/"+newID, nil)
	rec4 := httptest.NewRecorder()
	h.ServeHTTP(rec4, req)
	require.Equal(t, http.StatusOK, rec4.Code)

	var summary agent.Summary
	require.NoError(t, json.Unmarshal(rec4.Body.Bytes(), &summary))
	assert.Equal(t, 0, summary.MessageCount)
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	logger := logging.NoOpLogger{}
	factory := func(scope *correlation.Scope) (*agent.Chat, error) {
		return agent.NewChat("APIAgent", config.Default(), func(o *agent.Options) {
			o.Scope = scope
			o.Logger = logger
		})
	}
	h := NewHandler(factory, func(o *Options) {
		o.Logger = logger
		o.AllowedOrigins = []string{"http://allowed.example"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
