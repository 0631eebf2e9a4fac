// Package httpapi exposes conversations over a small JSON API. Each request
// carries its own correlation scope (honoring the X-Correlation-ID header),
// and new conversations inherit the request's correlation identifier as their
// conversation id.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parleyhq/parley/agent"
	"github.com/parleyhq/parley/correlation"
	"github.com/parleyhq/parley/logging"
	"github.com/parleyhq/parley/session"
)

// AgentFactory builds a fresh agent bound to the given correlation scope.
// Called once per new conversation.
type AgentFactory func(scope *correlation.Scope) (*agent.Chat, error)

// Options configure the HTTP handler.
type Options struct {
	// AllowedOrigins for CORS. Defaults to ["*"].
	AllowedOrigins []string
	// Logger for request and error logging. Defaults to a plain stdout logger.
	Logger logging.Logger
	// Registry holding live conversations. Defaults to a fresh in-memory one.
	Registry *session.Registry
}

// Server routes chat traffic to agents held in the session registry.
type Server struct {
	registry *session.Registry
	factory  AgentFactory
	logger   logging.Logger
	origins  []string
}

type chatRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}

type chatResponse struct {
	ConversationID string `json:"conversation_id"`
	Response       string `json:"response"`
	MessageCount   int    `json:"message_count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler builds the chi router serving the chat API.
func NewHandler(factory AgentFactory, optFns ...func(o *Options)) http.Handler {
	opts := Options{AllowedOrigins: []string{"*"}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(nil)
	}
	if opts.Registry == nil {
		opts.Registry = session.NewRegistry()
	}

	s := &Server{
		registry: opts.Registry,
		factory:  factory,
		logger:   logging.WithComponent(opts.Logger, "httpapi"),
		origins:  opts.AllowedOrigins,
	}

	r := chi.NewRouter()
	r.Use(s.corsMiddleware)
	r.Use(correlationMiddleware)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.health)
	r.Post("/chat", s.chat)
	r.Get("/conversations/{id}", s.conversation)
	r.Delete("/conversations/{id}", s.resetConversation)

	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	a, err := s.registry.GetOrCreate(req.ConversationID, func() (*agent.Chat, error) {
		scope, ok := correlation.ScopeFrom(r.Context())
		if !ok {
			scope = correlation.NewScope()
		}
		return s.factory(scope)
	})
	if err != nil {
		s.logger.Error("failed to create agent", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create conversation"})
		return
	}

	response, err := a.ProcessMessage(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, agent.ErrEmptyInput) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error("generation failed", "error", err, "conversation_id", a.ConversationID())
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "response generation failed"})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		ConversationID: a.ConversationID(),
		Response:       response,
		MessageCount:   a.Summary().MessageCount,
	})
}

func (s *Server) conversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, ok := s.registry.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no active conversation"})
		return
	}
	writeJSON(w, http.StatusOK, a.Summary())
}

func (s *Server) resetConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, ok := s.registry.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no active conversation"})
		return
	}

	a.Reset()
	newID := s.registry.Rekey(id, a)

	writeJSON(w, http.StatusOK, map[string]string{"conversation_id": newID})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
