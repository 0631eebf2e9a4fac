package httpapi

import (
	"net/http"
	"time"

	"github.com/parleyhq/parley/correlation"
	"github.com/parleyhq/parley/logging"
)

// CorrelationHeader carries the correlation identifier across the wire.
const CorrelationHeader = "X-Correlation-ID"

// correlationMiddleware gives every request its own correlation scope. An
// incoming X-Correlation-ID header seeds the scope; otherwise the identifier
// is generated lazily. The response always echoes the identifier.
func correlationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope := correlation.NewScope()
		if id := r.Header.Get(CorrelationHeader); id != "" {
			scope.Set(id)
		}
		w.Header().Set(CorrelationHeader, scope.ID())
		next.ServeHTTP(w, r.WithContext(correlation.WithScope(r.Context(), scope)))
	})
}

// corsMiddleware applies the configured allowed origins and answers preflight
// requests.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+CorrelationHeader)
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, o := range s.origins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// requestLogger emits one correlation-tagged entry per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.logger
		if scope, ok := correlation.ScopeFrom(r.Context()); ok {
			logger = logging.WithScope(logger, scope)
		}
		next.ServeHTTP(w, r)
		logger.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
