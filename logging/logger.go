// Package logging provides a tiny abstraction over slog so downstream code can
// depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer ParleyLogger that tags every
// entry with the correlation identifier of the scope it is bound to, plus a
// "plain" output format compatible with the classic
// "<timestamp> - <name> - <LEVEL> - [<correlation_id>] - <message>" line.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/parleyhq/parley/correlation"
)

// LogLevel is a thin enum for user friendly level configuration decoupled from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the minimal logging interface used throughout Parley.
// This allows users to provide their own logger implementation or use the built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// ParleyLogger wraps slog.Logger adding contextual cloning helpers and a
// live correlation scope. It is cheap to copy via With* methods; clones share
// the underlying handler but diverge in context attributes.
type ParleyLogger struct {
	logger    *slog.Logger
	level     LogLevel
	name      string
	component string
	scope     *correlation.Scope
	context   map[string]any
}

// LoggerConfig configures construction of a ParleyLogger.
type LoggerConfig struct {
	Level  LogLevel
	Format string // json, text or plain
	Output io.Writer
	// Name is the logger name rendered by the plain format.
	Name string
	// Scope supplies the correlation identifier attached to each entry.
	// When nil, entries carry the "no-correlation-id" placeholder until a
	// scope is bound via WithScope.
	Scope       *correlation.Scope
	Component   string
	CustomAttrs map[string]any
}

// DefaultLoggerConfig returns a baseline plain-format info level configuration.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "plain", Output: os.Stdout, Name: "parley", CustomAttrs: map[string]any{}}
}

// NewLogger builds a ParleyLogger from a config (or defaults if nil).
func NewLogger(cfg *LoggerConfig) *ParleyLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Name == "" {
		cfg.Name = "parley"
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level)}
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(cfg.Output, opts)
	case "text":
		handler = slog.NewTextHandler(cfg.Output, opts)
	default:
		handler = NewPlainHandler(cfg.Output, cfg.Name, slogLevel(cfg.Level))
	}

	ctx := map[string]any{}
	for k, v := range cfg.CustomAttrs {
		ctx[k] = v
	}

	return &ParleyLogger{
		logger:    slog.New(handler),
		level:     cfg.Level,
		name:      cfg.Name,
		component: cfg.Component,
		scope:     cfg.Scope,
		context:   ctx,
	}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *ParleyLogger) clone() *ParleyLogger {
	nl := *l
	nl.context = make(map[string]any, len(l.context))
	for k, v := range l.context {
		nl.context[k] = v
	}
	return &nl
}

// WithContext adds a key/value attribute attached to every log entry.
func (l *ParleyLogger) WithContext(key string, value any) *ParleyLogger {
	nl := l.clone()
	nl.context[key] = value
	return nl
}

// WithComponent sets the logical component (agent, httpapi, cli, etc.).
func (l *ParleyLogger) WithComponent(c string) *ParleyLogger {
	nl := l.clone()
	nl.component = c
	return nl
}

// WithScope binds the correlation scope whose identifier tags every entry.
// The identifier is read at emission time, so a later Set on the scope is
// reflected immediately.
func (l *ParleyLogger) WithScope(s *correlation.Scope) *ParleyLogger {
	nl := l.clone()
	nl.scope = s
	return nl
}

func (l *ParleyLogger) correlationID() string {
	if l.scope == nil {
		return correlation.Unset
	}
	return l.scope.ID()
}

func (l *ParleyLogger) buildAttrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, len(l.context)+2)
	attrs = append(attrs, slog.String("correlation_id", l.correlationID()))
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	for k, v := range l.context {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

func (l *ParleyLogger) log(level slog.Level, allowed bool, msg string, args ...any) {
	if !allowed {
		return
	}
	attrs := l.buildAttrs()
	for i := 0; i < len(args)-1; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		attrs = append(attrs, slog.Any(key, args[i+1]))
	}
	// A dangling key is reported the way slog does, never swallowed.
	if len(args)%2 != 0 {
		attrs = append(attrs, slog.Any("!BADKEY", args[len(args)-1]))
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Debug logs at debug level. Args are key/value pairs; a dangling key is
// logged under "!BADKEY".
func (l *ParleyLogger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, l.level <= LogLevelDebug, msg, args...)
}

// Info logs at info level.
func (l *ParleyLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, l.level <= LogLevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *ParleyLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, l.level <= LogLevelWarn, msg, args...)
}

// Error logs at error level.
func (l *ParleyLogger) Error(msg string, args ...any) {
	l.log(slog.LevelError, l.level <= LogLevelError, msg, args...)
}

// WithComponent sets the logical component when the logger supports
// contextual cloning; other Logger implementations are returned unchanged.
func WithComponent(l Logger, component string) Logger {
	if pl, ok := l.(*ParleyLogger); ok {
		return pl.WithComponent(component)
	}
	return l
}

// WithScope binds a correlation scope when the logger supports it; other
// Logger implementations are returned unchanged.
func WithScope(l Logger, s *correlation.Scope) Logger {
	if pl, ok := l.(*ParleyLogger); ok {
		return pl.WithScope(s)
	}
	return l
}

// WithContext attaches a key/value attribute when the logger supports
// contextual cloning; other Logger implementations are returned unchanged.
func WithContext(l Logger, key string, value any) Logger {
	if pl, ok := l.(*ParleyLogger); ok {
		return pl.WithContext(key, value)
	}
	return l
}

// LogOperation records a named operation with structured details on any
// Logger. ParleyLogger additionally tags the entry with its correlation
// identifier.
func LogOperation(l Logger, operation string, details map[string]any) {
	args := make([]any, 0, 2+2*len(details))
	args = append(args, "operation", operation)
	for k, v := range details {
		args = append(args, k, v)
	}
	l.Info(operation, args...)
}

// NoOpLogger discards all log messages. Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}
