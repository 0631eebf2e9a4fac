package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/parleyhq/parley/correlation"
)

// PlainHandler is a slog.Handler emitting the classic single-line format
//
//	<timestamp> - <name> - <LEVEL> - [<correlation_id>] - <message>
//
// Remaining attributes are appended as key=value pairs. The correlation_id
// attribute is consumed into the bracketed slot instead of trailing the line.
type PlainHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	name  string
	level slog.Leveler
	attrs []slog.Attr
}

// NewPlainHandler constructs a PlainHandler writing to w under the given
// logger name.
func NewPlainHandler(w io.Writer, name string, level slog.Leveler) *PlainHandler {
	return &PlainHandler{mu: &sync.Mutex{}, w: w, name: name, level: level}
}

// Enabled implements slog.Handler.
func (h *PlainHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *PlainHandler) Handle(_ context.Context, r slog.Record) error {
	cid := correlation.Unset
	var rest []slog.Attr

	collect := func(a slog.Attr) bool {
		if a.Key == "correlation_id" {
			cid = a.Value.String()
			return true
		}
		rest = append(rest, a)
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s - %s - [%s] - %s",
		r.Time.Format("2006-01-02 15:04:05"), h.name, levelName(r.Level), cid, r.Message)
	for _, a := range rest {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs implements slog.Handler.
func (h *PlainHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &nh
}

// WithGroup implements slog.Handler. Groups are flattened; the plain format
// has no nesting.
func (h *PlainHandler) WithGroup(string) slog.Handler { return h }

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARNING"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
