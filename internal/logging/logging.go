// Package logging builds the process-wide slog.Logger every godbg command
// shares: a colored console handler fanned out to an in-memory ring buffer
// via samber/slog-multi, so the last N warnings (the §7 error-taxonomy
// entries dwarfbin.logWarn emits) stay inspectable from internal/tui without
// re-parsing anything. The teacher has no logging package of its own (its
// cmd/root.go only fmt.Fprintln's the config path) but already lists
// samber/slog-multi in go.mod; this is that dependency's first caller.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"
	slogmulti "github.com/samber/slog-multi"
)

// Ring is a fixed-capacity, thread-safe ring buffer of the most recent log
// records, exposed to internal/tui's log viewer.
type Ring struct {
	mu   sync.Mutex
	cap  int
	recs []slog.Record
	next int
	full bool
}

// NewRing creates a ring buffer holding at most capacity records.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 256
	}
	return &Ring{cap: capacity, recs: make([]slog.Record, capacity)}
}

func (r *Ring) push(rec slog.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs[r.next] = rec
	r.next = (r.next + 1) % r.cap
	if r.next == 0 {
		r.full = true
	}
}

// Records returns the buffered records in oldest-to-newest order.
func (r *Ring) Records() []slog.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		out := make([]slog.Record, r.next)
		copy(out, r.recs[:r.next])
		return out
	}
	out := make([]slog.Record, r.cap)
	copy(out, r.recs[r.next:])
	copy(out[r.cap-r.next:], r.recs[:r.next])
	return out
}

// ringHandler is a minimal slog.Handler that appends every record it
// receives to a Ring and never filters or formats.
type ringHandler struct {
	ring  *Ring
	attrs []slog.Attr
}

func newRingHandler(ring *Ring) *ringHandler {
	return &ringHandler{ring: ring}
}

func (h *ringHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *ringHandler) Handle(_ context.Context, rec slog.Record) error {
	clone := rec.Clone()
	for _, a := range h.attrs {
		clone.AddAttrs(a)
	}
	h.ring.push(clone)
	return nil
}

func (h *ringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ringHandler{ring: h.ring, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *ringHandler) WithGroup(string) slog.Handler { return h }

// consoleHandler renders records to w, coloring the level the way the
// teacher's cmd/cpu/debug.go colors registers and opcodes: one fatih/color
// role per severity.
type consoleHandler struct {
	w     io.Writer
	attrs []slog.Attr
	level slog.Leveler
}

func newConsoleHandler(w io.Writer, level slog.Leveler) *consoleHandler {
	return &consoleHandler{w: w, level: level}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.level != nil {
		min = h.level.Level()
	}
	return level >= min
}

var (
	levelDebug = color.New(color.FgHiBlack)
	levelInfo  = color.New(color.FgCyan)
	levelWarn  = color.New(color.FgYellow, color.Bold)
	levelError = color.New(color.FgRed, color.Bold)
)

func colorForLevel(l slog.Level) *color.Color {
	switch {
	case l < slog.LevelInfo:
		return levelDebug
	case l < slog.LevelWarn:
		return levelInfo
	case l < slog.LevelError:
		return levelWarn
	default:
		return levelError
	}
}

func (h *consoleHandler) Handle(_ context.Context, rec slog.Record) error {
	c := colorForLevel(rec.Level)
	fmt.Fprintf(h.w, "%s %s", c.Sprint(rec.Level.String()), rec.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(h.w, " %s=%v", a.Key, a.Value)
	}
	rec.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.w, " %s=%v", a.Key, a.Value)
		return true
	})
	fmt.Fprintln(h.w)
	return nil
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{w: h.w, level: h.level, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *consoleHandler) WithGroup(string) slog.Handler { return h }

// New builds the fan-out logger: every record reaches both the colored
// console and the ring buffer, so `godbg` prints warnings live while
// internal/tui's log panel can still show the history after the fact.
func New(w io.Writer, level slog.Leveler, ring *Ring) *slog.Logger {
	handler := slogmulti.Fanout(
		newConsoleHandler(w, level),
		newRingHandler(ring),
	)
	return slog.New(handler)
}
