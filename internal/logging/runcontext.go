package logging

import (
	"context"
	"log/slog"
	"sync"
)

// RunContext carries mutable run-scoped attributes stamped onto every log
// record: the CLI command being executed, the active storage backend, and
// the document currently being processed. Setters may be called from any
// goroutine.
type RunContext struct {
	mu       sync.Mutex
	command  string
	backend  string
	document string
}

// NewRunContext creates an empty run context.
func NewRunContext() *RunContext {
	return &RunContext{}
}

// SetCommand records the CLI subcommand being executed.
func (rc *RunContext) SetCommand(name string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.command = name
}

// SetBackend records the storage backend serving this run.
func (rc *RunContext) SetBackend(kind string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.backend = kind
}

// SetDocument records the document currently being processed. Pass "" when
// processing finishes so later records are not misattributed.
func (rc *RunContext) SetDocument(path string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.document = path
}

// attrs snapshots the attributes that are currently set.
func (rc *RunContext) attrs() []slog.Attr {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	var attrs []slog.Attr
	if rc.command != "" {
		attrs = append(attrs, slog.String("command", rc.command))
	}
	if rc.backend != "" {
		attrs = append(attrs, slog.String("backend", rc.backend))
	}
	if rc.document != "" {
		attrs = append(attrs, slog.String("document", rc.document))
	}
	return attrs
}

// WithRunContext wraps a handler so every record carries the attributes
// currently set on run.
func WithRunContext(inner slog.Handler, run *RunContext) slog.Handler {
	return &runContextHandler{inner: inner, run: run}
}

type runContextHandler struct {
	inner slog.Handler
	run   *RunContext
}

func (h *runContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *runContextHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(h.run.attrs()...)
	return h.inner.Handle(ctx, r)
}

func (h *runContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &runContextHandler{inner: h.inner.WithAttrs(attrs), run: h.run}
}

func (h *runContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &runContextHandler{inner: h.inner.WithGroup(name), run: h.run}
}
