// Package handlers holds the template handler registry: a mapping from a view
// file's extension tag to the Handler that turns its raw content into template
// markup the parser understands.
//
// A Registry is built once at process start, optionally extended, and then
// shared read-only by every assembly run.
package handlers

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Handler transforms raw file content into parseable template markup.
type Handler interface {
	Transform(raw string) (string, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(raw string) (string, error)

// Transform calls f(raw).
func (f HandlerFunc) Transform(raw string) (string, error) {
	return f(raw)
}

// Identity returns content unchanged. It models plain template markup.
var Identity Handler = HandlerFunc(func(raw string) (string, error) {
	return raw, nil
})

// DefaultExtensions are registered with the Identity handler by NewRegistry.
var DefaultExtensions = []string{"html", "email"}

// Registry maps extension tags to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates a registry with the default tags registered.
func NewRegistry() *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
	}
	for _, ext := range DefaultExtensions {
		r.Register(ext, Identity)
	}
	return r
}

// Register stores the handler for tag, replacing any earlier registration.
// Tags are case-insensitive and may be given with or without a leading dot.
// Empty tags and nil handlers are ignored.
func (r *Registry) Register(tag string, h Handler) {
	key := r.normalize(tag)
	if key == "" || h == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[key] = h
}

// HandlerFor returns the handler registered for tag. The boolean is false
// when no handler exists, meaning files with this tag are not templates.
func (r *Registry) HandlerFor(tag string) (Handler, bool) {
	key := r.normalize(tag)

	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[key]
	return h, ok
}

// KnownExtensions returns every registered tag, sorted.
func (r *Registry) KnownExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.handlers))
	for ext := range r.handlers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// normalize folds tag for case-insensitive lookup. A Caser is stateful, so
// each call gets its own.
func (r *Registry) normalize(tag string) string {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), ".")
	if tag == "" {
		return ""
	}
	return cases.Fold().String(tag)
}
