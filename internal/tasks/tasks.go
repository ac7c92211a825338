// Package tasks provides the task handler registry consumed by the task
// emitter: the qualified class names of every background task the runtime
// must know about.
package tasks

import (
	"fmt"
	"strings"
)

// QualifiedName is a namespaced class name such as Admin::Reports::Job.
type QualifiedName struct {
	segments []string
}

// ParseQualifiedName splits a "::" or "." separated name. Every segment must
// be non-empty.
func ParseQualifiedName(s string) (QualifiedName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return QualifiedName{}, fmt.Errorf("empty task name")
	}

	sep := "::"
	if !strings.Contains(s, "::") {
		sep = "."
	}
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return QualifiedName{}, fmt.Errorf("invalid task name %q: empty segment", s)
		}
	}
	return QualifiedName{segments: parts}, nil
}

// Namespaces returns the enclosing namespaces, outermost first.
func (q QualifiedName) Namespaces() []string {
	if len(q.segments) == 0 {
		return nil
	}
	return append([]string(nil), q.segments[:len(q.segments)-1]...)
}

// Class returns the innermost segment.
func (q QualifiedName) Class() string {
	if len(q.segments) == 0 {
		return ""
	}
	return q.segments[len(q.segments)-1]
}

// String joins the segments with "::".
func (q QualifiedName) String() string {
	return strings.Join(q.segments, "::")
}

// Registry enumerates the known task handlers.
type Registry interface {
	KnownHandlers() ([]QualifiedName, error)
}

// StaticRegistry is a fixed list of task names.
type StaticRegistry struct {
	names []QualifiedName
}

// NewStaticRegistry parses names into a registry, keeping their order.
func NewStaticRegistry(names ...string) (*StaticRegistry, error) {
	r := &StaticRegistry{}
	for _, n := range names {
		q, err := ParseQualifiedName(n)
		if err != nil {
			return nil, err
		}
		r.names = append(r.names, q)
	}
	return r, nil
}

// KnownHandlers implements Registry.
func (r *StaticRegistry) KnownHandlers() ([]QualifiedName, error) {
	return append([]QualifiedName(nil), r.names...), nil
}

// Combined concatenates registries in order, dropping repeated names.
type Combined []Registry

// KnownHandlers implements Registry.
func (c Combined) KnownHandlers() ([]QualifiedName, error) {
	var out []QualifiedName
	seen := make(map[string]bool)
	for _, r := range c {
		names, err := r.KnownHandlers()
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			if seen[n.String()] {
				continue
			}
			seen[n.String()] = true
			out = append(out, n)
		}
	}
	return out, nil
}
