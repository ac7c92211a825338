// Package templates defines the parsed form of a view file, a set of named
// templates each with a binding table, and the Parser that produces it.
//
// Both the set and the binding table keep insertion order; emitters rely on
// that order for reproducible output.
package templates

// Parser turns transformed view markup into named templates. pathKey
// identifies the view file ("blog/main/index") and prefixes template names.
// Implementations must be deterministic for identical input.
type Parser interface {
	Parse(markup, pathKey string) (*Set, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(markup, pathKey string) (*Set, error)

// Parse calls f(markup, pathKey).
func (f ParserFunc) Parse(markup, pathKey string) (*Set, error) {
	return f(markup, pathKey)
}

// Bindings maps binding keys to ordered lists of expressions. Expressions
// are opaque source fragments.
type Bindings struct {
	keys   []string
	values map[string][]string
}

// NewBindings creates an empty binding table.
func NewBindings() *Bindings {
	return &Bindings{values: make(map[string][]string)}
}

// Add appends expressions to key. A key keeps the position of its first Add.
func (b *Bindings) Add(key string, exprs ...string) {
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
		b.values[key] = nil
	}
	b.values[key] = append(b.values[key], exprs...)
}

// Keys returns the keys in insertion order.
func (b *Bindings) Keys() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.keys...)
}

// Get returns the expressions bound to key.
func (b *Bindings) Get(key string) []string {
	if b == nil {
		return nil
	}
	return b.values[key]
}

// Len returns the number of keys.
func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Template is one named markup fragment.
type Template struct {
	Name     string
	Markup   string
	Bindings *Bindings
}

// Set is an insertion-ordered collection of templates keyed by name.
type Set struct {
	order     []string
	templates map[string]*Template
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{templates: make(map[string]*Template)}
}

// Add stores t. Adding a name twice replaces the template in place.
func (s *Set) Add(t *Template) {
	if _, ok := s.templates[t.Name]; !ok {
		s.order = append(s.order, t.Name)
	}
	s.templates[t.Name] = t
}

// Get returns the template called name.
func (s *Set) Get(name string) (*Template, bool) {
	t, ok := s.templates[name]
	return t, ok
}

// Templates returns the templates in insertion order.
func (s *Set) Templates() []*Template {
	if s == nil {
		return nil
	}
	out := make([]*Template, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.templates[name])
	}
	return out
}

// Len returns the number of templates.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}
