package handlers

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown renders markdown view files into HTML markup before parsing.
// Raw HTML and binding braces inside the markdown are passed through so
// sections and bindings keep working.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a markdown handler with GitHub-flavoured extensions.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Transform implements Handler.
func (m *Markdown) Transform(raw string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(raw), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Named returns the built-in handler registered under name, used to map
// configured extension tags onto handlers.
func Named(name string) (Handler, bool) {
	switch name {
	case "identity", "html", "":
		return Identity, true
	case "markdown", "md":
		return NewMarkdown(), true
	default:
		return nil, false
	}
}
