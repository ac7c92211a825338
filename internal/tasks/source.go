package tasks

import (
	"regexp"
	"strings"

	"github.com/conneroisu/compgen/internal/fsys"
)

var declLine = regexp.MustCompile(`^([ \t]*)(module|class)[ \t]+([A-Z][A-Za-z0-9_:]*)(?:[ \t]*<[ \t]*([A-Za-z0-9_:]+))?`)

// SourceRegistry finds task classes by reading source files: every class
// declared as a subclass of BaseClass, qualified by the module and class
// declarations that enclose it. Nesting is inferred from indentation.
type SourceRegistry struct {
	fs        fsys.FileSystem
	patterns  []string
	baseClass string
}

// NewSourceRegistry scans files matching patterns for subclasses of
// baseClass (for example "Volt::Task").
func NewSourceRegistry(fs fsys.FileSystem, baseClass string, patterns ...string) *SourceRegistry {
	return &SourceRegistry{fs: fs, patterns: patterns, baseClass: baseClass}
}

// KnownHandlers implements Registry. Files are read in sorted order and
// declarations in file order.
func (r *SourceRegistry) KnownHandlers() ([]QualifiedName, error) {
	var files []string
	for _, p := range r.patterns {
		matches, err := r.fs.ListFiles(p)
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}

	var out []QualifiedName
	seen := make(map[string]bool)
	for _, f := range files {
		if seen["file:"+f] {
			continue
		}
		seen["file:"+f] = true

		content, err := r.fs.ReadFile(f)
		if err != nil {
			return nil, err
		}
		for _, q := range r.scan(content) {
			if seen[q.String()] {
				continue
			}
			seen[q.String()] = true
			out = append(out, q)
		}
	}
	return out, nil
}

type scope struct {
	indent int
	names  []string
}

func (r *SourceRegistry) scan(content string) []QualifiedName {
	var (
		stack []scope
		found []QualifiedName
	)

	for _, line := range strings.Split(content, "\n") {
		parts := strings.Split(line, ";")
		if !hasDecl(parts) {
			continue
		}

		trimmed := strings.TrimLeft(line, " \t")
		indent := len(strings.ReplaceAll(line[:len(line)-len(trimmed)], "\t", "  "))
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}

		// Statements after a ";" nest inside the scopes opened earlier on
		// the same line until an "end" closes them.
		opened := 0
		for _, part := range parts {
			stmt := strings.TrimSpace(part)
			if stmt == "end" {
				if opened > 0 {
					stack = stack[:len(stack)-1]
					opened--
				}
				continue
			}
			m := declLine.FindStringSubmatch(stmt)
			if m == nil {
				continue
			}

			names := strings.Split(m[3], "::")
			if m[2] == "class" && r.isTaskBase(m[4]) {
				var segments []string
				for _, s := range stack {
					segments = append(segments, s.names...)
				}
				segments = append(segments, names...)
				found = append(found, QualifiedName{segments: segments})
			}
			stack = append(stack, scope{indent: indent, names: names})
			opened++
		}
	}
	return found
}

// isTaskBase accepts the configured base class or its unqualified name.
func (r *SourceRegistry) isTaskBase(super string) bool {
	if super == "" {
		return false
	}
	if super == r.baseClass {
		return true
	}
	short := r.baseClass
	if i := strings.LastIndex(short, "::"); i >= 0 {
		short = short[i+2:]
	}
	return super == short
}

func hasDecl(parts []string) bool {
	for _, p := range parts {
		if declLine.MatchString(strings.TrimSpace(p)) {
			return true
		}
	}
	return false
}
