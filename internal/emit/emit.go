package emit

import (
	"path"
	"strings"

	"github.com/conneroisu/compgen/internal/tasks"
	"github.com/conneroisu/compgen/internal/templates"
)

// Routes wraps the routes file content in an add_routes block on pageRef.
// It returns "" when the component has no routes file.
func Routes(pageRef, content string, present bool) string {
	if !present {
		return ""
	}
	return pageRef + ".add_routes do\n\n" + content + "\nend\n\n"
}

// Template emits the registration statement for one parsed template.
func Template(pageRef string, t *templates.Template) string {
	var b strings.Builder
	b.WriteString(pageRef)
	b.WriteString(".add_template(")
	b.WriteString(Quote(t.Name))
	b.WriteString(", ")
	b.WriteString(Quote(t.Markup))
	b.WriteString(", ")
	b.WriteString(BindingTable(t.Bindings))
	b.WriteString(")\n")
	return b.String()
}

// BindingTable renders bindings as {"key" => [expr, ...], ...} in insertion
// order. Expressions are inserted verbatim.
func BindingTable(b *templates.Bindings) string {
	keys := b.Keys()
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Quote(k)+" => ["+strings.Join(b.Get(k), ", ")+"]")
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// Views emits every template of every set, sets first to last and templates
// in set order. A nil set contributes nothing.
func Views(pageRef string, sets []*templates.Set) string {
	var b strings.Builder
	for _, set := range sets {
		for _, t := range set.Templates() {
			b.WriteString(Template(pageRef, t))
		}
	}
	return b.String()
}

// Sources concatenates hand-written source files, each followed by a blank
// line. Used for controllers and models.
func Sources(contents []string) string {
	var b strings.Builder
	for _, c := range contents {
		b.WriteString(c)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Task emits the declaration of one task class inside its namespaces:
//
//	module A
//	module B
//	class Job < Volt::Task; end
//	end
//	end
func Task(name tasks.QualifiedName, baseClass string) string {
	namespaces := name.Namespaces()
	lines := make([]string, 0, 2*len(namespaces)+1)
	for _, ns := range namespaces {
		lines = append(lines, "module "+ns)
	}
	lines = append(lines, "class "+name.Class()+" < "+baseClass+"; end")
	for range namespaces {
		lines = append(lines, "end")
	}
	return strings.Join(lines, "\n")
}

// Tasks emits every task declaration, joined by a single newline, in the
// order given.
func Tasks(names []tasks.QualifiedName, baseClass string) string {
	blocks := make([]string, 0, len(names))
	for _, n := range names {
		blocks = append(blocks, Task(n, baseClass))
	}
	return strings.Join(blocks, "\n")
}

// InitializerPath rewrites an initializer file path to its load path by
// replacing the component root with the component name and dropping the
// extension: /app/blog/config/initializers/setup.rb -> blog/config/initializers/setup.
// A root of "." means file is already relative to the component.
func InitializerPath(component, root, file string) string {
	root = path.Clean(root)
	rel := path.Clean(file)
	if root != "." {
		rel = strings.TrimPrefix(rel, strings.TrimSuffix(root, "/")+"/")
	}
	logical := component + "/" + rel
	return strings.TrimSuffix(logical, path.Ext(logical))
}

// Initializers emits one require statement per initializer, each on its own
// line after a leading newline. It returns "" when there are none.
func Initializers(component, root string, files []string) string {
	if len(files) == 0 {
		return ""
	}
	lines := make([]string, 0, len(files))
	for _, f := range files {
		lines = append(lines, "require "+singleQuote(InitializerPath(component, root, f)))
	}
	return "\n" + strings.Join(lines, "\n")
}
