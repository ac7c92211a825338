// Package scaffolding creates sample components from built-in templates.
package scaffolding

import (
	"bytes"
	"fmt"
	"path"
	"slices"
	"strings"
	"text/template"

	"github.com/conneroisu/compgen/internal/errors"
	"github.com/conneroisu/compgen/internal/validation"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ComponentGenerator handles component scaffolding.
type ComponentGenerator struct {
	fs        afero.Fs
	templates map[string]ComponentTemplate
}

// GenerateOptions holds options for component generation.
type GenerateOptions struct {
	Name string
	// Template names a built-in or custom template; empty means "standard".
	Template string
	// AppRoot is the directory the component is created in.
	AppRoot          string
	SourceExt        string
	ControllerSuffix string
	TaskBaseClass    string
}

// TemplateInfo summarizes a template for listings.
type TemplateInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Files       int    `json:"files" yaml:"files"`
}

// NewComponentGenerator creates a generator writing to fs.
func NewComponentGenerator(fs afero.Fs) *ComponentGenerator {
	return &ComponentGenerator{
		fs:        fs,
		templates: GetBuiltinTemplates(),
	}
}

// Generate renders a template into AppRoot/Name and returns the written
// files in sorted order. It refuses to write into an existing directory.
func (g *ComponentGenerator) Generate(opts GenerateOptions) ([]string, error) {
	if err := validation.ValidateName(opts.Name); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidName, err.Error())
	}
	if opts.Template == "" {
		opts.Template = "standard"
	}
	tmpl, ok := g.templates[opts.Template]
	if !ok {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidName,
			fmt.Sprintf("unknown template %q (available: %s)", opts.Template, strings.Join(g.names(), ", ")))
	}

	ctx := TemplateContext{
		ComponentName:    opts.Name,
		ClassName:        ClassName(opts.Name),
		SourceExt:        defaultString(strings.TrimPrefix(opts.SourceExt, "."), "rb"),
		ControllerSuffix: defaultString(opts.ControllerSuffix, "_controller"),
		TaskBaseClass:    defaultString(opts.TaskBaseClass, "Volt::Task"),
	}

	root := path.Join(opts.AppRoot, opts.Name)
	exists, err := afero.DirExists(g.fs, root)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeWriteFailed, "failed to check component directory", root)
	}
	if exists {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidName, "component directory "+root+" already exists")
	}

	rendered := make(map[string]string, len(tmpl.Files))
	for pathTmpl, contentTmpl := range tmpl.Files {
		rel, err := render(pathTmpl, ctx)
		if err != nil {
			return nil, err
		}
		content, err := render(contentTmpl, ctx)
		if err != nil {
			return nil, err
		}
		rendered[path.Join(root, rel)] = content
	}

	files := make([]string, 0, len(rendered))
	for p := range rendered {
		files = append(files, p)
	}
	slices.Sort(files)

	for _, p := range files {
		if err := g.fs.MkdirAll(path.Dir(p), 0o755); err != nil {
			return nil, errors.WrapIO(err, errors.ErrCodeWriteFailed, "failed to create directory", path.Dir(p))
		}
		if err := afero.WriteFile(g.fs, p, []byte(rendered[p]), 0o644); err != nil {
			return nil, errors.WrapIO(err, errors.ErrCodeWriteFailed, "failed to write file", p)
		}
	}
	return files, nil
}

// ListTemplates returns every template sorted by name.
func (g *ComponentGenerator) ListTemplates() []TemplateInfo {
	infos := make([]TemplateInfo, 0, len(g.templates))
	for _, name := range g.names() {
		t := g.templates[name]
		infos = append(infos, TemplateInfo{Name: t.Name, Description: t.Description, Files: len(t.Files)})
	}
	return infos
}

func (g *ComponentGenerator) names() []string {
	names := make([]string, 0, len(g.templates))
	for name := range g.templates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ClassName converts a component name to CamelCase: "admin_panel" and
// "admin-panel" become "AdminPanel".
func ClassName(name string) string {
	caser := cases.Title(language.Und)
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(caser.String(p))
	}
	return b.String()
}

func render(src string, ctx TemplateContext) (string, error) {
	t, err := template.New("scaffold").Delims("[[", "]]").Option("missingkey=error").Parse(src)
	if err != nil {
		return "", errors.NewInternalError(errors.ErrCodeInternalError, "invalid scaffold template", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", errors.NewInternalError(errors.ErrCodeInternalError, "failed to render scaffold template", err)
	}
	return buf.String(), nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
