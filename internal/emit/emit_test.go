package emit

import (
	"strings"
	"testing"

	"github.com/conneroisu/compgen/internal/tasks"
	"github.com/conneroisu/compgen/internal/templates"
	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "item", `"item"`},
		{"markup", "<div></div>", `"<div></div>"`},
		{"quotes", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline and tab", "a\n\tb", `"a\n\tb"`},
		{"interpolation", "#{x} #$y #@z #plain", `"\#{x} \#$y \#@z #plain"`},
		{"trailing hash", "#", `"#"`},
		{"control", "a\x00b\x1b", `"a\x00b\e"`},
		{"unicode", "héllo ✓", `"héllo ✓"`},
		{"invalid utf8", "a\xffb", `"a\xFFb"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Quote(tt.input))
		})
	}
}

func TestRoutes(t *testing.T) {
	assert.Equal(t, "", Routes("page", "get '/'", false))
	assert.Equal(t, "page.add_routes do\n\nget '/'\nend\n\n", Routes("page", "get '/'", true))
	assert.Equal(t, "$page.add_routes do\n\n\nend\n\n", Routes("$page", "", true))
}

func TestTemplate_BindingSerialization(t *testing.T) {
	b := templates.NewBindings()
	b.Add("click", "onClick")
	tmpl := &templates.Template{Name: "item", Markup: "<div></div>", Bindings: b}

	assert.Equal(t,
		`page.add_template("item", "<div></div>", {"click" => [onClick]})`+"\n",
		Template("page", tmpl))
}

func TestBindingTable_Order(t *testing.T) {
	b := templates.NewBindings()
	b.Add("zeta", "z1", "z2")
	b.Add("0", "lambda { |x| x }")
	b.Add("alpha")

	assert.Equal(t, `{"zeta" => [z1, z2], "0" => [lambda { |x| x }], "alpha" => []}`, BindingTable(b))
	assert.Equal(t, "{}", BindingTable(nil))
	assert.Equal(t, "{}", BindingTable(templates.NewBindings()))
}

func TestViews(t *testing.T) {
	first := templates.NewSet()
	first.Add(&templates.Template{Name: "blog/main/index/title", Markup: "Home"})
	first.Add(&templates.Template{Name: "blog/main/index/body", Markup: "<p>\"hi\"</p>"})
	second := templates.NewSet()
	second.Add(&templates.Template{Name: "blog/main/show/body", Markup: ""})

	got := Views("page", []*templates.Set{first, nil, second})
	want := `page.add_template("blog/main/index/title", "Home", {})
page.add_template("blog/main/index/body", "<p>\"hi\"</p>", {})
page.add_template("blog/main/show/body", "", {})
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Views() mismatch (-want +got):\n%s", diff)
	}
}

func TestSources(t *testing.T) {
	assert.Equal(t, "", Sources(nil))
	assert.Equal(t, "class A\nend\n\nclass B\nend\n\n", Sources([]string{"class A\nend", "class B\nend"}))
}

func TestTask_Nesting(t *testing.T) {
	got := Task(qualifiedName(t, "A::B::Job"), "Volt::Task")
	want := strings.TrimPrefix(dedent.Dedent(`
		module A
		module B
		class Job < Volt::Task; end
		end
		end`), "\n")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Task() mismatch (-want +got):\n%s", diff)
	}

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, []string{"end", "end"}, lines[3:])
}

func qualifiedName(t *testing.T, s string) tasks.QualifiedName {
	t.Helper()
	q, err := tasks.ParseQualifiedName(s)
	require.NoError(t, err)
	return q
}

func TestTasks(t *testing.T) {
	names := []tasks.QualifiedName{
		qualifiedName(t, "Zed"),
		qualifiedName(t, "Admin::Job"),
	}

	assert.Equal(t,
		"class Zed < Volt::Task; end\nmodule Admin\nclass Job < Volt::Task; end\nend",
		Tasks(names, "Volt::Task"))
	assert.Equal(t, "", Tasks(nil, "Volt::Task"))
}

func TestInitializerPath(t *testing.T) {
	assert.Equal(t, "blog/config/initializers/setup",
		InitializerPath("blog", "/app/blog", "/app/blog/config/initializers/setup.rb"))
	assert.Equal(t, "blog/config/initializers/client/boot",
		InitializerPath("blog", "/app/blog/", "/app/blog/config/initializers/client/boot.rb"))
}

func TestInitializerPath_RelativeRoots(t *testing.T) {
	tests := []struct {
		root string
		file string
	}{
		{root: ".", file: "config/initializers/setup.rb"},
		{root: "./", file: "config/initializers/setup.rb"},
		{root: ".", file: "./config/initializers/setup.rb"},
		{root: "app/blog", file: "app/blog/config/initializers/setup.rb"},
		{root: "./app/blog", file: "app/blog/config/initializers/setup.rb"},
	}

	for _, tt := range tests {
		t.Run(tt.root+"|"+tt.file, func(t *testing.T) {
			assert.Equal(t, "blog/config/initializers/setup", InitializerPath("blog", tt.root, tt.file))
		})
	}
}

func TestInitializers(t *testing.T) {
	assert.Equal(t, "", Initializers("blog", "/app/blog", nil))

	got := Initializers("blog", "/app/blog", []string{
		"/app/blog/config/initializers/client/boot.rb",
		"/app/blog/config/initializers/setup.rb",
	})
	assert.Equal(t,
		"\nrequire 'blog/config/initializers/client/boot'\nrequire 'blog/config/initializers/setup'",
		got)

	assert.Equal(t, `require 'it\'s/x'`, "require "+singleQuote("it's/x"))
}
