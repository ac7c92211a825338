//go:build property
// +build property

package build

import (
	"context"
	"path"
	"strings"
	"testing"

	"github.com/conneroisu/compgen/internal/fsys"
	"github.com/conneroisu/compgen/internal/tasks"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/spf13/afero"
)

func propertyComponent(views, models []string) (afero.Fs, int) {
	mem := afero.NewMemMapFs()
	write := func(name, content string) {
		full := path.Join(componentRoot, name)
		_ = mem.MkdirAll(path.Dir(full), 0o755)
		_ = afero.WriteFile(mem, full, []byte(content), 0o644)
	}

	distinct := make(map[string]bool)
	for i, v := range views {
		folder := "main"
		if i%2 == 1 {
			folder = "admin"
		}
		name := "views/" + folder + "/" + v + ".html"
		distinct[name] = true
		write(name, "<p>"+v+"</p>")
	}
	for _, m := range models {
		write("models/"+m+".rb", "class "+m+"; end")
	}
	write("config/routes.rb", "get '/'")
	write("config/initializers/setup.rb", "")
	return mem, len(distinct)
}

// TestAssemblyProperties checks the output invariants over generated
// component trees.
func TestAssemblyProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	names := gen.SliceOfN(8, gen.RegexMatch(`^[a-z]{1,6}$`))

	// Property: assembling the same tree twice yields identical output
	properties.Property("deterministic output", prop.ForAll(
		func(views, models []string) bool {
			mem, _ := propertyComponent(views, models)
			reg, _ := tasks.NewStaticRegistry("Jobs::Cleanup")
			a := New(Config{FileSystem: fsys.New(mem), Parser: literalParser(), Tasks: reg})
			d := Descriptor{Root: componentRoot, Name: "blog", Variant: VariantServer}

			first, err1 := a.Assemble(context.Background(), d)
			second, err2 := a.Assemble(context.Background(), d)
			return err1 == nil && err2 == nil && first == second
		},
		names, names,
	))

	// Property: client output is a prefix of server output
	properties.Property("client prefix of server", prop.ForAll(
		func(views, models []string) bool {
			mem, _ := propertyComponent(views, models)
			a := New(Config{
				FileSystem: fsys.New(mem),
				Parser:     literalParser(),
				Options:    Options{ClientPageRef: "page", ServerPageRef: "page"},
			})

			client, err1 := a.Assemble(context.Background(), Descriptor{Root: componentRoot, Name: "blog", Variant: VariantClient})
			server, err2 := a.Assemble(context.Background(), Descriptor{Root: componentRoot, Name: "blog", Variant: VariantServer})
			return err1 == nil && err2 == nil && strings.HasPrefix(server, client)
		},
		names, names,
	))

	// Property: every view file registers exactly one template
	properties.Property("one template per view", prop.ForAll(
		func(views []string) bool {
			mem, want := propertyComponent(views, nil)
			a := New(Config{FileSystem: fsys.New(mem), Parser: literalParser()})

			out, err := a.Assemble(context.Background(), Descriptor{Root: componentRoot, Name: "blog"})
			return err == nil && strings.Count(out, ".add_template(") == want
		},
		names,
	))

	properties.TestingRun(t)
}
