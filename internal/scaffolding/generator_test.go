package scaffolding

import (
	"testing"

	"github.com/conneroisu/compgen/internal/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Standard(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := NewComponentGenerator(fs)

	files, err := g.Generate(GenerateOptions{Name: "admin_panel", AppRoot: "app"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"app/admin_panel/config/initializers/boot.rb",
		"app/admin_panel/config/routes.rb",
		"app/admin_panel/controllers/main_controller.rb",
		"app/admin_panel/models/item.rb",
		"app/admin_panel/tasks/ping_task.rb",
		"app/admin_panel/views/main/about.html",
		"app/admin_panel/views/main/index.html",
	}, files)

	task, err := afero.ReadFile(fs, "app/admin_panel/tasks/ping_task.rb")
	require.NoError(t, err)
	assert.Contains(t, string(task), "module AdminPanel\n  class PingTask < Volt::Task")

	view, err := afero.ReadFile(fs, "app/admin_panel/views/main/index.html")
	require.NoError(t, err)
	assert.Contains(t, string(view), "<h1>{{ page._title }}</h1>")
}

func TestGenerate_Conventions(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := NewComponentGenerator(fs)

	files, err := g.Generate(GenerateOptions{
		Name:             "shop",
		AppRoot:          "src",
		SourceExt:        ".cr",
		ControllerSuffix: "_ctl",
		TaskBaseClass:    "Jobs::Base",
	})
	require.NoError(t, err)
	assert.Contains(t, files, "src/shop/controllers/main_ctl.cr")

	task, err := afero.ReadFile(fs, "src/shop/tasks/ping_task.cr")
	require.NoError(t, err)
	assert.Contains(t, string(task), "class PingTask < Jobs::Base")
}

func TestGenerate_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := NewComponentGenerator(fs)

	_, err := g.Generate(GenerateOptions{Name: "bad name", AppRoot: "app"})
	assert.True(t, errors.IsValidationError(err))

	_, err = g.Generate(GenerateOptions{Name: "blog", AppRoot: "app", Template: "carousel"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: markdown, minimal, standard")

	_, err = g.Generate(GenerateOptions{Name: "blog", AppRoot: "app", Template: "minimal"})
	require.NoError(t, err)
	_, err = g.Generate(GenerateOptions{Name: "blog", AppRoot: "app"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestGenerate_TemplateRenderError(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := &ComponentGenerator{
		fs: fs,
		templates: map[string]ComponentTemplate{
			"broken": {Name: "broken", Files: map[string]string{"x.rb": "[[.Missing]]"}},
		},
	}

	_, err := g.Generate(GenerateOptions{Name: "blog", Template: "broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render scaffold template")

	exists, err := afero.DirExists(fs, "blog")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListTemplates(t *testing.T) {
	infos := NewComponentGenerator(afero.NewMemMapFs()).ListTemplates()
	require.Len(t, infos, 3)
	assert.Equal(t, "markdown", infos[0].Name)
	assert.Equal(t, "standard", infos[2].Name)
	assert.Equal(t, 7, infos[2].Files)
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "Blog", ClassName("blog"))
	assert.Equal(t, "AdminPanel", ClassName("admin_panel"))
	assert.Equal(t, "MyShopV2", ClassName("my-shop.v2"))
}
