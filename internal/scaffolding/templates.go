package scaffolding

// ComponentTemplate is a named set of files making up a sample component.
// File paths and contents are text/template sources executed with a
// TemplateContext, using [[ and ]] as delimiters so view bindings written
// as {{ expr }} pass through untouched.
type ComponentTemplate struct {
	Name        string
	Description string
	Files       map[string]string
}

// TemplateContext holds the data available to file templates.
type TemplateContext struct {
	// ComponentName is the directory name, e.g. "admin_panel".
	ComponentName string
	// ClassName is ComponentName in CamelCase, e.g. "AdminPanel".
	ClassName        string
	SourceExt        string
	ControllerSuffix string
	TaskBaseClass    string
}

// GetBuiltinTemplates returns all built-in component templates.
func GetBuiltinTemplates() map[string]ComponentTemplate {
	return map[string]ComponentTemplate{
		"standard": standardTemplate(),
		"minimal":  minimalTemplate(),
		"markdown": markdownTemplate(),
	}
}

const routesFile = "config/routes.[[.SourceExt]]"

func standardTemplate() ComponentTemplate {
	return ComponentTemplate{
		Name:        "standard",
		Description: "Views, controller, model, routes, initializer and a task",
		Files: map[string]string{
			routesFile: `client '/', action: 'index'
client '/about', action: 'about'
`,
			"config/initializers/boot.[[.SourceExt]]": `# Loaded on the server when [[.ComponentName]] is required.
`,
			"views/main/index.html": `<:Title>
Home

<:Body>
<h1>{{ page._title }}</h1>
<button e-click="refresh">Refresh</button>
`,
			"views/main/about.html": `<:Title>
About

<:Body>
<p>About [[.ClassName]].</p>
`,
			"controllers/main[[.ControllerSuffix]].[[.SourceExt]]": `class MainController < Volt::ModelController
  def index
  end

  def refresh
  end
end
`,
			"models/item.[[.SourceExt]]": `class Item < Volt::Model
end
`,
			"tasks/ping_task.[[.SourceExt]]": `module [[.ClassName]]
  class PingTask < [[.TaskBaseClass]]
    def ping
      'pong'
    end
  end
end
`,
		},
	}
}

func minimalTemplate() ComponentTemplate {
	return ComponentTemplate{
		Name:        "minimal",
		Description: "One view and its route",
		Files: map[string]string{
			routesFile: `client '/', action: 'index'
`,
			"views/main/index.html": `<p>[[.ClassName]]</p>
`,
		},
	}
}

func markdownTemplate() ComponentTemplate {
	return ComponentTemplate{
		Name:        "markdown",
		Description: "Markdown pages, assembled when the md handler is enabled",
		Files: map[string]string{
			routesFile: `client '/', action: 'index'
client '/guide', action: 'guide'
`,
			"views/main/index.md": `# [[.ClassName]]

Pages in this component are written in Markdown.
`,
			"views/main/guide.md": `# Guide

Add md: markdown under handlers: in .compgen.yml to assemble these pages.
`,
		},
	}
}
