// Package build assembles one component directory into a single generated
// source unit.
//
// An assembly run discovers the component's resources, transforms and
// parses its views, and concatenates the emitted fragments in a fixed order:
// routes, views, then for the server variant controllers, models, tasks and
// initializers. A run either returns the complete output or an error; there
// is no partial output.
package build

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/conneroisu/compgen/internal/emit"
	"github.com/conneroisu/compgen/internal/errors"
	"github.com/conneroisu/compgen/internal/fsys"
	"github.com/conneroisu/compgen/internal/handlers"
	"github.com/conneroisu/compgen/internal/logging"
	"github.com/conneroisu/compgen/internal/scanner"
	"github.com/conneroisu/compgen/internal/tasks"
	"github.com/conneroisu/compgen/internal/templates"
)

// Options controls the shape of the generated source.
type Options struct {
	// ClientPageRef is the page reference used by the client variant.
	ClientPageRef string
	// ServerPageRef is the page reference used by the server variant.
	ServerPageRef string
	// TaskBaseClass is the superclass of emitted task declarations.
	TaskBaseClass string
	// Conventions configures the component directory layout.
	Conventions scanner.Conventions
}

// DefaultOptions returns the stock generation options.
func DefaultOptions() Options {
	return Options{
		ClientPageRef: "page",
		ServerPageRef: "$page",
		TaskBaseClass: "Volt::Task",
		Conventions:   scanner.DefaultConventions(),
	}
}

// Config wires an Assembler to its collaborators. Nil fields get defaults:
// the OS file system, a registry with the default handlers, the section
// parser, no tasks and a discarding logger.
type Config struct {
	FileSystem fsys.FileSystem
	Handlers   *handlers.Registry
	Parser     templates.Parser
	Tasks      tasks.Registry
	Options    Options
	Logger     logging.Logger
}

// Assembler runs component assemblies. It is safe for concurrent use once
// its handler registry is no longer being modified.
type Assembler struct {
	fs         fsys.FileSystem
	handlers   *handlers.Registry
	parser     templates.Parser
	tasks      tasks.Registry
	discoverer *scanner.Discoverer
	opts       Options
	logger     logging.Logger
	metrics    *Metrics
}

// New creates an Assembler from cfg.
func New(cfg Config) *Assembler {
	def := DefaultOptions()
	opts := cfg.Options
	if opts.ClientPageRef == "" {
		opts.ClientPageRef = def.ClientPageRef
	}
	if opts.ServerPageRef == "" {
		opts.ServerPageRef = def.ServerPageRef
	}
	if opts.TaskBaseClass == "" {
		opts.TaskBaseClass = def.TaskBaseClass
	}

	a := &Assembler{
		fs:       cfg.FileSystem,
		handlers: cfg.Handlers,
		parser:   cfg.Parser,
		tasks:    cfg.Tasks,
		logger:   cfg.Logger,
		metrics:  NewMetrics(),
	}
	if a.fs == nil {
		a.fs = fsys.NewOS()
	}
	if a.handlers == nil {
		a.handlers = handlers.NewRegistry()
	}
	if a.parser == nil {
		a.parser = templates.NewSectionParser()
	}
	if a.tasks == nil {
		a.tasks = tasks.Combined{}
	}
	if a.logger == nil {
		a.logger = logging.NewNopLogger()
	}
	a.logger = a.logger.WithComponent("assembler")

	a.discoverer = scanner.NewDiscoverer(a.fs, a.handlers, opts.Conventions)
	opts.Conventions = a.discoverer.Conventions()
	a.opts = opts

	return a
}

// Options returns the options in effect after defaults were applied.
func (a *Assembler) Options() Options {
	return a.opts
}

// Metrics returns the run metrics of this Assembler.
func (a *Assembler) Metrics() *Metrics {
	return a.metrics
}

// Discoverer returns the resource discoverer used by this Assembler.
func (a *Assembler) Discoverer() *scanner.Discoverer {
	return a.discoverer
}

// PageRef returns the page reference emitted for variant v.
func (a *Assembler) PageRef(v Variant) string {
	if v == VariantServer {
		return a.opts.ServerPageRef
	}
	return a.opts.ClientPageRef
}

// Assemble generates the source unit for one component.
func (a *Assembler) Assemble(ctx context.Context, d Descriptor) (string, error) {
	start := time.Now()
	result := Result{Descriptor: d}

	out, err := a.assemble(ctx, d, &result)

	result.Duration = time.Since(start)
	result.Error = err
	result.Bytes = len(out)
	a.metrics.Record(result)

	if err != nil {
		a.logger.Error(ctx, err, "Assembly failed", "name", d.Name, "variant", d.Variant.String())
		return "", err
	}

	a.logger.Debug(ctx, "Assembly completed",
		"name", d.Name,
		"variant", d.Variant.String(),
		"templates", result.Templates,
		"skipped_views", result.SkippedViews,
		"bytes", result.Bytes,
		"duration_ms", result.Duration.Milliseconds())
	return out, nil
}

func (a *Assembler) assemble(ctx context.Context, d Descriptor, result *Result) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.Root = scanner.CleanRoot(d.Root)
	pageRef := a.PageRef(d.Variant)

	var b strings.Builder

	routes, err := a.emitRoutes(d, pageRef)
	if err != nil {
		return "", err
	}
	b.WriteString(routes)

	views, err := a.emitViews(ctx, d, pageRef, result)
	if err != nil {
		return "", err
	}
	b.WriteString(views)

	if d.Variant != VariantServer {
		return b.String(), nil
	}

	steps := []func(Descriptor) (string, error){
		a.emitControllers,
		a.emitModels,
		a.emitTasks,
		a.emitInitializers,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fragment, err := step(d)
		if err != nil {
			return "", err
		}
		b.WriteString(fragment)
	}

	return b.String(), nil
}

// Resources lists the component's discovered resources.
func (a *Assembler) Resources(d Descriptor) ([]scanner.Resource, error) {
	resources, err := a.discoverer.Resources(d.Root)
	if err != nil {
		return nil, listError(err, d, "failed to list component resources")
	}
	return resources, nil
}

func (a *Assembler) emitRoutes(d Descriptor, pageRef string) (string, error) {
	p, ok := a.discoverer.Routes(d.Root)
	if !ok {
		return "", nil
	}
	content, err := a.read(d, p)
	if err != nil {
		return "", err
	}
	return emit.Routes(pageRef, content, true), nil
}

func (a *Assembler) emitViews(ctx context.Context, d Descriptor, pageRef string, result *Result) (string, error) {
	paths, err := a.discoverer.Views(d.Root)
	if err != nil {
		return "", listError(err, d, "failed to list views")
	}

	viewsDir := path.Join(d.Root, "views")
	sets := make([]*templates.Set, 0, len(paths))
	for _, p := range paths {
		ext := strings.TrimPrefix(path.Ext(p), ".")
		handler, ok := a.handlers.HandlerFor(ext)
		if !ok {
			result.SkippedViews++
			a.logger.Debug(ctx, "Skipping view without handler", "file", p, "extension", ext)
			continue
		}

		raw, err := a.read(d, p)
		if err != nil {
			return "", err
		}

		pathKey := d.Name + "/" + scanner.LogicalName(viewsDir, p)

		markup, err := handler.Transform(raw)
		if err != nil {
			return "", errors.NewParseError(errors.ErrCodeTransformFailed,
				"failed to transform template "+pathKey, err).WithComponent(d.Name).WithFile(p)
		}

		set, err := a.parser.Parse(markup, pathKey)
		if err != nil {
			return "", errors.WrapParse(err, pathKey).WithComponent(d.Name).WithFile(p)
		}

		result.Templates += set.Len()
		sets = append(sets, set)
	}

	return emit.Views(pageRef, sets), nil
}

func (a *Assembler) emitControllers(d Descriptor) (string, error) {
	paths, err := a.discoverer.Controllers(d.Root)
	if err != nil {
		return "", listError(err, d, "failed to list controllers")
	}
	return a.emitSources(d, paths)
}

func (a *Assembler) emitModels(d Descriptor) (string, error) {
	paths, err := a.discoverer.Models(d.Root)
	if err != nil {
		return "", listError(err, d, "failed to list models")
	}
	return a.emitSources(d, paths)
}

func (a *Assembler) emitSources(d Descriptor, paths []string) (string, error) {
	contents := make([]string, 0, len(paths))
	for _, p := range paths {
		content, err := a.read(d, p)
		if err != nil {
			return "", err
		}
		contents = append(contents, content)
	}
	return emit.Sources(contents), nil
}

func (a *Assembler) emitTasks(d Descriptor) (string, error) {
	names, err := a.tasks.KnownHandlers()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeInternal, errors.ErrCodeTasksFailed,
			"failed to enumerate task handlers").WithComponent(d.Name)
	}
	return emit.Tasks(names, a.opts.TaskBaseClass), nil
}

func (a *Assembler) emitInitializers(d Descriptor) (string, error) {
	paths, err := a.discoverer.Initializers(d.Root)
	if err != nil {
		return "", listError(err, d, "failed to list initializers")
	}
	return emit.Initializers(d.Name, d.Root, paths), nil
}

func (a *Assembler) read(d Descriptor, p string) (string, error) {
	content, err := a.fs.ReadFile(p)
	if err != nil {
		return "", errors.WrapIO(err, errors.ErrCodeReadFailed, "failed to read file", p).WithComponent(d.Name)
	}
	return content, nil
}

func listError(err error, d Descriptor, message string) error {
	return errors.WrapIO(err, errors.ErrCodeListFailed, message, d.Root).WithComponent(d.Name)
}
