// Package scanner discovers the resources of one component directory.
//
// A component follows a fixed layout:
//
//	views/<controller>/**/*.<template ext>
//	controllers/*_controller.<ext>
//	models/*.<ext>
//	config/routes.<ext>
//	config/initializers/*.<ext>
//	config/initializers/client/*.<ext>
//
// Every listing the scanner returns is sorted by full path and free of
// duplicates, so two scans of the same tree always agree.
package scanner

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/conneroisu/compgen/internal/fsys"
)

// Kind identifies a resource kind inside a component.
type Kind int

const (
	KindRoutes Kind = iota
	KindView
	KindController
	KindModel
	KindInitializer
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindRoutes:
		return "routes"
	case KindView:
		return "view"
	case KindController:
		return "controller"
	case KindModel:
		return "model"
	case KindInitializer:
		return "initializer"
	default:
		return "unknown"
	}
}

// Resource is one discovered file of a component.
type Resource struct {
	Kind Kind `json:"kind" yaml:"kind"`
	// Path is the full path of the file.
	Path string `json:"path" yaml:"path"`
	// LogicalName is the path relative to the kind's folder without its
	// extension, e.g. "main/index" for views/main/index.html.
	LogicalName string `json:"logical_name" yaml:"logical_name"`
}

// Conventions holds the configurable parts of the directory layout.
type Conventions struct {
	// SourceExt is the extension of hand-written source files, without dot.
	SourceExt string
	// ControllerSuffix is appended to a view folder name to form its
	// controller file name.
	ControllerSuffix string
}

// DefaultConventions returns the stock layout conventions.
func DefaultConventions() Conventions {
	return Conventions{SourceExt: "rb", ControllerSuffix: "_controller"}
}

// ExtensionSource reports which view extensions have a template handler.
type ExtensionSource interface {
	KnownExtensions() []string
}

// Discoverer enumerates component resources on a FileSystem.
type Discoverer struct {
	fs   fsys.FileSystem
	exts ExtensionSource
	conv Conventions
}

// NewDiscoverer creates a Discoverer. Zero-valued convention fields fall back
// to DefaultConventions.
func NewDiscoverer(fs fsys.FileSystem, exts ExtensionSource, conv Conventions) *Discoverer {
	def := DefaultConventions()
	if conv.SourceExt == "" {
		conv.SourceExt = def.SourceExt
	}
	conv.SourceExt = strings.TrimPrefix(conv.SourceExt, ".")
	if conv.ControllerSuffix == "" {
		conv.ControllerSuffix = def.ControllerSuffix
	}
	return &Discoverer{fs: fs, exts: exts, conv: conv}
}

// Conventions returns the layout conventions in effect.
func (d *Discoverer) Conventions() Conventions {
	return d.conv
}

// CleanRoot normalizes a component root to a slash-separated path without a
// trailing slash.
func CleanRoot(root string) string {
	return path.Clean(filepath.ToSlash(root))
}

// Views lists template files under views/<controller>/ whose extension has a
// registered handler. Extensions match case-insensitively, so index.HTML is
// a view when html is registered.
func (d *Discoverer) Views(root string) ([]string, error) {
	exts := d.exts.KnownExtensions()
	if len(exts) == 0 {
		return nil, nil
	}
	known := make(map[string]bool, len(exts))
	for _, ext := range exts {
		known[strings.ToLower(ext)] = true
	}

	files, err := d.list(path.Join(CleanRoot(root), "views") + "/*/**/*.*")
	if err != nil {
		return nil, err
	}
	views := files[:0]
	for _, f := range files {
		if known[strings.ToLower(strings.TrimPrefix(path.Ext(f), "."))] {
			views = append(views, f)
		}
	}
	return views, nil
}

// ViewFolders lists the distinct controller folders directly under views/
// that contain at least one file.
func (d *Discoverer) ViewFolders(root string) ([]string, error) {
	viewsDir := path.Join(CleanRoot(root), "views")
	files, err := d.fs.ListFiles(viewsDir + "/*/**/*")
	if err != nil {
		return nil, err
	}

	folders := make([]string, 0, len(files))
	for _, f := range files {
		rel := strings.TrimPrefix(f, viewsDir+"/")
		first, _, _ := strings.Cut(rel, "/")
		folders = append(folders, path.Join(viewsDir, first))
	}
	return sortUnique(folders), nil
}

// ImplicitController derives the controller file a view folder implies by
// replacing its views segment with controllers and appending suffix and ext:
// /c/views/widgets -> /c/controllers/widgets_controller.rb.
func ImplicitController(viewFolder, suffix, ext string) string {
	folder := path.Clean(viewFolder)
	component := path.Dir(path.Dir(folder))
	return path.Join(component, "controllers", path.Base(folder)+suffix+"."+ext)
}

// ControllerCandidates returns the implicit controller paths inferred from
// view folders merged with the explicit controller files, sorted and
// de-duplicated. Implicit candidates may not exist.
func (d *Discoverer) ControllerCandidates(root string) ([]string, error) {
	folders, err := d.ViewFolders(root)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(folders))
	for _, folder := range folders {
		candidates = append(candidates, ImplicitController(folder, d.conv.ControllerSuffix, d.conv.SourceExt))
	}

	explicit, err := d.fs.ListFiles(path.Join(CleanRoot(root), "controllers") + "/*" + d.conv.ControllerSuffix + "." + d.conv.SourceExt)
	if err != nil {
		return nil, err
	}
	candidates = append(candidates, explicit...)

	return sortUnique(candidates), nil
}

// Controllers returns the controller candidates that exist as files.
func (d *Discoverer) Controllers(root string) ([]string, error) {
	candidates, err := d.ControllerCandidates(root)
	if err != nil {
		return nil, err
	}

	existing := candidates[:0]
	for _, c := range candidates {
		if d.fs.Exists(c) {
			existing = append(existing, c)
		}
	}
	return existing, nil
}

// Models lists the source files directly under models/.
func (d *Discoverer) Models(root string) ([]string, error) {
	return d.list(path.Join(CleanRoot(root), "models") + "/*." + d.conv.SourceExt)
}

// Routes returns the routes file path and whether it exists.
func (d *Discoverer) Routes(root string) (string, bool) {
	p := path.Join(CleanRoot(root), "config", "routes."+d.conv.SourceExt)
	return p, d.fs.Exists(p)
}

// Initializers lists config/initializers/* and config/initializers/client/*
// source files together.
func (d *Discoverer) Initializers(root string) ([]string, error) {
	dir := path.Join(CleanRoot(root), "config", "initializers")
	shared, err := d.fs.ListFiles(dir + "/*." + d.conv.SourceExt)
	if err != nil {
		return nil, err
	}
	client, err := d.fs.ListFiles(dir + "/client/*." + d.conv.SourceExt)
	if err != nil {
		return nil, err
	}
	return sortUnique(append(shared, client...)), nil
}

// Resources returns every discovered resource of the component in kind
// order: routes, views, controllers, models, initializers.
func (d *Discoverer) Resources(root string) ([]Resource, error) {
	root = CleanRoot(root)
	var out []Resource

	if p, ok := d.Routes(root); ok {
		out = append(out, newResource(KindRoutes, root, "config", p))
	}

	kinds := []struct {
		kind Kind
		dir  string
		list func(string) ([]string, error)
	}{
		{KindView, "views", d.Views},
		{KindController, "controllers", d.Controllers},
		{KindModel, "models", d.Models},
		{KindInitializer, "config/initializers", d.Initializers},
	}
	for _, k := range kinds {
		paths, err := k.list(root)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			out = append(out, newResource(k.kind, root, k.dir, p))
		}
	}

	return out, nil
}

func newResource(kind Kind, root, dir, p string) Resource {
	return Resource{Kind: kind, Path: p, LogicalName: LogicalName(path.Join(root, dir), p)}
}

// LogicalName returns p relative to dir with the extension removed.
func LogicalName(dir, p string) string {
	rel := strings.TrimPrefix(p, strings.TrimSuffix(dir, "/")+"/")
	return strings.TrimSuffix(rel, path.Ext(rel))
}

func (d *Discoverer) list(pattern string) ([]string, error) {
	files, err := d.fs.ListFiles(pattern)
	if err != nil {
		return nil, err
	}
	return sortUnique(files), nil
}

// sortUnique sorts paths and drops repeated entries.
func sortUnique(paths []string) []string {
	out := slices.Clone(paths)
	slices.Sort(out)
	return slices.Compact(out)
}
