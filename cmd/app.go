package cmd

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/conneroisu/compgen/internal/build"
	"github.com/conneroisu/compgen/internal/config"
	"github.com/conneroisu/compgen/internal/errors"
	"github.com/conneroisu/compgen/internal/fsys"
	"github.com/conneroisu/compgen/internal/handlers"
	"github.com/conneroisu/compgen/internal/logging"
	"github.com/conneroisu/compgen/internal/registry"
	"github.com/conneroisu/compgen/internal/scanner"
	"github.com/conneroisu/compgen/internal/tasks"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app holds what every command builds from configuration.
type app struct {
	cfg        *config.Config
	fs         afero.Fs
	logger     logging.Logger
	components *registry.ComponentRegistry
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, errors.WrapConfig(err, "invalid log level")
	}
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})

	for _, w := range cfg.Warnings {
		fields := []interface{}{"field", w.Field, "value", w.Value}
		if len(w.Suggestions) > 0 {
			fields = append(fields, "hint", strings.Join(w.Suggestions, "; "))
		}
		logger.Warn(cmd.Context(), nil, "Configuration warning: "+w.Message, fields...)
	}

	a := &app{
		cfg:        cfg,
		fs:         afero.NewOsFs(),
		logger:     logger,
		components: registry.NewComponentRegistry(),
	}

	for _, c := range cfg.Components {
		root := c.Path
		if root == "" {
			root = path.Join(cfg.App.Root, c.Name)
		}
		a.components.Register(&registry.ComponentInfo{
			Name:   c.Name,
			Root:   filepath.ToSlash(root),
			Source: registry.SourceConfig,
		})
	}

	if cfg.App.Discover {
		added, err := a.components.Discover(a.fs, cfg.App.Root)
		if err != nil {
			return nil, err
		}
		logger.Debug(cmd.Context(), "Discovered components", "root", cfg.App.Root, "count", added)
	}

	return a, nil
}

// handlerRegistry returns the default handlers plus the configured ones.
func (a *app) handlerRegistry() *handlers.Registry {
	reg := handlers.NewRegistry()
	for tag, name := range a.cfg.Handlers {
		if h, ok := handlers.Named(name); ok {
			reg.Register(tag, h)
		}
	}
	return reg
}

// taskRegistry combines the configured task names with those declared in the task
// sources of every known component and of extraRoots.
func (a *app) taskRegistry(extraRoots ...string) (tasks.Registry, error) {
	static, err := tasks.NewStaticRegistry(a.cfg.Tasks.Static...)
	if err != nil {
		return nil, errors.WrapConfig(err, "invalid task name")
	}
	combined := tasks.Combined{static}

	if !a.cfg.Tasks.Scan {
		return combined, nil
	}

	roots := make([]string, 0, a.components.Count()+len(extraRoots))
	for _, c := range a.components.All() {
		roots = append(roots, scanner.CleanRoot(c.Root))
	}
	for _, r := range extraRoots {
		roots = append(roots, scanner.CleanRoot(r))
	}

	seen := make(map[string]bool)
	var patterns []string
	for _, root := range roots {
		for _, p := range a.cfg.Tasks.Patterns {
			pattern := path.Join(root, p)
			if !seen[pattern] {
				seen[pattern] = true
				patterns = append(patterns, pattern)
			}
		}
	}

	return append(combined, tasks.NewSourceRegistry(fsys.New(a.fs), a.cfg.Generate.TaskBaseClass, patterns...)), nil
}

// assembler wires an Assembler to the configuration. extraRoots are
// component directories outside the registry whose tasks should be known.
func (a *app) assembler(extraRoots ...string) (*build.Assembler, error) {
	tr, err := a.taskRegistry(extraRoots...)
	if err != nil {
		return nil, err
	}

	gen := a.cfg.Generate
	return build.New(build.Config{
		FileSystem: fsys.New(a.fs),
		Handlers:   a.handlerRegistry(),
		Tasks:      tr,
		Logger:     a.logger,
		Options: build.Options{
			ClientPageRef: gen.ClientPageRef,
			ServerPageRef: gen.ServerPageRef,
			TaskBaseClass: gen.TaskBaseClass,
			Conventions: scanner.Conventions{
				SourceExt:        gen.SourceExt,
				ControllerSuffix: gen.ControllerSuffix,
			},
		},
	}), nil
}

// writeUnit writes generated source to p, creating parent directories.
func writeUnit(fs afero.Fs, p, content string) error {
	if err := fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWriteFailed, "failed to create output directory", filepath.Dir(p))
	}
	if err := afero.WriteFile(fs, p, []byte(content), 0o644); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWriteFailed, "failed to write unit", p)
	}
	return nil
}
