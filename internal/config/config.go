// Package config provides configuration management for compgen using Viper
// for loading from files, environment variables and command-line flags.
//
// The configuration supports YAML files, environment variable overrides with
// the COMPGEN_ prefix, defaults and validation. It names the application
// root, the components to assemble, where generated units are written, how
// they are generated, which extra template handlers are registered, where
// task classes come from and how the tool logs.
package config

import (
	"strings"

	"github.com/conneroisu/compgen/internal/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "COMPGEN"

// DefaultFileName is the configuration file looked up in the working
// directory.
const DefaultFileName = ".compgen.yml"

type Config struct {
	App        AppConfig         `mapstructure:"app" yaml:"app"`
	Components []ComponentConfig `mapstructure:"components" yaml:"components"`
	Output     OutputConfig      `mapstructure:"output" yaml:"output"`
	Generate   GenerateConfig    `mapstructure:"generate" yaml:"generate"`
	Handlers   map[string]string `mapstructure:"handlers" yaml:"handlers"`
	Tasks      TasksConfig       `mapstructure:"tasks" yaml:"tasks"`
	Log        LogConfig         `mapstructure:"log" yaml:"log"`

	// Warnings holds the non-fatal issues found when the configuration was
	// loaded.
	Warnings []ValidationError `mapstructure:"-" yaml:"-"`
}

// AppConfig locates the application whose components are assembled.
type AppConfig struct {
	// Root holds one sub-directory per component.
	Root string `mapstructure:"root" yaml:"root"`
	// Discover registers every sub-directory of Root as a component.
	Discover bool `mapstructure:"discover" yaml:"discover"`
}

// ComponentConfig names one component explicitly.
type ComponentConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	Path string `mapstructure:"path" yaml:"path"`
}

type OutputConfig struct {
	Dir      string   `mapstructure:"dir" yaml:"dir"`
	Variants []string `mapstructure:"variants" yaml:"variants"`
}

// GenerateConfig shapes the generated source.
type GenerateConfig struct {
	ClientPageRef    string `mapstructure:"client_page_ref" yaml:"client_page_ref"`
	ServerPageRef    string `mapstructure:"server_page_ref" yaml:"server_page_ref"`
	TaskBaseClass    string `mapstructure:"task_base_class" yaml:"task_base_class"`
	SourceExt        string `mapstructure:"source_ext" yaml:"source_ext"`
	ControllerSuffix string `mapstructure:"controller_suffix" yaml:"controller_suffix"`
}

// TasksConfig lists the task classes declared in server units.
type TasksConfig struct {
	// Static names tasks directly, e.g. "Admin::ReportTask".
	Static []string `mapstructure:"static" yaml:"static"`
	// Scan reads task classes from the component sources.
	Scan bool `mapstructure:"scan" yaml:"scan"`
	// Patterns are globs relative to each component root.
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Root:     "app",
			Discover: true,
		},
		Output: OutputConfig{
			Dir:      "build/components",
			Variants: []string{"client", "server"},
		},
		Generate: GenerateConfig{
			ClientPageRef:    "page",
			ServerPageRef:    "$page",
			TaskBaseClass:    "Volt::Task",
			SourceExt:        "rb",
			ControllerSuffix: "_controller",
		},
		Handlers: map[string]string{},
		Tasks: TasksConfig{
			Scan:     true,
			Patterns: []string{"tasks/*.rb"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers the defaults on v so that environment variables can
// override keys that no file sets.
func SetDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("app.root", def.App.Root)
	v.SetDefault("app.discover", def.App.Discover)
	v.SetDefault("output.dir", def.Output.Dir)
	v.SetDefault("output.variants", def.Output.Variants)
	v.SetDefault("generate.client_page_ref", def.Generate.ClientPageRef)
	v.SetDefault("generate.server_page_ref", def.Generate.ServerPageRef)
	v.SetDefault("generate.task_base_class", def.Generate.TaskBaseClass)
	v.SetDefault("generate.source_ext", def.Generate.SourceExt)
	v.SetDefault("generate.controller_suffix", def.Generate.ControllerSuffix)
	v.SetDefault("tasks.scan", def.Tasks.Scan)
	v.SetDefault("tasks.patterns", def.Tasks.Patterns)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
}

// NewViper creates a Viper instance with the compgen defaults, env prefix
// and key replacer.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration from the global Viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads, completes and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapConfig(err, "failed to decode configuration")
	}

	// Slices given as comma separated env values arrive as one string.
	for key, dst := range map[string]*[]string{
		"output.variants": &cfg.Output.Variants,
		"tasks.static":    &cfg.Tasks.Static,
		"tasks.patterns":  &cfg.Tasks.Patterns,
	} {
		if values := v.GetStringSlice(key); len(values) > 0 {
			*dst = values
		} else {
			*dst = nil
		}
	}

	applyDefaults(cfg)
	if !v.IsSet("app.discover") {
		cfg.App.Discover = Default().App.Discover
	}
	if !v.IsSet("tasks.scan") {
		cfg.Tasks.Scan = Default().Tasks.Scan
	}

	result := Validate(cfg)
	if result.HasErrors() {
		return nil, result.Err()
	}
	cfg.Warnings = result.Warnings
	return cfg, nil
}

// applyDefaults fills values that decoded empty.
func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.App.Root == "" {
		cfg.App.Root = def.App.Root
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = def.Output.Dir
	}
	if len(cfg.Output.Variants) == 0 {
		cfg.Output.Variants = def.Output.Variants
	}
	if cfg.Generate.ClientPageRef == "" {
		cfg.Generate.ClientPageRef = def.Generate.ClientPageRef
	}
	if cfg.Generate.ServerPageRef == "" {
		cfg.Generate.ServerPageRef = def.Generate.ServerPageRef
	}
	if cfg.Generate.TaskBaseClass == "" {
		cfg.Generate.TaskBaseClass = def.Generate.TaskBaseClass
	}
	cfg.Generate.SourceExt = strings.TrimPrefix(cfg.Generate.SourceExt, ".")
	if cfg.Generate.SourceExt == "" {
		cfg.Generate.SourceExt = def.Generate.SourceExt
	}
	if cfg.Generate.ControllerSuffix == "" {
		cfg.Generate.ControllerSuffix = def.Generate.ControllerSuffix
	}
	if cfg.Handlers == nil {
		cfg.Handlers = map[string]string{}
	}
	if len(cfg.Tasks.Patterns) == 0 {
		cfg.Tasks.Patterns = def.Tasks.Patterns
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}
