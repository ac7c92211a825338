package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/conneroisu/compgen/internal/errors"
	"github.com/conneroisu/compgen/internal/handlers"
	"github.com/conneroisu/compgen/internal/logging"
	"github.com/conneroisu/compgen/internal/tasks"
	"github.com/conneroisu/compgen/internal/validation"
)

// ValidationError describes one invalid configuration value with suggestions.
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors.
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues.
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("Validation errors:\n")
		writeIssues(&builder, vr.Errors)
	}
	if len(vr.Warnings) > 0 {
		builder.WriteString("Validation warnings:\n")
		writeIssues(&builder, vr.Warnings)
	}

	return builder.String()
}

func writeIssues(b *strings.Builder, issues []ValidationError) {
	for _, issue := range issues {
		fmt.Fprintf(b, "  - %s: %s\n", issue.Field, issue.Message)
		for _, suggestion := range issue.Suggestions {
			fmt.Fprintf(b, "      hint: %s\n", suggestion)
		}
	}
}

// Err returns the errors as one configuration error, or nil.
func (vr *ValidationResult) Err() error {
	if !vr.HasErrors() {
		return nil
	}
	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return errors.NewConfigError(errors.ErrCodeConfigInvalid,
		"invalid configuration: "+strings.Join(messages, "; "))
}

func (vr *ValidationResult) addError(field string, value interface{}, message string, suggestions ...string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Value: value, Message: message, Suggestions: suggestions})
}

func (vr *ValidationResult) addWarning(field string, value interface{}, message string, suggestions ...string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Value: value, Message: message, Suggestions: suggestions})
}

var identifier = regexp.MustCompile(`^\$?[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the configuration and reports every problem found.
func Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	validateApp(cfg, result)
	validateComponents(cfg.Components, result)
	validateOutput(&cfg.Output, result)
	validateGenerate(&cfg.Generate, result)
	validateHandlers(cfg.Handlers, result)
	validateTasks(&cfg.Tasks, result)
	validateLog(&cfg.Log, result)

	return result
}

func validateApp(cfg *Config, result *ValidationResult) {
	if err := validation.ValidatePath(cfg.App.Root); err != nil {
		result.addError("app.root", cfg.App.Root, err.Error())
	}
	if !cfg.App.Discover && len(cfg.Components) == 0 {
		result.addWarning("app.discover", false, "discovery is disabled and no components are listed",
			"Set app.discover: true",
			"List components under components:")
	}
}

func validateComponents(components []ComponentConfig, result *ValidationResult) {
	seen := make(map[string]bool, len(components))
	for i, c := range components {
		field := fmt.Sprintf("components[%d]", i)
		if err := validation.ValidateName(c.Name); err != nil {
			result.addError(field+".name", c.Name, err.Error())
		} else if seen[c.Name] {
			result.addError(field+".name", c.Name, fmt.Sprintf("duplicate component %q", c.Name))
		}
		seen[c.Name] = true

		if c.Path == "" {
			continue
		}
		if err := validation.ValidatePath(c.Path); err != nil {
			result.addError(field+".path", c.Path, err.Error())
		}
	}
}

func validateOutput(output *OutputConfig, result *ValidationResult) {
	if err := validation.ValidatePath(output.Dir); err != nil {
		result.addError("output.dir", output.Dir, err.Error())
	}
	for _, v := range output.Variants {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "client", "server":
		default:
			result.addError("output.variants", v, fmt.Sprintf("unknown variant %q", v),
				"Valid variants: client, server")
		}
	}
}

func validateGenerate(gen *GenerateConfig, result *ValidationResult) {
	if !identifier.MatchString(gen.ClientPageRef) {
		result.addError("generate.client_page_ref", gen.ClientPageRef, "page reference must be an identifier")
	}
	if !identifier.MatchString(gen.ServerPageRef) {
		result.addError("generate.server_page_ref", gen.ServerPageRef, "page reference must be an identifier")
	}
	if _, err := tasks.ParseQualifiedName(gen.TaskBaseClass); err != nil {
		result.addError("generate.task_base_class", gen.TaskBaseClass, err.Error(),
			"Use a constant path such as Volt::Task")
	}
	if err := validation.ValidateExtension(gen.SourceExt); err != nil {
		result.addError("generate.source_ext", gen.SourceExt, err.Error())
	}
	if strings.ContainsAny(gen.ControllerSuffix, "/\\*?[]{}") {
		result.addError("generate.controller_suffix", gen.ControllerSuffix, "controller suffix contains path or glob characters")
	}
	if gen.ClientPageRef != gen.ServerPageRef && strings.TrimPrefix(gen.ServerPageRef, "$") != strings.TrimPrefix(gen.ClientPageRef, "$") {
		result.addWarning("generate.server_page_ref", gen.ServerPageRef,
			"client and server page references name different objects")
	}
}

func validateHandlers(hs map[string]string, result *ValidationResult) {
	for tag, name := range hs {
		field := "handlers." + tag
		if err := validation.ValidateExtension(tag); err != nil {
			result.addError(field, tag, err.Error())
		}
		if _, ok := handlers.Named(name); !ok {
			result.addError(field, name, fmt.Sprintf("unknown handler %q", name),
				"Valid handlers: identity, markdown")
		}
	}
}

func validateTasks(t *TasksConfig, result *ValidationResult) {
	for _, name := range t.Static {
		if _, err := tasks.ParseQualifiedName(name); err != nil {
			result.addError("tasks.static", name, err.Error())
		}
	}
	if !t.Scan {
		return
	}
	for _, p := range t.Patterns {
		if err := validation.ValidateRelativePath(p); err != nil {
			result.addError("tasks.patterns", p, err.Error(),
				"Task patterns are relative to each component root")
		}
	}
}

func validateLog(l *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(l.Level); err != nil {
		result.addError("log.level", l.Level, err.Error(), "Valid levels: debug, info, warn, error")
	}
	switch l.Format {
	case "text", "json":
	default:
		result.addError("log.format", l.Format, fmt.Sprintf("unknown log format %q", l.Format),
			"Valid formats: text, json")
	}
}
